package data

// Set is an unordered collection of distinct instance nodes. The
// zero Set is ready for use.
type Set struct {
	Nodes []*Node
}

// NewSet returns an empty Set.
func NewSet() *Set { return &Set{} }

// Add places n in the set, returning its index. Adding a node already
// present returns the existing index.
func (s *Set) Add(n *Node) int {
	for i, have := range s.Nodes {
		if have == n {
			return i
		}
	}
	s.Nodes = append(s.Nodes, n)
	return len(s.Nodes) - 1
}

// Contains reports whether n is in the set.
func (s *Set) Contains(n *Node) bool {
	for _, have := range s.Nodes {
		if have == n {
			return true
		}
	}
	return false
}

// Remove takes n out of the set, reporting whether it was present.
func (s *Set) Remove(n *Node) bool {
	for i, have := range s.Nodes {
		if have == n {
			s.Nodes = append(s.Nodes[:i], s.Nodes[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of nodes in the set.
func (s *Set) Len() int { return len(s.Nodes) }

package schema

import "fmt"

// NodeKind identifies the modeling construct a Node represents.
type NodeKind int

const (
	// Unknown is the zero NodeKind and matches no construct
	Unknown NodeKind = iota
	// Container is a container statement node
	Container
	// Choice is a choice statement node
	Choice
	// Leaf is a leaf statement node
	Leaf
	// LeafList is a leaf-list statement node
	LeafList
	// List is a list statement node
	List
	// Anyxml is an anyxml statement node
	Anyxml
	// Case is a case statement node
	Case
	// Notification is a notification statement node
	Notification
	// RPC is an rpc statement node
	RPC
	// Input is an rpc input statement node
	Input
	// Output is an rpc output statement node
	Output
	// Grouping is a grouping statement node; never instantiable
	Grouping
	// Uses is a uses statement node
	Uses
	// Augment is an augment statement node
	Augment
)

var nodeKindNames = map[NodeKind]string{
	Unknown:      "unknown",
	Container:    "container",
	Choice:       "choice",
	Leaf:         "leaf",
	LeafList:     "leaf-list",
	List:         "list",
	Anyxml:       "anyxml",
	Case:         "case",
	Notification: "notification",
	RPC:          "rpc",
	Input:        "input",
	Output:       "output",
	Grouping:     "grouping",
	Uses:         "uses",
	Augment:      "augment",
}

func (k NodeKind) String() string {
	if s, ok := nodeKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// HasValue reports whether data nodes of kind k carry a typed value.
func (k NodeKind) HasValue() bool { return k == Leaf || k == LeafList }

// HasChildren reports whether data nodes of kind k carry child nodes.
func (k NodeKind) HasChildren() bool {
	return k == Container || k == List || k == RPC || k == Notification
}

// Flags are boolean schema node properties.
type Flags uint32

const (
	// UserOrdered marks a list or leaf-list whose instance order is
	// caller-significant and reorderable via insert directives.
	UserOrdered Flags = 1 << iota
)

// Module is the namespace-qualified identity of a YANG module, along
// with its top-level schema nodes, identities and features.
type Module struct {
	// Name is the module name, used as the namespace qualifier in the
	// JSON encoding and the canonical value form.
	Name string
	// Namespace is the module's XML namespace URI.
	Namespace string
	// Prefix is the module's own preferred XML prefix.
	Prefix string

	// Data is the first top-level data definition node.
	Data *Node
	// Identities are the identities defined by the module.
	Identities []*Identity
	// Features are the feature names defined by the module.
	Features []string
}

// Append adds top-level data nodes to the module, returning the module.
// The module identity is propagated through each subtree to nodes which
// do not already declare their owner (augment copies do).
func (m *Module) Append(nodes ...*Node) *Module {
	for _, n := range nodes {
		n.adopt(m)
		if m.Data == nil {
			m.Data = n
			continue
		}
		last := m.Data
		for last.Next != nil {
			last = last.Next
		}
		last.Next = n
	}
	return m
}

// Node is one schema definition. Nodes form a tree per module via the
// Parent, Child and Next links; sibling order is definition order.
type Node struct {
	// Name is the node's local name.
	Name string
	// Module is the node's owning module. For nodes added to another
	// module's tree by augment, this remains the augmenting module.
	Module *Module
	// Kind is the construct the node represents.
	Kind NodeKind
	// Flags are the node's boolean properties.
	Flags Flags

	Parent *Node
	Child  *Node
	Next   *Node

	// Type is the value type descriptor; Leaf and LeafList only.
	Type *Type
}

func (n *Node) adopt(m *Module) {
	if n.Module == nil {
		n.Module = m
	}
	for c := n.Child; c != nil; c = c.Next {
		c.adopt(m)
	}
}

// Append adds child schema nodes to n, propagating n's module to
// children which do not declare their own owner (augment copies do).
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		c.Parent = n
		if n.Module != nil {
			c.adopt(n.Module)
		}
		if n.Child == nil {
			n.Child = c
			continue
		}
		last := n.Child
		for last.Next != nil {
			last = last.Next
		}
		last.Next = c
	}
	return n
}

// UserOrdered reports whether the node is a user-ordered list or
// leaf-list.
func (n *Node) UserOrdered() bool { return n.Flags&UserOrdered != 0 }

package data

import (
	"github.com/antchfx/xmlquery"
	"github.com/pkg/errors"

	"github.com/andaru/yangdata/schema"
)

// Attr is one instance node attribute. Attributes are owned by a
// module known to the schema context; attributes from unknown modules
// are dropped during decoding.
type Attr struct {
	Name   string
	Module *schema.Module
	Value  string
}

// Node is one instance-data tree node.
//
// The variant a Node represents follows its schema node's kind:
// container, list, rpc and notification nodes carry children; leaf and
// leaf-list nodes carry a Value; anyxml nodes carry an embedded XML
// subtree. Sibling and parent links are maintained by the mutator
// methods and must not be manipulated directly.
type Node struct {
	// Schema is the schema definition this node instantiates. It is a
	// shared read-only reference into the schema context the tree was
	// built against.
	Schema *schema.Node
	// Attrs are the node's attributes, in encounter order.
	Attrs []*Attr
	// Value is the decoded typed value; leaf and leaf-list nodes only.
	Value *Value
	// XML is the embedded unvalidated subtree; anyxml nodes only. Its
	// element children are re-serialized verbatim on encode.
	XML *xmlquery.Node

	next   *Node
	prev   *Node
	parent *Node
	child  *Node
}

// New returns an unlinked instance node for the schema node sn.
func New(sn *schema.Node) *Node {
	n := &Node{Schema: sn}
	n.prev = n
	return n
}

// NewLeaf returns an unlinked leaf or leaf-list instance carrying the
// given value.
func NewLeaf(sn *schema.Node, v *Value) *Node {
	n := New(sn)
	n.Value = v
	return n
}

// NewAnyxml returns an unlinked anyxml instance embedding the given
// subtree. The node takes ownership of the subtree.
func NewAnyxml(sn *schema.Node, xml *xmlquery.Node) *Node {
	n := New(sn)
	n.XML = xml
	return n
}

// Next returns the following sibling, nil at the last sibling.
func (n *Node) Next() *Node { return n.next }

// Prev returns the previous sibling. It is never nil: a node with no
// siblings is its own previous, and the first sibling's previous is the
// last sibling.
func (n *Node) Prev() *Node { return n.prev }

// Parent returns the parent node, nil at a root.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the node's first child, nil for childless and
// non-inner nodes.
func (n *Node) FirstChild() *Node { return n.child }

// First returns the first node of n's sibling list.
func (n *Node) First() *Node {
	if n.parent != nil {
		return n.parent.child
	}
	// the first sibling is the only one whose previous has no next
	f := n
	for f.prev.next != nil {
		f = f.prev
	}
	return f
}

// Last returns the last node of n's sibling list.
func (n *Node) Last() *Node { return n.First().prev }

// Root returns the topmost ancestor of n.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Insert appends child to n's child list. The child is unlinked from
// any previous position first.
func (n *Node) Insert(child *Node) error {
	if n.Schema != nil && !n.Schema.Kind.HasChildren() {
		return errors.Errorf("cannot insert into %s node %q", n.Schema.Kind, n.Schema.Name)
	}
	child.Unlink()
	child.parent = n
	if n.child == nil {
		n.child = child
		child.prev = child
		return nil
	}
	last := n.child.prev
	last.next = child
	child.prev = last
	n.child.prev = child
	return nil
}

// InsertAfter links node as the sibling immediately following n.
func (n *Node) InsertAfter(node *Node) error {
	node.Unlink()
	node.parent = n.parent
	node.prev = n
	node.next = n.next
	if n.next != nil {
		n.next.prev = node
	} else {
		// n was last: fix the ring closure on the first sibling
		n.First().prev = node
	}
	n.next = node
	return nil
}

// InsertBefore links node as the sibling immediately preceding n.
func (n *Node) InsertBefore(node *Node) error {
	node.Unlink()
	node.parent = n.parent
	node.next = n
	if n.prev.next == nil || n.parent != nil && n.parent.child == n {
		// n is first: node becomes the new head, keeping the ring
		node.prev = n.prev
		if n.parent != nil {
			n.parent.child = node
		}
	} else {
		node.prev = n.prev
		n.prev.next = node
	}
	n.prev = node
	return nil
}

// Unlink removes n from its sibling ring and parent, leaving it a
// standalone root. Its children are unaffected.
func (n *Node) Unlink() {
	if n.parent == nil && n.prev == n && n.next == nil {
		return
	}
	if n.parent != nil && n.parent.child == n {
		n.parent.child = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else if n.prev != n {
		// n was last: close the ring on the new last node
		first := n.prev
		for first.prev != n {
			first = first.prev
		}
		first.prev = n.prev
	}
	if n.prev.next == n {
		n.prev.next = n.next
	}
	n.parent = nil
	n.next = nil
	n.prev = n
}

// Free releases the subtree rooted at n, children first, unlinking n
// from its siblings and parent. The node must not be used afterwards.
func (n *Node) Free() {
	if n == nil {
		return
	}
	for n.child != nil {
		n.child.Free()
	}
	n.Unlink()
	n.Attrs = nil
	n.Value = nil
	n.XML = nil
	n.Schema = nil
}

// FreeForest releases every tree in the sibling list containing n.
func FreeForest(n *Node) {
	if n == nil {
		return
	}
	for node := n.First(); node != nil; {
		next := node.next
		node.Free()
		node = next
	}
}

// Dup returns an unlinked copy of n; with recursive set, the whole
// subtree is copied. Values and attributes are copied, the embedded
// anyxml subtree is shared.
func (n *Node) Dup(recursive bool) *Node {
	dup := New(n.Schema)
	if n.Value != nil {
		v := *n.Value
		dup.Value = &v
	}
	dup.XML = n.XML
	for _, a := range n.Attrs {
		ac := *a
		dup.Attrs = append(dup.Attrs, &ac)
	}
	if recursive {
		for c := n.child; c != nil; c = c.next {
			_ = dup.Insert(c.Dup(true))
		}
	}
	return dup
}

// InsertAttr adds an attribute owned by the given module.
func (n *Node) InsertAttr(mod *schema.Module, name, value string) *Attr {
	a := &Attr{Name: name, Module: mod, Value: value}
	n.Attrs = append(n.Attrs, a)
	return a
}

// Attr returns the first attribute with the given name, nil if absent.
func (n *Node) Attr(name string) *Attr {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// RemoveAttr removes the attribute, reporting whether it was present.
func (n *Node) RemoveAttr(attr *Attr) bool {
	for i, a := range n.Attrs {
		if a == attr {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

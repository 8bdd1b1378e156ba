package schema

// transparent are the schema constructs with no wire representation of
// their own: matching an encoded element passes through them to their
// children without consuming an encoding level.
var transparent = map[NodeKind]bool{
	Choice: true,
	Case:   true,
	Uses:   true,
	Input:  true,
	Output: true,
}

// Transparent reports whether k has no wire representation of its own.
func Transparent(k NodeKind) bool { return transparent[k] }

// Resolve finds the schema node an encoded element instantiates,
// searching the sibling list beginning at start. Groupings are never
// matched; transparent nodes are descended into in place. A candidate
// matches when both its local name and its owning module's namespace
// equal the encoded element's. The first depth-first match is returned;
// schemas are assumed to carry no wire-ambiguous siblings.
func Resolve(name, namespace string, start *Node) *Node {
	for n := start; n != nil; n = n.Next {
		if n.Kind == Grouping {
			continue
		}
		if transparent[n.Kind] {
			if m := Resolve(name, namespace, n.Child); m != nil {
				return m
			}
			continue
		}
		if n.Name == name && n.Module != nil && n.Module.Namespace == namespace {
			return n
		}
	}
	return nil
}

// ResolveTop finds the schema node for a top-level encoded element: the
// namespace selects the module, then the element name is matched
// against the module's top-level nodes.
func (c *Context) ResolveTop(name, namespace string) *Node {
	m := c.ModuleByNamespace(namespace)
	if m == nil {
		return nil
	}
	return Resolve(name, namespace, m.Data)
}

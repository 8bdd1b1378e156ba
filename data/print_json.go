package data

import (
	"io"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/andaru/yangdata/schema"
)

type jsonPrinter struct {
	printer
}

// PrintJSON serializes the instance forest containing root to w as one
// indented JSON document. Members are qualified with "module-name:"
// exactly when their module differs from their structural parent's
// module, or they are top-level.
func PrintJSON(w io.Writer, root *Node) error {
	p := &jsonPrinter{printer: printer{w: w}}
	p.print("{\n")
	p.nodes(1, root.First())
	p.print("}\n")
	return p.err
}

// quote returns s as a JSON string literal.
func quote(s string) string {
	b, err := gojson.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

func jsonIndent(level int) string { return strings.Repeat("  ", level) }

// memberName returns the node's JSON member name, qualified with the
// owning module name at the top level and wherever the module changes.
func memberName(n *Node) string {
	if parent := n.Parent(); parent != nil && parent.Schema.Module == n.Schema.Module {
		return n.Schema.Name
	}
	return n.Schema.Module.Name + ":" + n.Schema.Name
}

func (p *jsonPrinter) nodes(level int, first *Node) {
	for n := first; n != nil; n = n.Next() {
		switch n.Schema.Kind {
		case schema.RPC, schema.Notification, schema.Container:
			p.comma(n)
			p.container(level, n)
		case schema.Leaf:
			p.comma(n)
			p.leaf(level, n, false)
		case schema.LeafList, schema.List:
			// the whole instance group prints at its first occurrence
			if p.groupPrinted(n) {
				continue
			}
			p.comma(n)
			p.leafList(level, n, n.Schema.Kind == schema.List)
		case schema.Anyxml:
			p.comma(n)
			p.anyxml(level, n)
		default:
			p.print(errorSentinel)
		}
	}
	p.print("\n")
}

// comma separates n from an already-printed preceding sibling.
func (p *jsonPrinter) comma(n *Node) {
	if n.Prev().Next() != nil {
		p.print(",\n")
	}
}

// groupPrinted reports whether an earlier sibling instantiates the
// same schema node, meaning n's group has already been rendered.
func (p *jsonPrinter) groupPrinted(n *Node) bool {
	for iter := n.Prev(); iter.Next() != nil; iter = iter.Prev() {
		if iter == n {
			continue
		}
		if iter.Schema == n.Schema {
			return true
		}
	}
	return false
}

func (p *jsonPrinter) attrs(level int, n *Node) {
	for i, attr := range n.Attrs {
		sep := "\n"
		if i < len(n.Attrs)-1 {
			sep = ",\n"
		}
		if attr.Module != n.Schema.Module {
			p.print("%s%s:%s%s", jsonIndent(level),
				quote(attr.Module.Name+":"+attr.Name), quote(attr.Value), sep)
		} else {
			p.print("%s%s:%s%s", jsonIndent(level), quote(attr.Name), quote(attr.Value), sep)
		}
	}
}

// attrMember prints a node's attributes as the "@name" sibling member.
func (p *jsonPrinter) attrMember(level int, n *Node) {
	p.print(",\n%s\"@%s\": {\n", jsonIndent(level), memberName(n))
	p.attrs(level+1, n)
	p.print("%s}", jsonIndent(level))
}

func (p *jsonPrinter) container(level int, n *Node) {
	p.print("%s%s: {\n", jsonIndent(level), quote(memberName(n)))
	level++
	if len(n.Attrs) > 0 {
		p.print("%s\"@\": {\n", jsonIndent(level))
		p.attrs(level+1, n)
		p.print("%s}", jsonIndent(level))
		if n.FirstChild() != nil {
			p.print(",\n")
		}
	}
	p.nodes(level, n.FirstChild())
	level--
	p.print("%s}", jsonIndent(level))
}

func (p *jsonPrinter) leaf(level int, n *Node, onlyValue bool) {
	if !onlyValue {
		p.print("%s%s: ", jsonIndent(level), quote(memberName(n)))
	}
	p.leafValue(level, n)
	if !onlyValue && len(n.Attrs) > 0 {
		p.attrMember(level, n)
	}
}

func (p *jsonPrinter) leafValue(level int, n *Node) {
	v := n.Value
	if v != nil && v.Selection {
		p.print("null")
		return
	}
	kind := schema.UnknownType
	if v != nil {
		kind = v.Kind
	} else if n.Schema.Type != nil {
		kind = n.Schema.Type.Kind
	}
	switch kind {
	case schema.Binary, schema.String, schema.Bits, schema.Enum,
		schema.Identityref, schema.InstanceID:
		if v == nil {
			p.print(`""`)
		} else {
			p.print("%s", quote(v.Str))
		}

	case schema.Bool, schema.Dec64,
		schema.Int8, schema.Int16, schema.Int32, schema.Int64,
		schema.Uint8, schema.Uint16, schema.Uint32, schema.Uint64:
		if v == nil || v.Str == "" {
			p.print("null")
		} else {
			p.print("%s", v.Str)
		}

	case schema.Leafref:
		if v != nil && v.Target != nil {
			p.leaf(level, v.Target, true)
		} else if v != nil {
			p.print("%s", quote(v.Str))
		} else {
			p.print("null")
		}

	case schema.Empty:
		p.print("[null]")

	default:
		if v == nil {
			p.print("null")
		} else {
			p.print(errorSentinel)
		}
	}
}

func (p *jsonPrinter) leafList(level int, n *Node, isList bool) {
	empty := isList && n.FirstChild() == nil ||
		!isList && (n.Value == nil || n.Value.Selection)

	p.print("%s%s:", jsonIndent(level), quote(memberName(n)))
	if empty {
		p.print(" null")
		return
	}
	p.print(" [\n")

	if !isList {
		level++
	}
	hasAttrs := false
	for list := n; list != nil; {
		if isList {
			level++
			p.print("%s{\n", jsonIndent(level))
			level++
			if len(list.Attrs) > 0 {
				p.print("%s\"@\": {\n", jsonIndent(level))
				p.attrs(level+1, list)
				p.print("%s}", jsonIndent(level))
				if list.FirstChild() != nil {
					p.print(",\n")
				}
			}
			p.nodes(level, list.FirstChild())
			level--
			p.print("%s}", jsonIndent(level))
			level--
		} else {
			p.print("%s", jsonIndent(level))
			p.leafValue(level, list)
			if len(list.Attrs) > 0 {
				hasAttrs = true
			}
		}
		if list = nextInstance(list); list != nil {
			p.print(",\n")
		}
	}
	if !isList {
		level--
	}
	p.print("\n%s]", jsonIndent(level))

	// leaf-list attributes render as a parallel array member
	if !isList && hasAttrs {
		p.print(",\n%s\"@%s\": [\n", jsonIndent(level), memberName(n))
		level++
		for list := n; list != nil; {
			if len(list.Attrs) > 0 {
				p.print("%s{\n", jsonIndent(level))
				p.attrs(level+1, list)
				p.print("%s}", jsonIndent(level))
			} else {
				p.print("%snull", jsonIndent(level))
			}
			if list = nextInstance(list); list != nil {
				p.print(",\n")
			}
		}
		level--
		p.print("\n%s]", jsonIndent(level))
	}
}

// nextInstance returns the next sibling instantiating the same schema
// node, skipping unrelated interleaved siblings.
func nextInstance(n *Node) *Node {
	for next := n.Next(); next != nil; next = next.Next() {
		if next.Schema == n.Schema {
			return next
		}
	}
	return nil
}

func (p *jsonPrinter) anyxml(level int, n *Node) {
	// embedded XML cannot be faithfully projected into JSON
	p.print("%s%s: [null]", jsonIndent(level), quote(memberName(n)))
	if len(n.Attrs) > 0 {
		p.attrMember(level, n)
	}
}

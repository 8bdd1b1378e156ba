package data

import (
	"fmt"
	"io"
	"strings"

	"github.com/andaru/yangdata/schema"
	"github.com/andaru/yangdata/xmlutil"
)

// errorSentinel is emitted in place of a value whose resolved kind is
// inconsistent with its declared type.
const errorSentinel = `"(!error!)"`

// printer accumulates output, capturing the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) print(format string, args ...interface{}) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

func (p *printer) text(s string) {
	if p.err == nil {
		p.err = xmlutil.EscapeText(p.w, s)
	}
}

func (p *printer) attrValue(s string) {
	if p.err == nil {
		p.err = xmlutil.EscapeAttr(p.w, s)
	}
}

type xmlPrinter struct {
	printer
	ctx *schema.Context
}

// PrintXML serializes the instance forest containing root to w, each
// tree as one XML element. With indent set, output is indented two
// spaces per level with one element per line; otherwise it is compact.
func PrintXML(ctx *schema.Context, w io.Writer, root *Node, indent bool) error {
	p := &xmlPrinter{printer: printer{w: w}, ctx: ctx}
	level := 0
	if indent {
		level = 1
	}
	for n := root.First(); n != nil; n = n.Next() {
		p.node(level, n, true)
	}
	return p.err
}

func indentOf(level int) string {
	if level == 0 {
		return ""
	}
	return strings.Repeat("  ", level-1)
}

func (p *xmlPrinter) node(level int, n *Node, toplevel bool) {
	switch n.Schema.Kind {
	case schema.Notification, schema.RPC, schema.Container, schema.List:
		p.container(level, n, toplevel)
	case schema.Leaf, schema.LeafList:
		p.leaf(level, n, toplevel)
	case schema.Anyxml:
		p.anyxml(level, n, toplevel)
	default:
		p.print(errorSentinel)
	}
}

// open prints the start of n's element, declaring its namespace when
// its module differs from the parent's (or there is no parent).
func (p *xmlPrinter) open(level int, n *Node, toplevel bool) {
	if parent := n.Parent(); parent == nil || parent.Schema.Module != n.Schema.Module {
		p.print("%s<%s xmlns=\"%s\"", indentOf(level), n.Schema.Name, n.Schema.Module.Namespace)
	} else {
		p.print("%s<%s", indentOf(level), n.Schema.Name)
	}
	if toplevel {
		p.nsDecls(n)
	}
	p.attrs(n)
}

// nsDecls emits, on a top-level element, one xmlns declaration per
// distinct module owning an attribute of the node or any descendant.
func (p *xmlPrinter) nsDecls(n *Node) {
	var mods []*schema.Module
	add := func(m *schema.Module) {
		for _, have := range mods {
			if have == m {
				return
			}
		}
		mods = append(mods, m)
	}
	var walk func(*Node)
	walk = func(node *Node) {
		filter := rpcFilter(node.Schema)
		for _, a := range node.Attrs {
			if filter && (a.Name == "type" || a.Name == "select") {
				// printed unqualified, declarations emitted with the
				// rewritten select value instead
				continue
			}
			add(a.Module)
		}
		for c := node.FirstChild(); c != nil; c = c.Next() {
			walk(c)
		}
	}
	walk(n)
	for _, m := range mods {
		p.print(" xmlns:%s=\"%s\"", m.Prefix, m.Namespace)
	}
}

// rpcFilter reports whether sn is a subtree/xpath filter carrier, whose
// type and select attributes are encoded unqualified (the
// get-filter-element-attributes extension).
func rpcFilter(sn *schema.Node) bool {
	return sn.Name == "filter" &&
		(sn.Module.Name == "ietf-netconf" || sn.Module.Name == "notifications")
}

func (p *xmlPrinter) attrs(n *Node) {
	filter := rpcFilter(n.Schema)

	for _, attr := range n.Attrs {
		switch {
		case filter && attr.Name == "type":
			p.print(" %s=\"", attr.Name)
		case filter && attr.Name == "select":
			expr, decls, err := transformCanonicalToXML(p.ctx, attr.Value)
			if err != nil {
				p.print(errorSentinel)
				return
			}
			for _, decl := range decls.Attr() {
				p.print(" xmlns:%s=\"%s\"", decl.Name.Local, decl.Value)
			}
			p.print(" %s=\"", attr.Name)
			p.attrValue(expr)
			p.print("\"")
			continue
		default:
			p.print(" %s:%s=\"", attr.Module.Prefix, attr.Name)
		}
		p.attrValue(attr.Value)
		p.print("\"")
	}
}

func (p *xmlPrinter) close(level int, n *Node, content bool) {
	nl := ""
	if level > 0 {
		nl = "\n"
	}
	if content {
		p.print("%s</%s>%s", indentOf(level), n.Schema.Name, nl)
	} else {
		p.print("/>%s", nl)
	}
}

func (p *xmlPrinter) container(level int, n *Node, toplevel bool) {
	p.open(level, n, toplevel)
	if n.FirstChild() == nil {
		p.close(0, n, false)
		if level > 0 {
			p.print("\n")
		}
		return
	}
	if level > 0 {
		p.print(">\n")
	} else {
		p.print(">")
	}
	for c := n.FirstChild(); c != nil; c = c.Next() {
		childLevel := 0
		if level > 0 {
			childLevel = level + 1
		}
		p.node(childLevel, c, false)
	}
	p.close(level, n, true)
}

func (p *xmlPrinter) leaf(level int, n *Node, toplevel bool) {
	p.open(level, n, toplevel)

	v := n.Value
	kind := schema.UnknownType
	if v != nil {
		kind = v.Kind
	} else if n.Schema.Type != nil {
		kind = n.Schema.Type.Kind
	}

	switch kind {
	case schema.Binary, schema.String, schema.Bits, schema.Enum, schema.Bool,
		schema.Dec64, schema.Int8, schema.Int16, schema.Int32, schema.Int64,
		schema.Uint8, schema.Uint16, schema.Uint32, schema.Uint64:
		if v == nil || v.Str == "" {
			p.print("/>")
		} else {
			p.print(">")
			p.text(v.Str)
			p.print("</%s>", n.Schema.Name)
		}

	case schema.Identityref, schema.InstanceID:
		if v == nil {
			p.print("/>")
			break
		}
		expr, decls, err := transformCanonicalToXML(p.ctx, v.Str)
		if err != nil {
			p.print(errorSentinel)
			return
		}
		for _, decl := range decls.Attr() {
			p.print(" xmlns:%s=\"%s\"", decl.Name.Local, decl.Value)
		}
		if expr != "" {
			p.print(">")
			p.text(expr)
			p.print("</%s>", n.Schema.Name)
		} else {
			p.print("/>")
		}

	case schema.Leafref:
		if v == nil {
			p.print("/>")
			break
		}
		p.print(">")
		if v.Target != nil && v.Target.Value != nil {
			p.text(v.Target.Value.Str)
		} else {
			// not resolved; the retained text is the referenced value
			p.text(v.Str)
		}
		p.print("</%s>", n.Schema.Name)

	case schema.Empty:
		p.print("/>")

	default:
		if v == nil {
			p.print("/>")
		} else {
			p.print(errorSentinel)
			return
		}
	}

	if level > 0 {
		p.print("\n")
	}
}

func (p *xmlPrinter) anyxml(level int, n *Node, toplevel bool) {
	p.open(level, n, toplevel)
	if n.XML == nil || n.XML.FirstChild == nil {
		p.close(0, n, false)
		if level > 0 {
			p.print("\n")
		}
		return
	}
	if level > 0 {
		p.print(">\n")
	} else {
		p.print(">")
	}
	// the embedded subtree is reproduced verbatim
	for c := n.XML.FirstChild; c != nil; c = c.NextSibling {
		p.print("%s", c.OutputXML(true))
	}
	if level > 0 {
		p.print("\n")
	}
	p.close(level, n, true)
}

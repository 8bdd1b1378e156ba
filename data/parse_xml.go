package data

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/andaru/yangdata/schema"
	"github.com/andaru/yangdata/xmlutil"
	"github.com/andaru/yangdata/yangerr"
)

// nsYANG is the namespace of the insert/value edit directive attributes.
const nsYANG = "urn:ietf:params:xml:ns:yang:1"

// ParseOption is a parser option function
type ParseOption func(*parser)

// WithValidator sets the constraint-validation collaborator invoked at
// the per-node hook points.
func WithValidator(v Validator) ParseOption {
	return func(p *parser) { p.validator = v }
}

type parser struct {
	ctx       *schema.Context
	validator Validator
	unres     *Unres
	log       logrus.FieldLogger
}

func newParser(ctx *schema.Context, popts ...ParseOption) *parser {
	p := &parser{
		ctx:       ctx,
		validator: nopValidator{},
		unres:     &Unres{},
		log:       ctx.Logger(),
	}
	for _, opt := range popts {
		opt(p)
	}
	return p
}

// ParseXML decodes the element children of root (typically an xmlquery
// document node) into an instance forest, returning its first tree.
// On any error no result is returned and any partially built forest is
// released.
func ParseXML(ctx *schema.Context, root *xmlquery.Node, opts Options, popts ...ParseOption) (*Node, error) {
	if ctx == nil || root == nil {
		return nil, errors.New("invalid parameter")
	}
	return newParser(ctx, popts...).parseForest(root, nil, opts)
}

// ParseXMLRPCOutput decodes an rpc reply body scoped beneath the given
// rpc schema node, whose output children the top-level elements must
// match.
func ParseXMLRPCOutput(ctx *schema.Context, rpc *schema.Node, root *xmlquery.Node, opts Options, popts ...ParseOption) (*Node, error) {
	if ctx == nil || root == nil || rpc == nil || rpc.Kind != schema.RPC {
		return nil, errors.New("invalid parameter")
	}
	return newParser(ctx, popts...).parseForest(root, rpc, opts)
}

func (p *parser) parseForest(root *xmlquery.Node, schemaParent *schema.Node, opts Options) (*Node, error) {
	var first, last *Node
	fail := func(err error) (*Node, error) {
		FreeForest(first)
		return nil, err
	}
	for el := root.FirstChild; el != nil; {
		next := el.NextSibling
		if el.Type == xmlquery.ElementNode {
			n, err := p.element(el, schemaParent, nil, opts)
			if err != nil {
				return fail(err)
			}
			if n != nil {
				if first == nil {
					first = n
				} else {
					_ = last.InsertAfter(n)
				}
				last = n
			}
		}
		if opts&Destruct != 0 {
			removeXML(el)
		}
		el = next
	}
	if first == nil {
		return nil, errors.New("no data found for any loaded module")
	}
	// leafref and instance-identifier checking over the whole forest
	if err := p.resolveUnres(); err != nil {
		return fail(err)
	}
	return first, nil
}

// element decodes one encoded element, linking the produced node under
// parent. A nil node with nil error means the element was skipped.
func (p *parser) element(el *xmlquery.Node, schemaParent *schema.Node, parent *Node, opts Options) (*Node, error) {
	ns := el.NamespaceURI
	if ns == "" {
		return nil, yangerr.MissingNamespace(el.Data)
	}

	// find the schema node
	var sn *schema.Node
	switch {
	case schemaParent != nil:
		sn = schema.Resolve(el.Data, ns, schemaParent.Child)
	case parent == nil:
		sn = p.ctx.ResolveTop(el.Data, ns)
	default:
		sn = schema.Resolve(el.Data, ns, parent.Schema.Child)
	}
	if sn == nil {
		if opts&Strict != 0 || p.ctx.ModuleByNamespace(ns) != nil {
			return nil, yangerr.UnknownElement(el.Data,
				yangerr.WithMessage("no matching element in loaded modules"))
		}
		// an unrecognized foreign namespace is silently ignored
		return nil, nil
	}

	if opts&Edit != 0 {
		if err := checkInsertAttrs(el, sn); err != nil {
			return nil, err
		}
	}

	switch sn.Kind {
	case schema.Container, schema.List, schema.Notification, schema.RPC,
		schema.Leaf, schema.LeafList, schema.Anyxml:
	default:
		return nil, yangerr.Internal(
			yangerr.WithMessage("unexpected schema nodetype " + sn.Kind.String()))
	}
	n := New(sn)
	if parent != nil {
		if err := parent.Insert(n); err != nil {
			return nil, yangerr.Internal(yangerr.WithMessage(err.Error()))
		}
	}

	if err := p.validator.EstablishContext(n, opts, p.unres); err != nil {
		n.Free()
		return nil, err
	}

	// type specific processing
	switch {
	case sn.Kind.HasValue():
		if err := p.leafValue(n, el, opts); err != nil {
			n.Free()
			return nil, err
		}
	case sn.Kind == schema.Anyxml && opts&Filter == 0:
		// the element's children become the anyxml value, taken from
		// the source document
		n.XML = detachChildren(el)
	}

	for _, attr := range el.Attr {
		if xmlutil.IsNamespaceDecl(attr) {
			continue
		}
		if attr.NamespaceURI == "" {
			// the get-filter-element-attributes extension writes its
			// attributes unqualified
			if rpcFilter(sn) && (attr.Name.Local == "type" || attr.Name.Local == "select") {
				if err := p.filterAttr(n, el, attr); err != nil {
					n.Free()
					return nil, err
				}
				continue
			}
			p.log.Warnf("ignoring %q attribute in %q element", attr.Name.Local, el.Data)
			continue
		}
		mod := p.ctx.ModuleByNamespace(attr.NamespaceURI)
		if mod == nil {
			p.log.Warnf("attribute %q from unknown schema (%q) - skipping",
				attr.Name.Local, attr.NamespaceURI)
			continue
		}
		n.InsertAttr(mod, attr.Name.Local, attr.Value)
	}

	if sn.Kind.HasChildren() {
		childOpts := opts
		if sn.Kind == schema.RPC || sn.Kind == schema.Notification {
			// rpc and notification content is always a plain instance
			// document
			childOpts = 0
		}
		for c := el.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == xmlquery.ElementNode {
				if _, err := p.element(c, nil, n, childOpts); err != nil {
					n.Free()
					return nil, err
				}
			}
			if opts&Destruct != 0 {
				removeXML(c)
			}
			c = next
		}
	}

	// content checks over the completed subtree
	if err := p.validator.ValidateContent(n, opts, p.unres); err != nil {
		n.Free()
		if errors.Is(err, Pruned) {
			return nil, nil
		}
		return nil, err
	}
	return n, nil
}

// filterAttr attaches a filter type or select attribute, select values
// rewritten to canonical form and syntax checked.
func (p *parser) filterAttr(n *Node, el *xmlquery.Node, attr xmlquery.Attr) error {
	value := attr.Value
	if attr.Name.Local == "select" {
		canon, err := transformXMLToCanonical(p.ctx, value, el)
		if err != nil {
			return yangerr.BadAttribute("select", n.Schema.Name,
				yangerr.WithMessage(err.Error()))
		}
		if _, err := xpath.Compile(canon); err != nil {
			return yangerr.BadAttribute("select", n.Schema.Name,
				yangerr.WithMessage(err.Error()))
		}
		value = canon
	}
	n.InsertAttr(n.Schema.Module, attr.Name.Local, value)
	return nil
}

// checkInsertAttrs validates the edit-semantics insert/value directive
// attributes before any node is constructed.
func checkInsertAttrs(el *xmlquery.Node, sn *schema.Node) error {
	arity := 0
	for _, attr := range el.Attr {
		if !isYangAttr(attr, "insert") {
			continue
		}
		if !sn.UserOrdered() {
			return yangerr.BadAttribute("insert", sn.Name)
		}
		if arity != 0 {
			return yangerr.TooMany("insert attributes", el.Data)
		}
		switch attr.Value {
		case "first", "last":
			arity = 1
		case "before", "after":
			arity = 2
		default:
			return yangerr.BadArgument(attr.Value, "insert")
		}
	}
	for _, attr := range el.Attr {
		if !isYangAttr(attr, "value") {
			continue
		}
		if arity < 2 {
			return yangerr.BadAttribute("value", sn.Name)
		}
		arity++
	}
	if arity == 2 {
		// before/after requires exactly one anchor value
		return yangerr.MissingAttribute("value", el.Data)
	}
	if arity > 3 {
		return yangerr.TooMany("value attributes", el.Data)
	}
	return nil
}

func isYangAttr(attr xmlquery.Attr, name string) bool {
	return !xmlutil.IsNamespaceDecl(attr) &&
		attr.NamespaceURI == nsYANG && attr.Name.Local == name
}

// elementText returns the concatenated direct text content of el.
func elementText(el *xmlquery.Node) string {
	var b strings.Builder
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// detachChildren transfers ownership of el's children to a new
// detached holder document, leaving el childless in the source tree.
func detachChildren(el *xmlquery.Node) *xmlquery.Node {
	holder := &xmlquery.Node{Type: xmlquery.DocumentNode}
	first := el.FirstChild
	if first == nil {
		return holder
	}
	holder.FirstChild, holder.LastChild = first, el.LastChild
	el.FirstChild, el.LastChild = nil, nil
	for c := first; c != nil; c = c.NextSibling {
		c.Parent = holder
	}
	return holder
}

// removeXML unlinks an element from its source document, releasing it
// for collection under the Destruct option.
func removeXML(n *xmlquery.Node) {
	if parent := n.Parent; parent != nil {
		if parent.FirstChild == n {
			parent.FirstChild = n.NextSibling
		}
		if parent.LastChild == n {
			parent.LastChild = n.PrevSibling
		}
	}
	if n.PrevSibling != nil {
		n.PrevSibling.NextSibling = n.NextSibling
	}
	if n.NextSibling != nil {
		n.NextSibling.PrevSibling = n.PrevSibling
	}
	n.Parent, n.PrevSibling, n.NextSibling = nil, nil, nil
}

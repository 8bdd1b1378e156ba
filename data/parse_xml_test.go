package data

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andaru/yangdata/schema"
	"github.com/andaru/yangdata/yangerr"
)

// testContext builds the schema used throughout the decode and encode
// tests: one application module "m" plus the metadata module owning
// the insert directive attributes.
func testContext(t *testing.T) *schema.Context {
	t.Helper()
	ctx := schema.NewContext()

	m := &schema.Module{Name: "m", Namespace: "urn:m", Prefix: "m"}
	ifType := &schema.Identity{Name: "interface-type", Module: m}
	ethernet := &schema.Identity{Name: "ethernet", Module: m, Base: ifType}
	standalone := &schema.Identity{Name: "standalone", Module: m}
	m.Identities = []*schema.Identity{ifType, ethernet, standalone}

	m.Append(
		&schema.Node{Name: "count", Kind: schema.Leaf,
			Type: &schema.Type{Kind: schema.Int32}},
		(&schema.Node{Name: "cont", Kind: schema.Container}).Append(
			&schema.Node{Name: "name", Kind: schema.Leaf,
				Type: &schema.Type{Kind: schema.String}},
		),
		(&schema.Node{Name: "srv", Kind: schema.List}).Append(
			&schema.Node{Name: "name", Kind: schema.Leaf,
				Type: &schema.Type{Kind: schema.String}},
			&schema.Node{Name: "port", Kind: schema.Leaf,
				Type: &schema.Type{Kind: schema.Uint16}},
		),
		&schema.Node{Name: "tags", Kind: schema.LeafList, Flags: schema.UserOrdered,
			Type: &schema.Type{Kind: schema.String}},
		&schema.Node{Name: "ref", Kind: schema.Leaf,
			Type: &schema.Type{Kind: schema.Leafref, LeafrefPath: "/m:cont/m:name"}},
		&schema.Node{Name: "iftype", Kind: schema.Leaf,
			Type: &schema.Type{Kind: schema.Identityref, Base: ifType}},
		&schema.Node{Name: "uni", Kind: schema.Leaf,
			Type: &schema.Type{Kind: schema.Union, Union: []*schema.Type{
				{Kind: schema.Int32}, {Kind: schema.String}}}},
		&schema.Node{Name: "inu", Kind: schema.Leaf,
			Type: &schema.Type{Kind: schema.Union, Union: []*schema.Type{
				{Kind: schema.String}, {Kind: schema.Int32}}}},
		&schema.Node{Name: "ib", Kind: schema.Leaf,
			Type: &schema.Type{Kind: schema.Union, Union: []*schema.Type{
				{Kind: schema.Int32}, {Kind: schema.Bool}}}},
		&schema.Node{Name: "uref", Kind: schema.Leaf,
			Type: &schema.Type{Kind: schema.Union, Union: []*schema.Type{
				{Kind: schema.Leafref, LeafrefPath: "/m:cont/m:name"},
				{Kind: schema.Int32}}}},
		&schema.Node{Name: "blob", Kind: schema.Anyxml},
		&schema.Node{Name: "on", Kind: schema.Leaf,
			Type: &schema.Type{Kind: schema.Bool}},
		&schema.Node{Name: "price", Kind: schema.Leaf,
			Type: &schema.Type{Kind: schema.Dec64, FractionDigits: 2}},
		&schema.Node{Name: "flags", Kind: schema.LeafList,
			Type: &schema.Type{Kind: schema.Bits, BitNames: []string{"a", "b", "c"}}},
		&schema.Node{Name: "lvl", Kind: schema.Leaf,
			Type: &schema.Type{Kind: schema.Enum, Enums: []string{"low", "high"}}},
		&schema.Node{Name: "bin", Kind: schema.Leaf,
			Type: &schema.Type{Kind: schema.Binary}},
		&schema.Node{Name: "e", Kind: schema.Leaf,
			Type: &schema.Type{Kind: schema.Empty}},
		&schema.Node{Name: "inst", Kind: schema.Leaf,
			Type: &schema.Type{Kind: schema.InstanceID}},
		(&schema.Node{Name: "run", Kind: schema.RPC}).Append(
			(&schema.Node{Name: "input", Kind: schema.Input}).Append(
				&schema.Node{Name: "arg", Kind: schema.Leaf,
					Type: &schema.Type{Kind: schema.String}},
				&schema.Node{Name: "num", Kind: schema.Leaf,
					Type: &schema.Type{Kind: schema.Int32}},
			),
			(&schema.Node{Name: "output", Kind: schema.Output}).Append(
				&schema.Node{Name: "result", Kind: schema.Leaf,
					Type: &schema.Type{Kind: schema.String}},
			),
		),
	)
	ctx.MustAddModule(m)
	ctx.MustAddModule(&schema.Module{Name: "yang", Namespace: nsYANG, Prefix: "yang"})

	nc := &schema.Module{Name: "ietf-netconf",
		Namespace: "urn:ietf:params:xml:ns:netconf:base:1.0", Prefix: "nc"}
	nc.Append(&schema.Node{Name: "filter", Kind: schema.Anyxml})
	ctx.MustAddModule(nc)
	return ctx
}

// parseWrapped parses the XML fragment inside a throwaway wrapper
// element, returning the wrapper for use as a decode root.
func parseWrapped(t *testing.T, inner string) *xmlquery.Node {
	t.Helper()
	doc, err := xmlquery.Parse(strings.NewReader("<d>" + inner + "</d>"))
	require.NoError(t, err)
	for root := doc.FirstChild; root != nil; root = root.NextSibling {
		if root.Type == xmlquery.ElementNode {
			return root
		}
	}
	t.Fatal("no wrapper element")
	return nil
}

func TestParseLeaf(t *testing.T) {
	ctx := testContext(t)
	n, err := ParseXML(ctx, parseWrapped(t, `<count xmlns="urn:m">5</count>`), 0)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "count", n.Schema.Name)
	require.NotNil(t, n.Value)
	assert.Equal(t, schema.Int32, n.Value.Kind)
	assert.Equal(t, int64(5), n.Value.Int)
	assert.Equal(t, "5", n.Value.Str)
	assert.Nil(t, n.Next())
}

func TestParseMissingNamespace(t *testing.T) {
	ctx := testContext(t)
	_, err := ParseXML(ctx, parseWrapped(t, `<count>5</count>`), 0)
	require.Error(t, err)
	yerr, ok := err.(*yangerr.Error)
	require.True(t, ok)
	assert.Equal(t, "unknown-namespace", yerr.Tag)
}

func TestParseUnmatchedElements(t *testing.T) {
	ctx := testContext(t)

	// a foreign namespace is skipped unless parsing strictly
	doc := `<count xmlns="urn:m">5</count><foo xmlns="urn:x"/>`
	n, err := ParseXML(ctx, parseWrapped(t, doc), 0)
	require.NoError(t, err)
	assert.Equal(t, "count", n.Schema.Name)
	assert.Nil(t, n.Next())

	_, err = ParseXML(ctx, parseWrapped(t, doc), Strict)
	require.Error(t, err)

	// an unmatched element in a loaded module's namespace always fails
	_, err = ParseXML(ctx, parseWrapped(t, `<nope xmlns="urn:m"/>`), 0)
	require.Error(t, err)
	yerr, ok := err.(*yangerr.Error)
	require.True(t, ok)
	assert.Equal(t, "unknown-element", yerr.Tag)

	// nothing decoded at all is an error in any mode
	_, err = ParseXML(ctx, parseWrapped(t, `<foo xmlns="urn:x"/>`), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data found")
}

func TestParseBadValue(t *testing.T) {
	ctx := testContext(t)
	_, err := ParseXML(ctx, parseWrapped(t, `<count xmlns="urn:m">five</count>`), 0)
	require.Error(t, err)
	yerr, ok := err.(*yangerr.Error)
	require.True(t, ok)
	assert.Equal(t, yangerr.ClassValue, yerr.Class)
	assert.Equal(t, "invalid-value", yerr.Tag)
}

func TestParseContainer(t *testing.T) {
	ctx := testContext(t)
	doc := `<cont xmlns="urn:m"><name>eth0</name></cont>`
	n, err := ParseXML(ctx, parseWrapped(t, doc), 0)
	require.NoError(t, err)
	assert.Equal(t, "cont", n.Schema.Name)
	child := n.FirstChild()
	require.NotNil(t, child)
	assert.Equal(t, "name", child.Schema.Name)
	assert.Equal(t, "eth0", child.Value.Str)
	assert.Same(t, n, child.Parent())
}

func TestParseInsertDirectives(t *testing.T) {
	ctx := testContext(t)
	const yns = ` xmlns:y="urn:ietf:params:xml:ns:yang:1"`

	for _, tc := range []struct {
		name string
		doc  string
		tag  string
	}{
		{name: "first ok",
			doc: `<tags xmlns="urn:m"` + yns + ` y:insert="first">x</tags>`},
		{name: "after with anchor ok",
			doc: `<tags xmlns="urn:m"` + yns + ` y:insert="after" y:value="x">z</tags>`},
		{name: "before without anchor",
			doc: `<tags xmlns="urn:m"` + yns + ` y:insert="before">x</tags>`,
			tag: "missing-attribute"},
		{name: "insert on ordered-by system leaf",
			doc: `<count xmlns="urn:m"` + yns + ` y:insert="first">5</count>`,
			tag: "bad-attribute"},
		{name: "unknown directive argument",
			doc: `<tags xmlns="urn:m"` + yns + ` y:insert="sideways">x</tags>`,
			tag: "bad-attribute"},
		{name: "anchor without insert",
			doc: `<tags xmlns="urn:m"` + yns + ` y:value="x">z</tags>`,
			tag: "bad-attribute"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			n, err := ParseXML(ctx, parseWrapped(t, tc.doc), Edit)
			if tc.tag == "" {
				require.NoError(t, err)
				require.NotNil(t, n.Attr("insert"))
				assert.Equal(t, "yang", n.Attr("insert").Module.Name)
				return
			}
			require.Error(t, err)
			yerr, ok := err.(*yangerr.Error)
			require.True(t, ok)
			assert.Equal(t, tc.tag, yerr.Tag)
		})
	}

	// the directives are only interpreted under edit semantics
	doc := `<tags xmlns="urn:m"` + yns + ` y:insert="before">x</tags>`
	_, err := ParseXML(ctx, parseWrapped(t, doc), 0)
	assert.NoError(t, err)
}

func TestParseFilterSelection(t *testing.T) {
	ctx := testContext(t)
	n, err := ParseXML(ctx, parseWrapped(t, `<count xmlns="urn:m"/>`), Filter)
	require.NoError(t, err)
	require.NotNil(t, n.Value)
	assert.Equal(t, "", n.Value.Str)
	assert.Equal(t, int64(0), n.Value.Int)

	// outside filter semantics the same document fails to decode
	_, err = ParseXML(ctx, parseWrapped(t, `<count xmlns="urn:m"/>`), 0)
	require.Error(t, err)
}

func TestParseUnion(t *testing.T) {
	ctx := testContext(t)

	// member order decides: int32 before string decodes "42" as int32
	n, err := ParseXML(ctx, parseWrapped(t, `<uni xmlns="urn:m">42</uni>`), 0)
	require.NoError(t, err)
	assert.Equal(t, schema.Int32, n.Value.Kind)
	assert.Equal(t, int64(42), n.Value.Int)

	// string before int32 decodes the same text as string
	n, err = ParseXML(ctx, parseWrapped(t, `<inu xmlns="urn:m">42</inu>`), 0)
	require.NoError(t, err)
	assert.Equal(t, schema.String, n.Value.Kind)
	assert.Equal(t, "42", n.Value.Str)

	// non-numeric falls through int32 to the string member
	n, err = ParseXML(ctx, parseWrapped(t, `<uni xmlns="urn:m">x</uni>`), 0)
	require.NoError(t, err)
	assert.Equal(t, schema.String, n.Value.Kind)

	// exhausting every member is a value error
	_, err = ParseXML(ctx, parseWrapped(t, `<ib xmlns="urn:m">maybe</ib>`), 0)
	require.Error(t, err)
	yerr, ok := err.(*yangerr.Error)
	require.True(t, ok)
	assert.Equal(t, "invalid-value", yerr.Tag)
}

func TestParseUnionLeafref(t *testing.T) {
	ctx := testContext(t)

	// the leafref member wins when its target exists
	doc := `<cont xmlns="urn:m"><name>srv1</name></cont><uref xmlns="urn:m">srv1</uref>`
	n, err := ParseXML(ctx, parseWrapped(t, doc), 0)
	require.NoError(t, err)
	uref := n.Next()
	require.NotNil(t, uref.Value)
	assert.Equal(t, schema.Leafref, uref.Value.Kind)
	require.NotNil(t, uref.Value.Target)
	assert.Equal(t, "srv1", uref.Value.Target.Value.Str)

	// without a target, remaining members are retried at end of
	// document
	n, err = ParseXML(ctx, parseWrapped(t, `<uref xmlns="urn:m">42</uref>`), 0)
	require.NoError(t, err)
	require.NotNil(t, n.Value)
	assert.Equal(t, schema.Int32, n.Value.Kind)
	assert.Equal(t, int64(42), n.Value.Int)
	assert.Nil(t, n.Value.Target)

	// text matching no member at all is a missing reference
	_, err = ParseXML(ctx, parseWrapped(t, `<uref xmlns="urn:m">zzz</uref>`), 0)
	require.Error(t, err)
	yerr, ok := err.(*yangerr.Error)
	require.True(t, ok)
	assert.Equal(t, "data-missing", yerr.Tag)
	assert.Equal(t, yangerr.ClassReference, yerr.Class)
}

func TestParseLeafref(t *testing.T) {
	ctx := testContext(t)
	doc := `<cont xmlns="urn:m"><name>eth0</name></cont><ref xmlns="urn:m">eth0</ref>`
	n, err := ParseXML(ctx, parseWrapped(t, doc), 0)
	require.NoError(t, err)
	ref := n.Next()
	require.NotNil(t, ref)
	require.NotNil(t, ref.Value)
	require.NotNil(t, ref.Value.Target)
	assert.Equal(t, "name", ref.Value.Target.Schema.Name)
	assert.Equal(t, "eth0", ref.Value.Target.Value.Str)
	assert.False(t, ref.Value.Unresolved)
}

func TestParseLeafrefMissingTarget(t *testing.T) {
	ctx := testContext(t)
	doc := `<ref xmlns="urn:m">eth0</ref>`

	_, err := ParseXML(ctx, parseWrapped(t, doc), 0)
	require.Error(t, err)
	yerr, ok := err.(*yangerr.Error)
	require.True(t, ok)
	assert.Equal(t, yangerr.ClassReference, yerr.Class)
	assert.Equal(t, "data-missing", yerr.Tag)

	// relaxed modes defer the lookup instead of failing
	n, err := ParseXML(ctx, parseWrapped(t, doc), Edit)
	require.NoError(t, err)
	assert.True(t, n.Value.Unresolved)
	assert.Nil(t, n.Value.Target)
}

func TestParseInstanceID(t *testing.T) {
	ctx := testContext(t)
	doc := `<cont xmlns="urn:m"><name>eth0</name></cont>` +
		`<inst xmlns="urn:m" xmlns:p="urn:m">/p:cont/p:name</inst>`
	n, err := ParseXML(ctx, parseWrapped(t, doc), 0)
	require.NoError(t, err)
	inst := n.Next()
	require.NotNil(t, inst)
	// the retained text uses module-name qualifiers
	assert.Equal(t, "/m:cont/m:name", inst.Value.Str)
	require.NotNil(t, inst.Value.Target)
	assert.Equal(t, "name", inst.Value.Target.Schema.Name)

	_, err = ParseXML(ctx, parseWrapped(t, `<inst xmlns="urn:m">cont</inst>`), 0)
	require.Error(t, err, "instance-identifier must be absolute")

	doc = `<inst xmlns="urn:m" xmlns:p="urn:m">/p:cont/p:gone</inst>`
	_, err = ParseXML(ctx, parseWrapped(t, doc), 0)
	require.Error(t, err)
	yerr, ok := err.(*yangerr.Error)
	require.True(t, ok)
	assert.Equal(t, "data-missing", yerr.Tag)
}

func TestParseIdentityref(t *testing.T) {
	ctx := testContext(t)

	n, err := ParseXML(ctx, parseWrapped(t, `<iftype xmlns="urn:m">ethernet</iftype>`), 0)
	require.NoError(t, err)
	require.NotNil(t, n.Value.Ident)
	assert.Equal(t, "ethernet", n.Value.Ident.Name)
	assert.Equal(t, "ethernet", n.Value.Str)

	// a prefixed value is retained in module-name form
	doc := `<iftype xmlns="urn:m" xmlns:x="urn:m">x:ethernet</iftype>`
	n, err = ParseXML(ctx, parseWrapped(t, doc), 0)
	require.NoError(t, err)
	require.NotNil(t, n.Value.Ident)
	assert.Equal(t, "m:ethernet", n.Value.Str)

	// not derived from the required base
	_, err = ParseXML(ctx, parseWrapped(t, `<iftype xmlns="urn:m">standalone</iftype>`), 0)
	require.Error(t, err)

	_, err = ParseXML(ctx, parseWrapped(t, `<iftype xmlns="urn:m">nosuch</iftype>`), 0)
	require.Error(t, err)

	// an undeclared prefix cannot be translated
	_, err = ParseXML(ctx, parseWrapped(t, `<iftype xmlns="urn:m">q:ethernet</iftype>`), 0)
	require.Error(t, err)
}

func TestParseAnyxml(t *testing.T) {
	ctx := testContext(t)
	root := parseWrapped(t, `<blob xmlns="urn:m"><a><b>x</b></a></blob>`)
	el := root.FirstChild

	n, err := ParseXML(ctx, root, 0)
	require.NoError(t, err)
	require.NotNil(t, n.XML)
	require.NotNil(t, n.XML.FirstChild)
	assert.Equal(t, "a", n.XML.FirstChild.Data)
	assert.Same(t, n.XML, n.XML.FirstChild.Parent)

	// ownership transferred out of the source document
	assert.Nil(t, el.FirstChild)
	assert.Nil(t, el.LastChild)
}

func TestParseAnyxmlFilter(t *testing.T) {
	ctx := testContext(t)
	root := parseWrapped(t, `<blob xmlns="urn:m"><a/></blob>`)
	n, err := ParseXML(ctx, root, Filter)
	require.NoError(t, err)
	// a filter selects the anyxml without consuming its content
	assert.Nil(t, n.XML)
	assert.NotNil(t, root.FirstChild.FirstChild)
}

func TestParseRPC(t *testing.T) {
	ctx := testContext(t)
	n, err := ParseXML(ctx, parseWrapped(t, `<run xmlns="urn:m"><arg>hello</arg></run>`), 0)
	require.NoError(t, err)
	assert.Equal(t, schema.RPC, n.Schema.Kind)
	arg := n.FirstChild()
	require.NotNil(t, arg)
	assert.Equal(t, "arg", arg.Schema.Name)
	assert.Equal(t, "hello", arg.Value.Str)

	// rpc content is always a plain instance document: the outer
	// filter relaxation does not extend into it
	_, err = ParseXML(ctx, parseWrapped(t, `<run xmlns="urn:m"><num/></run>`), Filter)
	require.Error(t, err)
}

func TestParseXMLRPCOutput(t *testing.T) {
	ctx := testContext(t)
	rpc := ctx.ResolveTop("run", "urn:m")
	require.NotNil(t, rpc)
	require.Equal(t, schema.RPC, rpc.Kind)

	n, err := ParseXMLRPCOutput(ctx, rpc, parseWrapped(t, `<result xmlns="urn:m">ok</result>`), 0)
	require.NoError(t, err)
	assert.Equal(t, "result", n.Schema.Name)
	assert.Equal(t, "ok", n.Value.Str)

	_, err = ParseXMLRPCOutput(ctx, rpc, parseWrapped(t, `<count xmlns="urn:m">5</count>`), 0)
	require.Error(t, err, "top-level data node is not in rpc scope")
}

func TestParseDestruct(t *testing.T) {
	ctx := testContext(t)
	root := parseWrapped(t, `<cont xmlns="urn:m"><name>eth0</name></cont>`)
	n, err := ParseXML(ctx, root, Destruct)
	require.NoError(t, err)
	require.NotNil(t, n.FirstChild())
	assert.Equal(t, "eth0", n.FirstChild().Value.Str)
	assert.Nil(t, root.FirstChild, "consumed source document")
}

func TestParseAttrs(t *testing.T) {
	ctx := testContext(t)
	doc := `<count xmlns="urn:m" xmlns:mm="urn:m" xmlns:u="urn:u" mm:note="x" u:z="1" bare="2">5</count>`
	n, err := ParseXML(ctx, parseWrapped(t, doc), 0)
	require.NoError(t, err)
	// only the attribute owned by a loaded module survives
	require.Len(t, n.Attrs, 1)
	assert.Equal(t, "note", n.Attrs[0].Name)
	assert.Equal(t, "x", n.Attrs[0].Value)
	assert.Equal(t, "m", n.Attrs[0].Module.Name)
}

func TestParseNetconfFilterAttrs(t *testing.T) {
	ctx := testContext(t)
	doc := `<filter xmlns="urn:ietf:params:xml:ns:netconf:base:1.0"` +
		` xmlns:p="urn:m" type="xpath" select="/p:cont/p:name"/>`
	n, err := ParseXML(ctx, parseWrapped(t, doc), Filter)
	require.NoError(t, err)

	// unqualified filter attributes are adopted by the filter's module,
	// the select expression rewritten to module-name form
	sel := n.Attr("select")
	require.NotNil(t, sel)
	assert.Equal(t, "/m:cont/m:name", sel.Value)
	assert.Equal(t, "ietf-netconf", sel.Module.Name)
	require.NotNil(t, n.Attr("type"))
	assert.Equal(t, "xpath", n.Attr("type").Value)

	bad := `<filter xmlns="urn:ietf:params:xml:ns:netconf:base:1.0"` +
		` type="xpath" select="(("/>`
	_, err = ParseXML(ctx, parseWrapped(t, bad), Filter)
	require.Error(t, err, "select must be a valid expression")
}

type pruneValidator struct{ name string }

func (pruneValidator) EstablishContext(*Node, Options, *Unres) error { return nil }
func (v pruneValidator) ValidateContent(n *Node, _ Options, _ *Unres) error {
	if n.Schema.Name == v.name {
		return Pruned
	}
	return nil
}

type rejectValidator struct{ name string }

func (v rejectValidator) EstablishContext(n *Node, _ Options, _ *Unres) error {
	if n.Schema.Name == v.name {
		return yangerr.Internal(yangerr.WithMessage("rejected"))
	}
	return nil
}
func (rejectValidator) ValidateContent(*Node, Options, *Unres) error { return nil }

func TestValidatorHooks(t *testing.T) {
	ctx := testContext(t)
	doc := `<count xmlns="urn:m">5</count><cont xmlns="urn:m"><name>x</name></cont>`

	// pruning discards the subtree but not its siblings
	n, err := ParseXML(ctx, parseWrapped(t, doc), 0, WithValidator(pruneValidator{name: "cont"}))
	require.NoError(t, err)
	assert.Equal(t, "count", n.Schema.Name)
	assert.Nil(t, n.Next())

	_, err = ParseXML(ctx, parseWrapped(t, doc), 0, WithValidator(rejectValidator{name: "name"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected")
}

func TestParseInvalidParameters(t *testing.T) {
	ctx := testContext(t)
	root := parseWrapped(t, `<count xmlns="urn:m">5</count>`)

	_, err := ParseXML(nil, root, 0)
	assert.Error(t, err)
	_, err = ParseXML(ctx, nil, 0)
	assert.Error(t, err)

	leaf := ctx.ResolveTop("count", "urn:m")
	_, err = ParseXMLRPCOutput(ctx, leaf, root, 0)
	assert.Error(t, err, "scope node must be an rpc")
}

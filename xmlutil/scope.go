package xmlutil

import (
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// ScopePrefixes returns the XML prefix bindings in scope at element n,
// nearest declaration winning. The default namespace, when declared, is
// bound to the empty prefix.
func ScopePrefixes(n *xmlquery.Node) PrefixMap {
	pmap := PrefixMap{}
	for e := n; e != nil; e = e.Parent {
		for _, attr := range e.Attr {
			switch {
			case attr.Name.Space == "xmlns":
				if _, ok := pmap[attr.Name.Local]; !ok {
					pmap[attr.Name.Local] = attr.Value
				}
			case attr.Name.Space == "" && attr.Name.Local == "xmlns":
				if _, ok := pmap[""]; !ok {
					pmap[""] = attr.Value
				}
			}
		}
	}
	return pmap
}

// IsNamespaceDecl reports whether the attribute is an xmlns declaration
// rather than an ordinary attribute.
func IsNamespaceDecl(attr xmlquery.Attr) bool {
	return attr.Name.Space == "xmlns" ||
		(attr.Name.Space == "" && attr.Name.Local == "xmlns")
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// EscapeText writes s to w with XML character-data escaping applied.
func EscapeText(w io.Writer, s string) error {
	_, err := textEscaper.WriteString(w, s)
	return err
}

// EscapeAttr writes s to w with XML attribute-value escaping applied.
func EscapeAttr(w io.Writer, s string) error {
	_, err := attrEscaper.WriteString(w, s)
	return err
}

package xmlutil

import (
	"encoding/xml"
	"sort"
)

// PrefixMap maps XML prefixes to namespace URIs. The empty prefix key
// holds the default namespace.
type PrefixMap map[string]string

// Attr returns the map contents as xmlns:<prefix>=<nsuri> attributes,
// sorted lexically by prefix for stable serialization.
func (m PrefixMap) Attr() (a []xml.Attr) {
	for k, v := range m {
		a = append(a, xml.Attr{Name: xml.Name{Space: "xmlns", Local: k}, Value: v})
	}
	if len(a) > 0 {
		sort.Slice(a, func(i int, j int) bool { return a[i].Name.Local < a[j].Name.Local })
	}
	return a
}

// Namespace returns the namespace URI bound to prefix, "" if unbound.
func (m PrefixMap) Namespace(prefix string) string { return m[prefix] }

package data

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/pkg/errors"

	"github.com/andaru/yangdata/schema"
	"github.com/andaru/yangdata/xmlutil"
)

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameChar(b byte) bool {
	return isNameStart(b) || b == '-' || b == '.' || (b >= '0' && b <= '9')
}

// rewritePrefixes rewrites every prefix:identifier token in expr using
// resolve, leaving the rest of the expression untouched. Text before a
// colon qualifies as a prefix only when it forms a name; other colons
// pass through unchanged.
func rewritePrefixes(expr string, resolve func(prefix string) (string, error)) (string, error) {
	var b strings.Builder
	for i := 0; i < len(expr); {
		j := strings.IndexByte(expr[i:], ':')
		if j < 0 {
			b.WriteString(expr[i:])
			break
		}
		j += i
		s := j
		for s > i && isNameChar(expr[s-1]) {
			s--
		}
		if s == j || !isNameStart(expr[s]) {
			b.WriteString(expr[i : j+1])
			i = j + 1
			continue
		}
		repl, err := resolve(expr[s:j])
		if err != nil {
			return "", err
		}
		b.WriteString(expr[i:s])
		b.WriteString(repl)
		b.WriteByte(':')
		i = j + 1
	}
	return b.String(), nil
}

// transformXMLToCanonical rewrites a value from the XML namespace
// convention (node identifiers qualified by locally declared XML
// prefixes) into the canonical convention (module-name qualifiers).
// The scope element supplies the in-scope prefix declarations.
func transformXMLToCanonical(ctx *schema.Context, expr string, scope *xmlquery.Node) (string, error) {
	pmap := xmlutil.ScopePrefixes(scope)
	return rewritePrefixes(expr, func(prefix string) (string, error) {
		ns := pmap.Namespace(prefix)
		if ns == "" {
			return "", errors.Errorf("no namespace declared for prefix %q", prefix)
		}
		mod := ctx.ModuleByNamespace(ns)
		if mod == nil {
			return "", errors.Errorf("no module loaded for namespace %q", ns)
		}
		return mod.Name, nil
	})
}

// transformCanonicalToXML rewrites a canonical-form value into the XML
// convention, qualifying node identifiers with each referenced
// module's own prefix. The returned prefix map carries the minimal set
// of prefix declarations the rewritten value requires.
func transformCanonicalToXML(ctx *schema.Context, expr string) (string, xmlutil.PrefixMap, error) {
	decls := xmlutil.PrefixMap{}
	out, err := rewritePrefixes(expr, func(name string) (string, error) {
		mod := ctx.ModuleByName(name)
		if mod == nil {
			return "", errors.Errorf("no module %q loaded", name)
		}
		decls[mod.Prefix] = mod.Namespace
		return mod.Prefix, nil
	})
	if err != nil {
		return "", nil, err
	}
	return out, decls, nil
}

package data

import (
	"strings"

	"github.com/andaru/yangdata/schema"
	"github.com/andaru/yangdata/yangerr"
)

// resolveUnres performs the end-of-document resolution pass: every
// queued reference must find its target or the whole parse fails.
func (p *parser) resolveUnres() error {
	for _, n := range p.unres.set.Nodes {
		if err := p.resolveReference(n); err != nil {
			return err
		}
	}
	p.unres.set.Nodes = nil
	return nil
}

func (p *parser) resolveReference(n *Node) error {
	v := n.Value
	if v == nil {
		return yangerr.Internal(yangerr.WithMessage("queued node has no value"))
	}
	switch v.Kind {
	case schema.Leafref:
		path := leafrefPath(n.Schema.Type)
		if path == "" {
			return yangerr.Internal(yangerr.WithMessage("leafref type has no path"))
		}
		for _, cand := range p.resolvePath(n, path) {
			// among path matches, the target is the instance carrying
			// the referenced value
			if cand.Value != nil && cand.Value.Str == v.Str {
				v.Target = cand
				return nil
			}
		}
		if t := n.Schema.Type; t != nil && t.Kind == schema.Union && p.unionFallback(n, v) {
			return nil
		}
	case schema.InstanceID:
		if cands := p.resolvePath(n, v.Str); len(cands) > 0 {
			v.Target = cands[0]
			return nil
		}
	default:
		return yangerr.Internal(yangerr.WithMessage("queued node is not a reference: " + v.Kind.String()))
	}
	return yangerr.UnresolvedReference(v.Str, n.Schema.Name)
}

// leafrefPath returns the target path of t, looking through union
// members for the leafref arm.
func leafrefPath(t *schema.Type) string {
	if t == nil {
		return ""
	}
	if t.Kind == schema.Leafref {
		return t.LeafrefPath
	}
	for _, m := range t.Union {
		if p := leafrefPath(m); p != "" {
			return p
		}
	}
	return ""
}

// resolvePath walks a canonical-form path (module-name qualifiers,
// unqualified steps owned by n's module) from n, returning every
// instance node the path addresses. Predicates are not interpreted:
// a predicated step resolves to no candidates.
func (p *parser) resolvePath(n *Node, path string) []*Node {
	var cands []*Node
	rest := path
	if strings.HasPrefix(path, "/") {
		rest = path[1:]
		cands = siblingList(n.Root())
		return p.walkSteps(n, cands, rest, true)
	}
	return p.walkSteps(n, []*Node{n}, rest, false)
}

func (p *parser) walkSteps(n *Node, ctxNodes []*Node, rest string, topStep bool) []*Node {
	mod := n.Schema.Module
	for rest != "" {
		step := rest
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			step, rest = rest[:i], rest[i+1:]
		} else {
			rest = ""
		}
		switch {
		case step == "" || strings.ContainsAny(step, "[]"):
			return nil
		case step == ".":
		case step == "..":
			var next []*Node
			for _, c := range ctxNodes {
				if parent := c.Parent(); parent != nil && !contains(next, parent) {
					next = append(next, parent)
				}
			}
			ctxNodes = next
		default:
			name := step
			stepMod := mod
			if i := strings.IndexByte(step, ':'); i >= 0 {
				stepMod = p.ctx.ModuleByName(step[:i])
				name = step[i+1:]
				if stepMod == nil {
					return nil
				}
			}
			var next []*Node
			for _, c := range ctxNodes {
				list := c.FirstChild()
				if topStep {
					list = c
				}
				for cand := list; cand != nil; cand = cand.Next() {
					if cand.Schema != nil && cand.Schema.Name == name && cand.Schema.Module == stepMod {
						next = append(next, cand)
					}
					if topStep {
						break
					}
				}
			}
			ctxNodes = next
		}
		topStep = false
		if len(ctxNodes) == 0 {
			return nil
		}
	}
	return ctxNodes
}

func contains(nodes []*Node, n *Node) bool {
	for _, have := range nodes {
		if have == n {
			return true
		}
	}
	return false
}

// siblingList returns n's whole sibling list, first to last.
func siblingList(n *Node) []*Node {
	var out []*Node
	for node := n.First(); node != nil; node = node.Next() {
		out = append(out, node)
	}
	return out
}

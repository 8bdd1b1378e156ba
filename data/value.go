package data

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"

	"github.com/andaru/yangdata/schema"
	"github.com/andaru/yangdata/yangerr"
)

// Value is a decoded leaf or leaf-list value. Str always retains the
// textual representation (in canonical module-name form for reference
// kinds), needed verbatim for re-serialization and comparison; the
// typed fields are populated according to Kind.
type Value struct {
	// Str is the value text.
	Str string
	// Kind is the resolved base type kind. For a union this records
	// the member type which ultimately matched.
	Kind schema.TypeKind
	// Unresolved marks a leafref or instance-identifier whose target
	// lookup was deferred under relaxed parsing and never performed.
	Unresolved bool
	// Selection marks a valueless filter selection node. Str is empty
	// but, unlike a leaf carrying an empty string value, the node has
	// no value at all.
	Selection bool

	Bool bool
	// Int holds all signed integer kinds.
	Int int64
	// Uint holds all unsigned integer kinds.
	Uint uint64
	// Dec64 is the decimal64 value scaled by 10^FractionDigits.
	Dec64          int64
	FractionDigits uint8
	Enum           string
	Bits           []string
	Ident          *schema.Identity
	// Target is the referenced instance node of a resolved leafref or
	// instance-identifier.
	Target *Node
}

// Unres is the worklist of leaf nodes whose reference targets await
// end-of-document resolution. Validation hooks may add further nodes;
// the decode driver drains the list once the whole forest is decoded.
type Unres struct {
	set Set
}

// Add queues a leaf or leaf-list node for deferred target resolution.
func (u *Unres) Add(n *Node) { u.set.Add(n) }

// Len returns the number of queued nodes.
func (u *Unres) Len() int { return u.set.Len() }

// leafValue decodes el's text content into n's value per the leaf's
// declared type. The element supplies the namespace scope for
// reference-kind values.
func (p *parser) leafValue(n *Node, el *xmlquery.Node, opts Options) error {
	stype := n.Schema.Type
	if stype == nil {
		return errors.Errorf("leaf schema node %q has no type", n.Schema.Name)
	}
	text := elementText(el)
	v := &Value{Str: text, Kind: stype.Kind}
	n.Value = v

	if opts&Filter != 0 && text == "" {
		// valueless selection node
		v.Selection = true
		return nil
	}
	resolve := !opts.relaxed()

	if stype.Kind.Reference() {
		canon, err := transformXMLToCanonical(p.ctx, text, el)
		if err != nil {
			return p.invalidValue(n, text, err)
		}
		v.Str = canon
	}

	if stype.Kind == schema.Union {
		return p.unionValue(n, v, stype, resolve, el)
	}
	if err := p.parseValue(n, v, stype, resolve); err != nil {
		return p.invalidValue(n, text, err)
	}
	return nil
}

// invalidValue frames a decoding failure as a value-class error
// naming the element and the offending text.
func (p *parser) invalidValue(n *Node, text string, cause error) error {
	return yangerr.InvalidValue(text, n.Schema.Name,
		yangerr.WithMessage(cause.Error()))
}

// unionValue tries each member type in declaration order, nested
// unions flattened in place. A reference-kind member first attempts
// the namespace rewrite and is skipped when the rewrite fails. The
// first member which fully decodes wins and its kind is recorded. A
// leafref member decodes structurally for any text; its target lookup
// happens at end of document, falling back to the remaining plain
// members when no target exists.
func (p *parser) unionValue(n *Node, v *Value, t *schema.Type, resolve bool, el *xmlquery.Node) error {
	orig := v.Str
	var try func(members []*schema.Type) bool
	try = func(members []*schema.Type) bool {
		for _, m := range members {
			if m.Kind == schema.Union {
				if try(m.Union) {
					return true
				}
				continue
			}
			v.Kind = m.Kind
			v.Str = orig
			if m.Kind.Reference() {
				canon, err := transformXMLToCanonical(p.ctx, orig, el)
				if err != nil {
					continue
				}
				v.Str = canon
			}
			if p.parseValue(n, v, m, resolve) == nil {
				return true
			}
		}
		return false
	}
	if !try(t.Union) {
		v.Str = orig
		v.Kind = schema.Union
		return p.invalidValue(n, orig, errors.New("no union member type matched"))
	}
	return nil
}

// unionFallback retries the remaining members of a union whose leafref
// arm found no target at end-of-document resolution. Reference-kind
// members need the source element's namespace scope, which is gone by
// resolution time, so only plain members are candidates.
func (p *parser) unionFallback(n *Node, v *Value) bool {
	var try func(members []*schema.Type) bool
	try = func(members []*schema.Type) bool {
		for _, m := range members {
			if m.Kind == schema.Union {
				if try(m.Union) {
					return true
				}
				continue
			}
			if m.Kind == schema.Leafref || m.Kind.Reference() {
				continue
			}
			v.Kind = m.Kind
			if p.parseValue(n, v, m, false) == nil {
				return true
			}
		}
		return false
	}
	if try(n.Schema.Type.Union) {
		v.Target = nil
		return true
	}
	v.Kind = schema.Leafref
	return false
}

// parseValue decodes v.Str as a value of non-union type t, populating
// the typed fields. Reference targets are queued on the worklist when
// resolve is set, or flagged unresolved otherwise.
func (p *parser) parseValue(n *Node, v *Value, t *schema.Type, resolve bool) error {
	text := strings.TrimSpace(v.Str)
	switch t.Kind {
	case schema.String:
		// verbatim

	case schema.Binary:
		if _, err := base64.StdEncoding.DecodeString(text); err != nil {
			return errors.Wrap(err, "invalid base64 value")
		}

	case schema.Bool:
		switch text {
		case "true":
			v.Bool = true
		case "false":
			v.Bool = false
		default:
			return errors.Errorf("invalid boolean value %q", text)
		}

	case schema.Empty:
		if text != "" {
			return errors.Errorf("value %q present for empty type", text)
		}

	case schema.Enum:
		for _, name := range t.Enums {
			if name == text {
				v.Enum = name
				return nil
			}
		}
		return errors.Errorf("invalid enumeration value %q", text)

	case schema.Bits:
		names := strings.Fields(text)
		for _, name := range names {
			found := false
			for _, have := range t.BitNames {
				if have == name {
					found = true
					break
				}
			}
			if !found {
				return errors.Errorf("unknown bit name %q", name)
			}
		}
		v.Bits = names

	case schema.Dec64:
		dec, err := parseDec64(text, t.FractionDigits)
		if err != nil {
			return err
		}
		v.Dec64, v.FractionDigits = dec, t.FractionDigits

	case schema.Int8, schema.Int16, schema.Int32, schema.Int64:
		i, err := strconv.ParseInt(text, 10, t.Kind.BitSize())
		if err != nil {
			return errors.Wrapf(err, "invalid %s value", t.Kind)
		}
		v.Int = i

	case schema.Uint8, schema.Uint16, schema.Uint32, schema.Uint64:
		u, err := strconv.ParseUint(text, 10, t.Kind.BitSize())
		if err != nil {
			return errors.Wrapf(err, "invalid %s value", t.Kind)
		}
		v.Uint = u

	case schema.Identityref:
		ident, err := p.identity(n, text, t)
		if err != nil {
			return err
		}
		v.Ident = ident

	case schema.InstanceID:
		if !strings.HasPrefix(text, "/") {
			return errors.Errorf("instance-identifier %q is not absolute", text)
		}
		if _, err := xpath.Compile(text); err != nil {
			return errors.Wrap(err, "invalid instance-identifier")
		}
		if resolve {
			p.unres.Add(n)
		} else {
			v.Unresolved = true
		}

	case schema.Leafref:
		if resolve {
			p.unres.Add(n)
		} else {
			v.Unresolved = true
		}

	default:
		return errors.Errorf("cannot decode %s value", t.Kind)
	}
	return nil
}

// identity resolves a canonical-form identityref value against the
// context, checking base-identity derivation when the type requires it.
func (p *parser) identity(n *Node, text string, t *schema.Type) (*schema.Identity, error) {
	modName := n.Schema.Module.Name
	name := text
	if i := strings.IndexByte(text, ':'); i >= 0 {
		modName, name = text[:i], text[i+1:]
	}
	ident := p.ctx.Identity(modName, name)
	if ident == nil {
		return nil, errors.Errorf("unknown identity %q", text)
	}
	if t.Base != nil && !ident.DerivedFrom(t.Base) {
		return nil, errors.Errorf("identity %q not derived from %q", text, t.Base.Name)
	}
	return ident, nil
}

// parseDec64 decodes a decimal64 with the given fraction-digits
// restriction into its scaled integer representation.
func parseDec64(text string, digits uint8) (int64, error) {
	if digits == 0 || digits > 18 {
		return 0, errors.Errorf("invalid fraction-digits %d", digits)
	}
	intPart, fracPart := text, ""
	if i := strings.IndexByte(text, '.'); i >= 0 {
		intPart, fracPart = text[:i], text[i+1:]
	}
	bare := strings.TrimPrefix(strings.TrimPrefix(intPart, "-"), "+")
	if bare == "" || fracPart != "" && strings.TrimRight(fracPart, "0123456789") != "" {
		return 0, errors.Errorf("invalid decimal64 value %q", text)
	}
	if len(fracPart) > int(digits) {
		return 0, errors.Errorf("decimal64 value %q exceeds %d fraction digits", text, digits)
	}
	fracPart += strings.Repeat("0", int(digits)-len(fracPart))
	dec, err := strconv.ParseInt(intPart+fracPart, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid decimal64 value %q", text)
	}
	return dec, nil
}

package schema

import "fmt"

// TypeKind is the base type of a leaf value.
type TypeKind int

const (
	// UnknownType is the zero TypeKind
	UnknownType TypeKind = iota
	// Binary is base64-encoded opaque data
	Binary
	// Bits is a set of named flags
	Bits
	// Bool is "true" or "false"
	Bool
	// Dec64 is a 64-bit decimal with fixed fraction digits
	Dec64
	// Empty is a valueless leaf
	Empty
	// Enum is one of a set of assigned names
	Enum
	// Identityref names an identity derived from a base identity
	Identityref
	// InstanceID is a path expression addressing a data tree node
	InstanceID
	// Leafref is a value defined by reference to another leaf
	Leafref
	// String is an opaque human-readable string
	String
	// Union is a choice of member types, resolved in declaration order
	Union
	// Int8 through Uint64 are fixed-width integers
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
)

var typeKindNames = map[TypeKind]string{
	UnknownType: "unknown",
	Binary:      "binary",
	Bits:        "bits",
	Bool:        "boolean",
	Dec64:       "decimal64",
	Empty:       "empty",
	Enum:        "enumeration",
	Identityref: "identityref",
	InstanceID:  "instance-identifier",
	Leafref:     "leafref",
	String:      "string",
	Union:       "union",
	Int8:        "int8",
	Uint8:       "uint8",
	Int16:       "int16",
	Uint16:      "uint16",
	Int32:       "int32",
	Uint32:      "uint32",
	Int64:       "int64",
	Uint64:      "uint64",
}

func (k TypeKind) String() string {
	if s, ok := typeKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TypeKind(%d)", int(k))
}

// Integer reports whether k is a fixed-width integer kind.
func (k TypeKind) Integer() bool { return k >= Int8 && k <= Uint64 }

// Signed reports whether k is a signed integer kind.
func (k TypeKind) Signed() bool {
	return k == Int8 || k == Int16 || k == Int32 || k == Int64
}

// BitSize returns the width in bits of integer kind k, or 0.
func (k TypeKind) BitSize() int {
	switch k {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32:
		return 32
	case Int64, Uint64:
		return 64
	}
	return 0
}

// Reference reports whether values of kind k are encoded with
// namespace-qualified node identifiers, requiring namespace-form
// translation between encodings.
func (k TypeKind) Reference() bool { return k == Identityref || k == InstanceID }

// Type describes a leaf's declared type.
type Type struct {
	Kind TypeKind

	// FractionDigits is the decimal64 fraction-digits restriction.
	FractionDigits uint8
	// Enums are the assigned names of an enumeration, in value order.
	Enums []string
	// BitNames are the named bits of a bits type.
	BitNames []string
	// Union are the member types in declaration order.
	Union []*Type
	// LeafrefPath is the target path of a leafref.
	LeafrefPath string
	// Base is the base identity an identityref's value must derive from.
	Base *Identity
}

// Identity is one identity definition.
type Identity struct {
	Name   string
	Module *Module
	// Base is nil for a root identity.
	Base *Identity
}

// DerivedFrom reports whether i is base or is (transitively) derived
// from base.
func (i *Identity) DerivedFrom(base *Identity) bool {
	for ; i != nil; i = i.Base {
		if i == base {
			return true
		}
	}
	return false
}

package data

import "github.com/pkg/errors"

// Pruned is returned by Validator.ValidateContent to discard the node
// under validation without failing the enclosing parse, for example on
// a filter match failure. Only the local subtree is freed; sibling
// decoding continues.
var Pruned = errors.New("node pruned")

// Validator is the constraint-validation collaborator the decoder
// calls into. Implementations check cardinality, must/when and
// uniqueness rules; this package only defines the hook points.
type Validator interface {
	// EstablishContext is called once per node, after it is linked
	// into the tree and before its content is filled.
	EstablishContext(n *Node, opts Options, unres *Unres) error
	// ValidateContent is called once per node after its children are
	// attached. Returning Pruned discards the node without error.
	ValidateContent(n *Node, opts Options, unres *Unres) error
}

// nopValidator accepts everything.
type nopValidator struct{}

func (nopValidator) EstablishContext(*Node, Options, *Unres) error { return nil }
func (nopValidator) ValidateContent(*Node, Options, *Unres) error  { return nil }

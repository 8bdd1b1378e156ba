/*
Package yangdata is a set of YANG instance-data support libraries.

Given a compiled, read-only schema model (see the schema sub-directory),
these libraries decode wire-encoded instance documents into an in-memory
instance tree, offer programmatic tree construction and manipulation, and
re-serialize trees to XML (compact or indented) and JSON text.

Decoding consumes a parsed XML element tree (an xmlquery document) rather
than raw bytes; each encoded element is matched to its schema definition,
transparently descending through schema constructs with no wire
representation of their own (choice, case, uses, rpc input/output).
Leaf content is decoded against the leaf's declared type, including
in-order union member resolution and namespace-form translation for
identityref and instance-identifier values.

See the data sub-directory for the instance tree and codecs, and the
yangerr sub-directory for the error values produced by them.
*/
package yangdata

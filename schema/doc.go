/*
Package schema is the read-only YANG schema model consumed by the data
tree codecs.

A Context holds the forest of modules an application has loaded. Each
Module contributes a tree of Node values, one per modeling construct
(container, list, leaf and so on), each carrying the namespace-qualified
identity of its owning module and, for leaf constructs, a Type
descriptor. The model is built once, up front, by an external schema
compiler (or directly, in tests) and is never mutated by this library;
any number of data trees may share one Context concurrently.

Resolve matches a wire-encoded element name to the schema node it
instantiates, transparently descending through constructs which have no
wire representation of their own.
*/
package schema

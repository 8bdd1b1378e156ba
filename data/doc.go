/*
Package data implements the YANG instance-data tree and its codecs.

Each Node instantiates exactly one schema.Node and carries either child
nodes (container, list, rpc, notification), a typed value (leaf,
leaf-list) or an opaque embedded XML subtree (anyxml). Siblings form a
doubly linked list which is circular on the previous direction: a
node's previous pointer is never nil, aiming at the node itself when it
has no siblings and, on the first sibling, at the last.

ParseXML decodes a parsed XML element forest against a schema context
into an instance forest; PrintXML and PrintJSON re-serialize a forest
to text. Trees may also be built and manipulated programmatically with
New, NewLeaf, NewAnyxml and the Node mutators.
*/
package data

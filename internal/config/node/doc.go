// Package node provides the untyped configuration tree used for raw
// deployment inputs.
//
// A [Node] is a tagged union of Null, String, Number, Bool, Sequence and
// Mapping. Mappings remember key insertion order so that rendered output is
// stable and follows the order the user wrote. Trees are decoded from YAML,
// JSON or HCL input and compared with [Equal], a recursive structural
// comparison used by the merge engine for list de-duplication.
package node

package node

import (
	"strconv"
)

// Kind identifies which variant of the union a Node holds.
type Kind int

// Node kinds.
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is a single value in a configuration tree.
// The zero value is a Null node.
type Node struct {
	kind   Kind
	str    string
	num    float64
	b      bool
	items  []*Node
	keys   []string
	fields map[string]*Node
}

// Null returns a null node.
func Null() *Node { return &Node{kind: KindNull} }

// String returns a string node.
func String(s string) *Node { return &Node{kind: KindString, str: s} }

// Number returns a number node.
func Number(f float64) *Node { return &Node{kind: KindNumber, num: f} }

// Int returns a number node holding an integer value.
func Int(i int) *Node { return Number(float64(i)) }

// Bool returns a bool node.
func Bool(b bool) *Node { return &Node{kind: KindBool, b: b} }

// Sequence returns a sequence node holding items in order.
func Sequence(items ...*Node) *Node {
	seq := &Node{kind: KindSequence, items: make([]*Node, 0, len(items))}
	for _, it := range items {
		seq.items = append(seq.items, orNull(it))
	}
	return seq
}

// Strings returns a sequence of string nodes.
func Strings(values ...string) *Node {
	seq := Sequence()
	for _, v := range values {
		seq.items = append(seq.items, String(v))
	}
	return seq
}

// Mapping returns an empty mapping node.
func Mapping() *Node {
	return &Node{kind: KindMapping, fields: make(map[string]*Node)}
}

func orNull(n *Node) *Node {
	if n == nil {
		return Null()
	}
	return n
}

// Kind reports the node's variant. A nil node is Null.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

// IsNull reports whether n is nil or a Null node.
func (n *Node) IsNull() bool { return n.Kind() == KindNull }

// IsString reports whether n holds a string.
func (n *Node) IsString() bool { return n.Kind() == KindString }

// IsSequence reports whether n holds a sequence.
func (n *Node) IsSequence() bool { return n.Kind() == KindSequence }

// IsMapping reports whether n holds a mapping.
func (n *Node) IsMapping() bool { return n.Kind() == KindMapping }

// AsString returns the string value and whether n is a string.
func (n *Node) AsString() (string, bool) {
	if n.Kind() != KindString {
		return "", false
	}
	return n.str, true
}

// AsNumber returns the numeric value and whether n is a number.
func (n *Node) AsNumber() (float64, bool) {
	if n.Kind() != KindNumber {
		return 0, false
	}
	return n.num, true
}

// AsBool returns the boolean value and whether n is a bool.
func (n *Node) AsBool() (bool, bool) {
	if n.Kind() != KindBool {
		return false, false
	}
	return n.b, true
}

// Items returns the elements of a sequence, or nil for any other kind.
// The returned slice must not be modified.
func (n *Node) Items() []*Node {
	if n.Kind() != KindSequence {
		return nil
	}
	return n.items
}

// Keys returns mapping keys in insertion order, or nil for any other kind.
func (n *Node) Keys() []string {
	if n.Kind() != KindMapping {
		return nil
	}
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Len returns the number of elements of a sequence or keys of a mapping.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindSequence:
		return len(n.items)
	case KindMapping:
		return len(n.keys)
	default:
		return 0
	}
}

// Has reports whether a mapping contains key.
func (n *Node) Has(key string) bool {
	if n.Kind() != KindMapping {
		return false
	}
	_, ok := n.fields[key]
	return ok
}

// Get returns the value under key, or nil when n is not a mapping or the key
// is absent.
func (n *Node) Get(key string) *Node {
	if n.Kind() != KindMapping {
		return nil
	}
	return n.fields[key]
}

// Lookup walks a path of mapping keys and returns nil as soon as a step is
// missing.
func (n *Node) Lookup(path ...string) *Node {
	cur := n
	for _, key := range path {
		cur = cur.Get(key)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Set stores v under key, keeping the original position of an existing key.
// Set on a non-mapping node is a no-op.
func (n *Node) Set(key string, v *Node) *Node {
	if n.Kind() != KindMapping {
		return n
	}
	if _, ok := n.fields[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = orNull(v)
	return n
}

// Delete removes key from a mapping.
func (n *Node) Delete(key string) {
	if !n.Has(key) {
		return
	}
	delete(n.fields, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
}

// Append adds v to the end of a sequence. Append on a non-sequence is a no-op.
func (n *Node) Append(v *Node) {
	if n.Kind() != KindSequence {
		return
	}
	n.items = append(n.items, orNull(v))
}

// Truthy reports whether n would select itself in an "a || b" fallback:
// null, empty string, zero and false are not truthy; mappings and sequences
// always are.
func (n *Node) Truthy() bool {
	switch n.Kind() {
	case KindString:
		return n.str != ""
	case KindNumber:
		return n.num != 0
	case KindBool:
		return n.b
	case KindSequence, KindMapping:
		return true
	default:
		return false
	}
}

// Scalar returns the textual form of a string, number or bool node.
func (n *Node) Scalar() (string, bool) {
	switch n.Kind() {
	case KindString:
		return n.str, true
	case KindNumber:
		return formatNumber(n.num), true
	case KindBool:
		return strconv.FormatBool(n.b), true
	default:
		return "", false
	}
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return Null()
	}
	out := &Node{kind: n.kind, str: n.str, num: n.num, b: n.b}
	switch n.kind {
	case KindSequence:
		out.items = make([]*Node, len(n.items))
		for i, it := range n.items {
			out.items[i] = it.Clone()
		}
	case KindMapping:
		out.keys = make([]string, len(n.keys))
		copy(out.keys, n.keys)
		out.fields = make(map[string]*Node, len(n.fields))
		for k, v := range n.fields {
			out.fields[k] = v.Clone()
		}
	}
	return out
}

// Equal reports whether a and b are structurally equal. Mappings compare by
// key set and values, sequences element by element in order. A nil node
// equals a Null node.
func Equal(a, b *Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindString:
		return a.str == b.str
	case KindNumber:
		return a.num == b.num
	case KindBool:
		return a.b == b.b
	case KindSequence:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for k, av := range a.fields {
			bv, ok := b.fields[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Package merge implements the recursive configuration merge used to layer
// region-specific settings over base settings.
//
// Merge walks the keys of a source tree and writes them into a target tree:
//
//   - designated list keys (protocols, endpoints, customDomain) take the
//     union of both sequences, appending source elements that have no
//     structurally equal counterpart in the target
//   - strings overwrite
//   - mappings merge recursively
//   - other sequences replace the target value wholesale
//   - numbers, bools and nulls never replace an existing target value
//   - keys missing from the target are copied over
//
// Designated keys are always stored as sequences, so a scalar or mapping
// source value becomes a one-element sequence. This keeps Merge idempotent.
//
// Merge never fails. Malformed sub-trees are treated as absent.
package merge

import (
	"github.com/imamik/slsfw/internal/config/node"
)

// DesignatedKeys lists the keys whose values are merged as duplicate-free
// appended lists.
var DesignatedKeys = []string{"protocols", "endpoints", "customDomain"}

// IsDesignated reports whether key is merged with list-union semantics.
func IsDesignated(key string) bool {
	for _, k := range DesignatedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Merge merges source into target and returns target. A nil or non-mapping
// target is replaced by a fresh mapping. Source values are shared with the
// result, not copied; clone the source first when it is reused afterwards.
func Merge(source, target *node.Node) *node.Node {
	if !target.IsMapping() {
		target = node.Mapping()
	}
	if !source.IsMapping() {
		return target
	}

	for _, key := range source.Keys() {
		sv := source.Get(key)
		if !target.Has(key) {
			target.Set(key, adopt(key, sv))
			continue
		}
		tv := target.Get(key)

		switch {
		case IsDesignated(key):
			target.Set(key, appendMissing(sv, tv))
		case sv.IsString():
			target.Set(key, sv)
		case sv.IsMapping():
			if tv.IsMapping() {
				Merge(sv, tv)
			} else {
				target.Set(key, adopt(key, sv))
			}
		case sv.IsSequence():
			target.Set(key, sv)
		}
	}

	return target
}

// adopt prepares a source value for a slot the target does not fill yet.
// Mappings are merged into a fresh mapping so nested designated keys get
// the same sequence shape a later merge would give them.
func adopt(key string, sv *node.Node) *node.Node {
	switch {
	case IsDesignated(key):
		return asSequence(sv)
	case sv.IsMapping():
		return Merge(sv, node.Mapping())
	default:
		return sv
	}
}

// appendMissing appends every element of source not already present in
// target. Non-sequence values on either side count as one-element sequences
// and null counts as empty.
func appendMissing(source, target *node.Node) *node.Node {
	dst := asSequence(target)
	for _, item := range asSequence(source).Items() {
		if !contains(dst, item) {
			dst.Append(item)
		}
	}
	return dst
}

func asSequence(n *node.Node) *node.Node {
	switch {
	case n.IsSequence():
		return n
	case n.IsNull():
		return node.Sequence()
	default:
		return node.Sequence(n)
	}
}

func contains(seq, item *node.Node) bool {
	for _, existing := range seq.Items() {
		if node.Equal(existing, item) {
			return true
		}
	}
	return false
}

package config

import (
	"math"
	"strconv"
	"strings"

	"github.com/imamik/slsfw/internal/config/node"
)

// ensureString coerces v to a string. Null yields def; strings, numbers and
// bools are accepted; mappings and sequences are rejected.
func ensureString(field string, v *node.Node, def string) (string, error) {
	if v.IsNull() {
		return def, nil
	}
	s, ok := v.Scalar()
	if !ok {
		return "", invalid(field, "expected a string, got %s", v.Kind())
	}
	return s, nil
}

// ensureStringMap coerces v to a mapping of strings. Null yields an empty map.
func ensureStringMap(field string, v *node.Node) (map[string]string, error) {
	out := make(map[string]string)
	if v.IsNull() {
		return out, nil
	}
	if !v.IsMapping() {
		return nil, invalid(field, "expected a mapping, got %s", v.Kind())
	}
	for _, k := range v.Keys() {
		s, err := ensureString(field+"."+k, v.Get(k), "")
		if err != nil {
			return nil, err
		}
		out[k] = s
	}
	return out, nil
}

// ensureStringList coerces v to a list of strings. Null yields an empty list
// and a single scalar becomes a one-element list.
func ensureStringList(field string, v *node.Node) ([]string, error) {
	out := []string{}
	switch {
	case v.IsNull():
		return out, nil
	case v.IsSequence():
		for i, it := range v.Items() {
			s, err := ensureString(field+"["+strconv.Itoa(i)+"]", it, "")
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := ensureString(field, v, "")
		if err != nil {
			return nil, err
		}
		return append(out, s), nil
	}
}

// ensureInt coerces v to an integer. Null yields def; integral numbers and
// numeric strings within the 32-bit range are accepted.
func ensureInt(field string, v *node.Node, def int) (int, error) {
	if v.IsNull() {
		return def, nil
	}
	if f, ok := v.AsNumber(); ok {
		if f != math.Trunc(f) {
			return 0, invalid(field, "expected an integer, got %v", f)
		}
		if f < math.MinInt32 || f > math.MaxInt32 {
			return 0, invalid(field, "integer %v out of range", f)
		}
		return int(f), nil
	}
	if s, ok := v.AsString(); ok {
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return 0, invalid(field, "expected an integer, got %q", s)
		}
		return int(i), nil
	}
	return 0, invalid(field, "expected an integer, got %s", v.Kind())
}

// optionalInt is ensureInt for values that stay unset when absent.
func optionalInt(field string, v *node.Node) (*int, error) {
	if v.IsNull() {
		return nil, nil
	}
	i, err := ensureInt(field, v, 0)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// pick returns the first truthy node, or nil.
func pick(candidates ...*node.Node) *node.Node {
	for _, c := range candidates {
		if c.Truthy() {
			return c
		}
	}
	return nil
}

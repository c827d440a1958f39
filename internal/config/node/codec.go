package node

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FromValue converts a plain Go value, as produced by encoding/json or
// mapstructure, into a Node. Map keys of map[string]any are sorted since Go
// maps carry no order.
func FromValue(v any) (*Node, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return orNull(val), nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Number(float64(val)), nil
	case int32:
		return Number(float64(val)), nil
	case int64:
		return Number(float64(val)), nil
	case uint:
		return Number(float64(val)), nil
	case uint64:
		return Number(float64(val)), nil
	case float32:
		return Number(float64(val)), nil
	case float64:
		return Number(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", val.String(), err)
		}
		return Number(f), nil
	case []string:
		return Strings(val...), nil
	case []any:
		seq := Sequence()
		for i, it := range val {
			child, err := FromValue(it)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			seq.Append(child)
		}
		return seq, nil
	case map[string]string:
		m := Mapping()
		for _, k := range sortedKeys(val) {
			m.Set(k, String(val[k]))
		}
		return m, nil
	case map[string]any:
		m := Mapping()
		for _, k := range sortedKeys(val) {
			child, err := FromValue(val[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			m.Set(k, child)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MustFromValue is FromValue for literals known to be convertible.
func MustFromValue(v any) *Node {
	n, err := FromValue(v)
	if err != nil {
		panic(err)
	}
	return n
}

// Value converts n back into plain Go values: map[string]any, []any, string,
// bool, nil, and int64 for integral numbers or float64 otherwise.
func (n *Node) Value() any {
	switch n.Kind() {
	case KindString:
		return n.str
	case KindNumber:
		if isIntegral(n.num) {
			return int64(n.num)
		}
		return n.num
	case KindBool:
		return n.b
	case KindSequence:
		out := make([]any, len(n.items))
		for i, it := range n.items {
			out[i] = it.Value()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(n.fields))
		for k, v := range n.fields {
			out[k] = v.Value()
		}
		return out
	default:
		return nil
	}
}

func isIntegral(f float64) bool {
	return f == math.Trunc(f) && math.Abs(f) < 1<<53
}

// MarshalJSON encodes n keeping mapping key order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	switch n.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		b, err := json.Marshal(n.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindNumber:
		if math.IsInf(n.num, 0) || math.IsNaN(n.num) {
			return fmt.Errorf("unsupported number %v", n.num)
		}
		buf.WriteString(formatNumber(n.num))
	case KindBool:
		buf.WriteString(strconv.FormatBool(n.b))
	case KindSequence:
		buf.WriteByte('[')
		for i, it := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := it.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMapping:
		buf.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := n.fields[k].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// UnmarshalJSON decodes JSON into n keeping object key order.
func (n *Node) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	parsed, err := decodeJSON(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected trailing data after JSON value")
	}
	*n = *parsed
	return nil
}

func decodeJSON(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := Mapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("invalid object key %v", keyTok)
				}
				val, err := decodeJSON(dec)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", key, err)
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			seq := Sequence()
			for dec.More() {
				val, err := decodeJSON(dec)
				if err != nil {
					return nil, fmt.Errorf("[%d]: %w", seq.Len(), err)
				}
				seq.Append(val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return seq, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	default:
		return FromValue(t)
	}
}

// MarshalYAML encodes n as an ordered YAML node.
func (n *Node) MarshalYAML() (any, error) {
	return n.toYAML(), nil
}

func (n *Node) toYAML() *yaml.Node {
	switch n.Kind() {
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.str}
	case KindNumber:
		tag := "!!float"
		if isIntegral(n.num) {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: formatNumber(n.num)}
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(n.b)}
	case KindSequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, it := range n.items {
			out.Content = append(out.Content, it.toYAML())
		}
		return out
	case KindMapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range n.keys {
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				n.fields[k].toYAML())
		}
		return out
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// UnmarshalYAML decodes a YAML node into n keeping mapping key order.
// Aliases are followed and merge keys ("<<") contribute keys that are not
// set explicitly.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := fromYAML(value)
	if err != nil {
		return err
	}
	*n = *parsed
	return nil
}

func fromYAML(y *yaml.Node) (*Node, error) {
	if y == nil {
		return Null(), nil
	}
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return Null(), nil
		}
		return fromYAML(y.Content[0])
	case yaml.AliasNode:
		return fromYAML(y.Alias)
	case yaml.SequenceNode:
		seq := Sequence()
		for _, c := range y.Content {
			it, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			seq.Append(it)
		}
		return seq, nil
	case yaml.MappingNode:
		m := Mapping()
		for i := 0; i+1 < len(y.Content); i += 2 {
			k, v := y.Content[i], y.Content[i+1]
			val, err := fromYAML(v)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", v.Line, err)
			}
			if k.ShortTag() == "!!merge" {
				mergeInto(m, val)
				continue
			}
			m.Set(k.Value, val)
		}
		return m, nil
	case yaml.ScalarNode:
		return scalarFromYAML(y)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", y.Line, y.Kind)
}

func mergeInto(m, src *Node) {
	sources := []*Node{src}
	if src.IsSequence() {
		sources = src.Items()
	}
	for _, s := range sources {
		for _, k := range s.Keys() {
			if !m.Has(k) {
				m.Set(k, s.Get(k))
			}
		}
	}
}

func scalarFromYAML(y *yaml.Node) (*Node, error) {
	switch y.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", y.Line, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := y.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", y.Line, err)
		}
		return Number(f), nil
	default:
		return String(y.Value), nil
	}
}

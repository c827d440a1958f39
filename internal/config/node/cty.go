package node

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// FromCty converts an evaluated HCL value into a Node. Object attributes and
// map keys come out in lexical order, which is the order cty iterates them.
func FromCty(v cty.Value) (*Node, error) {
	if v.IsNull() {
		return Null(), nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("value is not known until apply time")
	}
	v, _ = v.Unmark()

	ty := v.Type()
	switch {
	case ty == cty.String:
		return String(v.AsString()), nil
	case ty == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return Number(f), nil
	case ty == cty.Bool:
		return Bool(v.True()), nil
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		seq := Sequence()
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			child, err := FromCty(ev)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", seq.Len(), err)
			}
			seq.Append(child)
		}
		return seq, nil
	case ty.IsMapType() || ty.IsObjectType():
		m := Mapping()
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			key := kv.AsString()
			child, err := FromCty(ev)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			m.Set(key, child)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported HCL value type %s", ty.FriendlyName())
	}
}

package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapping_KeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	m := Mapping().
		Set("zeta", String("z")).
		Set("alpha", String("a")).
		Set("mid", Int(1))
	m.Set("zeta", String("z2"))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
	s, ok := m.Get("zeta").AsString()
	require.True(t, ok)
	assert.Equal(t, "z2", s)

	m.Delete("alpha")
	assert.Equal(t, []string{"zeta", "mid"}, m.Keys())
	assert.False(t, m.Has("alpha"))
}

func TestNilNode_IsNull(t *testing.T) {
	t.Parallel()

	var n *Node
	assert.True(t, n.IsNull())
	assert.Nil(t, n.Get("x"))
	assert.Nil(t, n.Lookup("a", "b"))
	assert.Equal(t, 0, n.Len())
	assert.False(t, n.Truthy())
	assert.True(t, Equal(n, Null()))
}

func TestLookup(t *testing.T) {
	t.Parallel()

	root := MustFromValue(map[string]any{
		"functionConf": map[string]any{
			"vpcConfig": map[string]any{"subnetId": "subnet-1"},
		},
	})

	got, ok := root.Lookup("functionConf", "vpcConfig", "subnetId").AsString()
	assert.True(t, ok)
	assert.Equal(t, "subnet-1", got)
	assert.Nil(t, root.Lookup("functionConf", "missing", "subnetId"))
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *Node
		want bool
	}{
		{"null", Null(), false},
		{"empty string", String(""), false},
		{"string", String("x"), true},
		{"zero", Int(0), false},
		{"number", Int(3), true},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"empty sequence", Sequence(), true},
		{"empty mapping", Mapping(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.Truthy())
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"same string", String("a"), String("a"), true},
		{"different kind", String("1"), Int(1), false},
		{"numbers", Number(1.5), Number(1.5), true},
		{
			name: "mapping ignores key order",
			a:    Mapping().Set("a", Int(1)).Set("b", Int(2)),
			b:    Mapping().Set("b", Int(2)).Set("a", Int(1)),
			want: true,
		},
		{
			name: "mapping extra key",
			a:    Mapping().Set("a", Int(1)),
			b:    Mapping().Set("a", Int(1)).Set("b", Int(2)),
			want: false,
		},
		{"sequence order matters", Strings("a", "b"), Strings("b", "a"), false},
		{"sequence length", Strings("a"), Strings("a", "a"), false},
		{
			name: "nested",
			a:    MustFromValue(map[string]any{"path": "/", "function": map[string]any{"name": "f"}}),
			b:    MustFromValue(map[string]any{"function": map[string]any{"name": "f"}, "path": "/"}),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}

func TestClone_IsDeep(t *testing.T) {
	t.Parallel()

	orig := MustFromValue(map[string]any{
		"protocols": []any{"http"},
		"nested":    map[string]any{"k": "v"},
	})
	cp := orig.Clone()
	require.True(t, Equal(orig, cp))

	cp.Get("protocols").Append(String("https"))
	cp.Get("nested").Set("k", String("changed"))

	assert.Equal(t, 1, orig.Get("protocols").Len())
	v, _ := orig.Lookup("nested", "k").AsString()
	assert.Equal(t, "v", v)
}

func TestScalar(t *testing.T) {
	t.Parallel()

	s, ok := Int(128).Scalar()
	assert.True(t, ok)
	assert.Equal(t, "128", s)

	s, ok = Number(0.5).Scalar()
	assert.True(t, ok)
	assert.Equal(t, "0.5", s)

	s, ok = Bool(true).Scalar()
	assert.True(t, ok)
	assert.Equal(t, "true", s)

	_, ok = Mapping().Scalar()
	assert.False(t, ok)
}

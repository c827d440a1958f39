package node

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

func TestUnmarshalYAML_PreservesOrderAndTypes(t *testing.T) {
	t.Parallel()

	src := `
region: ap-beijing
functionConf:
  timeout: 10
  memorySize: 256.5
  enabled: true
  role: ~
exclude:
  - node_modules/**
  - "*.md"
`
	var n Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &n))

	assert.Equal(t, []string{"region", "functionConf", "exclude"}, n.Keys())
	fc := n.Get("functionConf")
	assert.Equal(t, []string{"timeout", "memorySize", "enabled", "role"}, fc.Keys())

	timeout, ok := fc.Get("timeout").AsNumber()
	require.True(t, ok)
	assert.Equal(t, float64(10), timeout)

	mem, _ := fc.Get("memorySize").AsNumber()
	assert.Equal(t, 256.5, mem)

	enabled, ok := fc.Get("enabled").AsBool()
	require.True(t, ok)
	assert.True(t, enabled)
	assert.True(t, fc.Get("role").IsNull())
	assert.Equal(t, 2, n.Get("exclude").Len())
}

func TestUnmarshalYAML_AliasesAndMergeKeys(t *testing.T) {
	t.Parallel()

	src := `
base: &base
  ttl: 600
  status: enable
ap-shanghai:
  cloudDNSConf:
    <<: *base
    ttl: 300
`
	var n Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &n))

	dns := n.Lookup("ap-shanghai", "cloudDNSConf")
	ttl, _ := dns.Get("ttl").AsNumber()
	assert.Equal(t, float64(300), ttl)
	status, _ := dns.Get("status").AsString()
	assert.Equal(t, "enable", status)
}

func TestMarshalYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	orig := Mapping().
		Set("name", String("app")).
		Set("timeout", Int(3)).
		Set("ratio", Number(0.25)).
		Set("enabled", Bool(true)).
		Set("none", Null()).
		Set("list", Strings("a", "b"))

	out, err := yaml.Marshal(orig)
	require.NoError(t, err)
	assert.Equal(t, "name: app\ntimeout: 3\nratio: 0.25\nenabled: true\nnone: null\nlist:\n    - a\n    - b\n", string(out))

	var back Node
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.True(t, Equal(orig, &back))
	assert.Equal(t, orig.Keys(), back.Keys())
}

func TestJSON_RoundTripKeepsOrder(t *testing.T) {
	t.Parallel()

	src := `{"b":1,"a":{"y":"x","x":[true,null,2.5]}}`

	var n Node
	require.NoError(t, json.Unmarshal([]byte(src), &n))
	assert.Equal(t, []string{"b", "a"}, n.Keys())

	out, err := json.Marshal(&n)
	require.NoError(t, err)
	assert.JSONEq(t, src, string(out))
	assert.Equal(t, src, string(out))
}

func TestUnmarshalJSON_RejectsTrailingData(t *testing.T) {
	t.Parallel()

	var n Node
	assert.Error(t, n.UnmarshalJSON([]byte(`{"a":1} {"b":2}`)))
}

func TestFromValue(t *testing.T) {
	t.Parallel()

	n, err := FromValue(map[string]any{
		"b":    []any{"x", 1, json.Number("2")},
		"a":    map[string]string{"k": "v"},
		"flag": false,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "flag"}, n.Keys())
	assert.Equal(t, map[string]any{
		"a":    map[string]any{"k": "v"},
		"b":    []any{"x", int64(1), int64(2)},
		"flag": false,
	}, n.Value())

	_, err = FromValue(struct{}{})
	assert.Error(t, err)
}

func TestFromCty(t *testing.T) {
	t.Parallel()

	v := cty.ObjectVal(map[string]cty.Value{
		"region": cty.TupleVal([]cty.Value{cty.StringVal("ap-guangzhou"), cty.StringVal("ap-shanghai")}),
		"functionConf": cty.ObjectVal(map[string]cty.Value{
			"timeout": cty.NumberIntVal(10),
			"tags":    cty.MapVal(map[string]cty.Value{"env": cty.StringVal("prod")}),
		}),
		"enabled": cty.True,
		"role":    cty.NullVal(cty.String),
	})

	n, err := FromCty(v)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"region":  []any{"ap-guangzhou", "ap-shanghai"},
		"enabled": true,
		"role":    nil,
		"functionConf": map[string]any{
			"timeout": int64(10),
			"tags":    map[string]any{"env": "prod"},
		},
	}, n.Value())

	_, err = FromCty(cty.UnknownVal(cty.String))
	assert.Error(t, err)
}

package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/slsfw/internal/config/node"
)

func inputs(v map[string]any) *node.Node { return node.MustFromValue(v) }

func fixedSuffix() string { return "abc123" }

func testOptions() Options {
	return Options{WorkDir: "/work", Suffix: fixedSuffix}
}

func TestNormalizeFunction_Defaults(t *testing.T) {
	t.Parallel()

	fn, err := NormalizeFunction(inputs(map[string]any{}), "express", testOptions())
	require.NoError(t, err)

	assert.Equal(t, "express_component_abc123", fn.Name)
	assert.Equal(t, "/work", fn.CodeURI)
	assert.Equal(t, []string{"ap-guangzhou"}, fn.Region)
	assert.Equal(t, "default", fn.Namespace)
	assert.Equal(t, "", fn.Role)
	assert.Equal(t, "index.main_handler", fn.Handler)
	assert.Equal(t, "Nodejs8.9", fn.Runtime)
	assert.Equal(t, "This is a function created by serverless component", fn.Description)
	assert.Equal(t, "tencent-express", fn.FromClientRemark)
	assert.Empty(t, fn.Tags)
	assert.Empty(t, fn.Include)
	assert.Equal(t, []string{".git/**", ".gitignore", ".serverless", ".DS_Store"}, fn.Exclude)
	assert.True(t, fn.Layers.IsSequence())
	assert.Equal(t, 0, fn.Layers.Len())

	assert.Nil(t, fn.Timeout)
	assert.Nil(t, fn.MemorySize)
	assert.Nil(t, fn.Environment)
	assert.Nil(t, fn.VPCConfig)
}

func TestNormalizeFunction_ExcludeKeepsUserEntriesFirst(t *testing.T) {
	t.Parallel()

	fn, err := NormalizeFunction(inputs(map[string]any{
		"exclude": []any{"node_modules/**", ".gitignore"},
	}), "express", testOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"node_modules/**", ".gitignore",
		".git/**", ".gitignore", ".serverless", ".DS_Store",
	}, fn.Exclude)
}

func TestNormalizeFunction_Region(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		region  any
		want    []string
		wantErr bool
	}{
		{name: "single string", region: "ap-beijing", want: []string{"ap-beijing"}},
		{name: "list", region: []any{"ap-guangzhou", "ap-shanghai"}, want: []string{"ap-guangzhou", "ap-shanghai"}},
		{name: "absent", region: nil, want: []string{"ap-guangzhou"}},
		{name: "empty string", region: "", want: []string{"ap-guangzhou"}},
		{name: "empty list", region: []any{}, want: []string{"ap-guangzhou"}},
		{name: "mapping", region: map[string]any{"a": "b"}, wantErr: true},
		{name: "nested list", region: []any{[]any{"ap-beijing"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := node.Mapping()
			if tt.region != nil {
				in.Set("region", node.MustFromValue(tt.region))
			}

			fn, err := NormalizeFunction(in, "express", testOptions())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, fn.Region)
		})
	}
}

func TestNormalizeFunction_Name(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    map[string]any
		prior string
		want  string
	}{
		{name: "explicit", in: map[string]any{"functionName": "api"}, prior: "old", want: "api"},
		{name: "numeric name is coerced", in: map[string]any{"functionName": 42}, want: "42"},
		{name: "empty falls back to prior", in: map[string]any{"functionName": ""}, prior: "old", want: "old"},
		{name: "prior", in: map[string]any{}, prior: "old", want: "old"},
		{name: "generated", in: map[string]any{}, want: "koa_component_abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			opts.Prior = PriorState{FunctionName: tt.prior}

			fn, err := NormalizeFunction(inputs(tt.in), "koa", opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fn.Name)
		})
	}
}

func TestNormalizeFunction_RandomNameHasSuffix(t *testing.T) {
	t.Parallel()

	fn, err := NormalizeFunction(node.Mapping(), "express", Options{})
	require.NoError(t, err)
	assert.Regexp(t, `^express_component_[0-9a-f]{6}$`, fn.Name)
}

func TestNormalizeFunction_FunctionConfTakesPrecedence(t *testing.T) {
	t.Parallel()

	fn, err := NormalizeFunction(inputs(map[string]any{
		"handler":   "flat.handler",
		"runtime":   "Nodejs10.15",
		"namespace": "flat",
		"code":      "./flat",
		"tags":      map[string]any{"team": "flat"},
		"functionConf": map[string]any{
			"handler": "nested.handler",
			"runtime": "",
			"code":    "./nested",
			"tags":    map[string]any{"team": "nested", "cost": 7},
		},
	}), "express", testOptions())
	require.NoError(t, err)

	assert.Equal(t, "nested.handler", fn.Handler)
	assert.Equal(t, "Nodejs10.15", fn.Runtime, "an empty nested value falls back to the flat field")
	assert.Equal(t, "flat", fn.Namespace)
	assert.Equal(t, "./nested", fn.CodeURI)
	assert.Equal(t, map[string]string{"team": "nested", "cost": "7"}, fn.Tags)
}

func TestNormalizeFunction_OptionalBlock(t *testing.T) {
	t.Parallel()

	t.Run("empty block gets defaults", func(t *testing.T) {
		fn, err := NormalizeFunction(inputs(map[string]any{
			"functionConf": map[string]any{},
		}), "express", testOptions())
		require.NoError(t, err)

		require.NotNil(t, fn.Timeout)
		require.NotNil(t, fn.MemorySize)
		assert.Equal(t, 3, *fn.Timeout)
		assert.Equal(t, 128, *fn.MemorySize)
		assert.Nil(t, fn.Environment)
		assert.Nil(t, fn.VPCConfig)
	})

	t.Run("explicit values", func(t *testing.T) {
		fn, err := NormalizeFunction(inputs(map[string]any{
			"functionConf": map[string]any{
				"timeout":     "10",
				"memorySize":  256,
				"environment": map[string]any{"variables": map[string]any{"NODE_ENV": "production"}},
				"vpcConfig":   map[string]any{"vpcId": "vpc-1", "subnetId": "subnet-1"},
			},
		}), "express", testOptions())
		require.NoError(t, err)

		assert.Equal(t, 10, *fn.Timeout)
		assert.Equal(t, 256, *fn.MemorySize)
		assert.Equal(t, "production", mustString(t, fn.Environment.Lookup("variables", "NODE_ENV")))
		assert.Equal(t, "vpc-1", mustString(t, fn.VPCConfig.Get("vpcId")))
	})

	t.Run("zero timeout falls back", func(t *testing.T) {
		fn, err := NormalizeFunction(inputs(map[string]any{
			"functionConf": map[string]any{"timeout": 0},
		}), "express", testOptions())
		require.NoError(t, err)
		assert.Equal(t, 3, *fn.Timeout)
	})
}

func TestNormalizeFunction_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    map[string]any
		field string
	}{
		{name: "name is a mapping", in: map[string]any{"functionName": map[string]any{"a": 1}}, field: "functionName"},
		{name: "handler is a list", in: map[string]any{"handler": []any{"a"}}, field: "handler"},
		{name: "nested runtime is a mapping", in: map[string]any{"functionConf": map[string]any{"runtime": map[string]any{}}}, field: "runtime"},
		{name: "tags is a list", in: map[string]any{"tags": []any{"a"}}, field: "tags"},
		{name: "tag value is a mapping", in: map[string]any{"tags": map[string]any{"a": map[string]any{}}}, field: "tags.a"},
		{name: "include item is a mapping", in: map[string]any{"include": []any{"ok", map[string]any{}}}, field: "include[1]"},
		{name: "layers is a string", in: map[string]any{"layers": "layer-1"}, field: "layers"},
		{name: "timeout is not a number", in: map[string]any{"functionConf": map[string]any{"timeout": "soon"}}, field: "functionConf.timeout"},
		{name: "memory is fractional", in: map[string]any{"functionConf": map[string]any{"memorySize": 1.5}}, field: "functionConf.memorySize"},
		{name: "timeout overflows an int", in: map[string]any{"functionConf": map[string]any{"timeout": 1e300}}, field: "functionConf.timeout"},
		{name: "memory string overflows an int", in: map[string]any{"functionConf": map[string]any{"memorySize": "99999999999999999999"}}, field: "functionConf.memorySize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := NormalizeFunction(inputs(tt.in), "express", testOptions())
			require.Error(t, err)
			assert.Nil(t, fn)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestNormalizeFunction_SingleIncludeString(t *testing.T) {
	t.Parallel()

	fn, err := NormalizeFunction(inputs(map[string]any{"include": "dist/**"}), "express", testOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"dist/**"}, fn.Include)
}

func mustString(t *testing.T, n *node.Node) string {
	t.Helper()
	s, ok := n.AsString()
	require.True(t, ok, "expected a string node, got %s", n.Kind())
	return s
}

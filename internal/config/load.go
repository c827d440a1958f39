package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/imamik/slsfw/internal/config/node"
)

// Format is the syntax of an input file.
type Format string

// Supported input formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// InputFilenames are searched, in order, by FindInputFile.
var InputFilenames = []string{"serverless.yml", "serverless.yaml", "serverless.json", "serverless.hcl"}

// ErrInputNotFound is returned when no input file exists in a directory.
var ErrInputNotFound = errors.New("no input file found")

// FormatFromPath derives the input format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("unsupported input file extension %q", filepath.Ext(path))
	}
}

// LoadFile reads the deployment inputs from path.
func LoadFile(path string) (*node.Node, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	in, err := Parse(data, format, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return in, nil
}

// Parse decodes inputs in the given format. filename is only used in
// diagnostics. Documents that wrap the inputs in an "inputs" key, directly
// or under a single named component, are unwrapped.
func Parse(data []byte, format Format, filename string) (*node.Node, error) {
	var (
		in  *node.Node
		err error
	)
	switch format {
	case FormatYAML:
		in, err = parseYAML(data)
	case FormatJSON:
		in = node.Null()
		err = in.UnmarshalJSON(data)
	case FormatHCL:
		in, err = ParseHCL(data, filename)
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if in.IsNull() {
		return node.Mapping(), nil
	}
	if !in.IsMapping() {
		return nil, fmt.Errorf("inputs must be a mapping, got %s", in.Kind())
	}
	return unwrapInputs(in), nil
}

func parseYAML(data []byte) (*node.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Kind == 0 {
		return node.Null(), nil
	}
	in := node.Null()
	if err := in.UnmarshalYAML(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return in, nil
}

// ParseHCL decodes a flat HCL body of attributes. Attribute order follows the
// source file.
func ParseHCL(data []byte, filename string) (*node.Node, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %w", diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL attributes: %w", diags)
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	out := node.Mapping()
	for _, attr := range ordered {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %s: %w", attr.Name, diags)
		}
		v, err := node.FromCty(val)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s: %w", attr.Name, err)
		}
		out.Set(attr.Name, v)
	}
	return out, nil
}

// unwrapInputs returns the component inputs of a document shaped either as
// {inputs: {...}} or {name: {component: ..., inputs: {...}}}.
func unwrapInputs(doc *node.Node) *node.Node {
	if inputs := doc.Get("inputs"); inputs.IsMapping() && (doc.Len() == 1 || doc.Has("component")) {
		return inputs
	}
	if doc.Len() == 1 {
		inner := doc.Get(doc.Keys()[0])
		if inner.Has("component") && inner.Get("inputs").IsMapping() {
			return inner.Get("inputs")
		}
	}
	return doc
}

// FindInputFile returns the first of InputFilenames present in dir.
func FindInputFile(dir string) (string, error) {
	for _, name := range InputFilenames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s)", ErrInputNotFound, dir, strings.Join(InputFilenames, ", "))
}

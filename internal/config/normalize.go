package config

import (
	"github.com/imamik/slsfw/internal/config/node"
	"github.com/imamik/slsfw/internal/util/naming"
)

// resolveFramework returns the framework named by the inputs, falling back
// to opts and then DefaultFramework.
func resolveFramework(in *node.Node, opts Options) (string, error) {
	fw, err := ensureString("framework", in.Get("framework"), "")
	if err != nil {
		return "", err
	}
	if fw == "" {
		fw = opts.Framework
	}
	if fw == "" {
		fw = DefaultFramework
	}
	return fw, nil
}

// NormalizeFunction builds the canonical function configuration from raw
// inputs. Values under functionConf take precedence over the flat top-level
// fields of the same name.
func NormalizeFunction(in *node.Node, framework string, opts Options) (*FunctionConfig, error) {
	fnConf := in.Get("functionConf")

	name, err := functionName(in, framework, opts)
	if err != nil {
		return nil, err
	}

	regions, err := normalizeRegions(in.Get("region"))
	if err != nil {
		return nil, err
	}

	fn := &FunctionConfig{
		Name:             name,
		Region:           regions,
		FromClientRemark: naming.ClientRemark(framework),
		Regions:          make(map[string]*node.Node),
	}

	if fn.CodeURI, err = ensureString("code", pick(fnConf.Get("code"), in.Get("code")), ""); err != nil {
		return nil, err
	}
	if fn.CodeURI == "" {
		fn.CodeURI = opts.WorkDir
	}

	stringFields := []struct {
		key string
		dst *string
		def string
	}{
		{"namespace", &fn.Namespace, DefaultNamespace},
		{"role", &fn.Role, DefaultRole},
		{"handler", &fn.Handler, DefaultHandler},
		{"runtime", &fn.Runtime, DefaultRuntime},
		{"description", &fn.Description, DefaultDescription},
	}
	for _, f := range stringFields {
		v, err := ensureString(f.key, pick(fnConf.Get(f.key), in.Get(f.key)), f.def)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	if fn.Tags, err = ensureStringMap("tags", pick(fnConf.Get("tags"), in.Get("tags"))); err != nil {
		return nil, err
	}
	if fn.Include, err = ensureStringList("include", pick(fnConf.Get("include"), in.Get("include"))); err != nil {
		return nil, err
	}
	if fn.Exclude, err = ensureStringList("exclude", pick(fnConf.Get("exclude"), in.Get("exclude"))); err != nil {
		return nil, err
	}
	fn.Exclude = append(fn.Exclude, ExcludeDefaults...)

	layers := in.Get("layers")
	switch {
	case !layers.Truthy():
		fn.Layers = node.Sequence()
	case layers.IsSequence():
		fn.Layers = layers.Clone()
	default:
		return nil, invalid("layers", "expected a sequence, got %s", layers.Kind())
	}

	if fnConf.Truthy() {
		if err := applyFunctionBlock(fn, fnConf); err != nil {
			return nil, err
		}
	}

	return fn, nil
}

// applyFunctionBlock fills the settings that only exist when a functionConf
// block was supplied.
func applyFunctionBlock(fn *FunctionConfig, fnConf *node.Node) error {
	timeout, err := ensureInt("functionConf.timeout", pick(fnConf.Get("timeout")), DefaultTimeout)
	if err != nil {
		return err
	}
	memory, err := ensureInt("functionConf.memorySize", pick(fnConf.Get("memorySize")), DefaultMemorySize)
	if err != nil {
		return err
	}
	fn.Timeout = &timeout
	fn.MemorySize = &memory

	if env := fnConf.Get("environment"); env.Truthy() {
		fn.Environment = env.Clone()
	}
	if vpc := fnConf.Get("vpcConfig"); vpc.Truthy() {
		fn.VPCConfig = vpc.Clone()
	}
	return nil
}

// functionName keeps an explicit name, then the previously deployed name,
// and generates one otherwise.
func functionName(in *node.Node, framework string, opts Options) (string, error) {
	name, err := ensureString("functionName", in.Get("functionName"), "")
	if err != nil {
		return "", err
	}
	if name != "" {
		return name, nil
	}
	if opts.Prior.FunctionName != "" {
		return opts.Prior.FunctionName, nil
	}
	suffix := opts.Suffix
	if suffix == nil {
		suffix = naming.RandomSuffix
	}
	return naming.Function(framework, suffix()), nil
}

// normalizeRegions accepts a single region or a list of regions. Absent and
// empty values yield DefaultRegion.
func normalizeRegions(v *node.Node) ([]string, error) {
	if !v.Truthy() {
		return []string{DefaultRegion}, nil
	}
	if s, ok := v.AsString(); ok {
		return []string{s}, nil
	}
	if !v.IsSequence() {
		return nil, invalid("region", "expected a string or a list of strings, got %s", v.Kind())
	}
	regions, err := ensureStringList("region", v)
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return []string{DefaultRegion}, nil
	}
	return regions, nil
}

package wizard

import (
	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/config/node"
)

// BuildInputs creates the inputs tree from the wizard result. Values equal
// to the normalizer defaults are left out.
func BuildInputs(result *Result) *node.Node {
	in := node.Mapping().Set("framework", node.String(result.Framework))

	if result.FunctionName != "" {
		in.Set("functionName", node.String(result.FunctionName))
	}

	switch len(result.Regions) {
	case 0:
	case 1:
		in.Set("region", node.String(result.Regions[0]))
	default:
		in.Set("region", node.Strings(result.Regions...))
	}

	fn := node.Mapping()
	if result.Runtime != "" && result.Runtime != config.DefaultRuntime {
		fn.Set("runtime", node.String(result.Runtime))
	}
	if result.Handler != "" && result.Handler != config.DefaultHandler {
		fn.Set("handler", node.String(result.Handler))
	}
	if result.MemorySize > 0 {
		fn.Set("memorySize", node.Int(result.MemorySize))
	}
	if result.Timeout > 0 {
		fn.Set("timeout", node.Int(result.Timeout))
	}
	if fn.Len() > 0 {
		in.Set("functionConf", fn)
	}

	gw := node.Mapping()
	if len(result.Protocols) > 0 {
		gw.Set("protocols", node.Strings(result.Protocols...))
	}
	if result.EnableCORS {
		gw.Set("enableCORS", node.Bool(true))
	}
	if result.CustomDomain != "" {
		domain := node.Mapping().
			Set("domain", node.String(result.CustomDomain)).
			Set("protocols", node.Strings(result.Protocols...))
		gw.Set("customDomain", node.Sequence(domain))
	}
	if gw.Len() > 0 {
		in.Set("apigatewayConf", gw)
	}

	if result.CustomDomain != "" && result.RecordLine != "" {
		in.Set("cloudDNSConf", node.Mapping().
			Set("ttl", node.Int(600)).
			Set("recordLine", node.String(result.RecordLine)))
	}

	return in
}

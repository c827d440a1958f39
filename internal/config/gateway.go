package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/imamik/slsfw/internal/config/node"
	"github.com/imamik/slsfw/internal/util/naming"
)

// gatewayKeys are the apigatewayConf keys NormalizeGateway interprets. All
// other keys end up in GatewayConfig.Extra.
var gatewayKeys = map[string]bool{
	"fromClientRemark": true,
	"description":      true,
	"serviceName":      true,
	"serviceId":        true,
	"region":           true,
	"protocols":        true,
	"environment":      true,
	"enableCORS":       true,
	"isDisabled":       true,
	"endpoints":        true,
	"customDomain":     true,
}

// NormalizeGateway builds the canonical gateway configuration for fn. The
// gateway is deployed to the function's regions and always exposes a single
// catch-all endpoint routed to fn.
func NormalizeGateway(in *node.Node, framework string, fn *FunctionConfig) (*GatewayConfig, error) {
	conf := in.Get("apigatewayConf")
	if !conf.Truthy() {
		conf = node.Mapping()
	}
	if !conf.IsMapping() {
		return nil, invalid("apigatewayConf", "expected a mapping, got %s", conf.Kind())
	}

	gw := &GatewayConfig{
		FromClientRemark: naming.ClientRemark(framework),
		Region:           append([]string(nil), fn.Region...),
		Extra:            node.Mapping(),
		Regions:          make(map[string]*node.Node),
	}

	for _, k := range conf.Keys() {
		if !gatewayKeys[k] {
			gw.Extra.Set(k, conf.Get(k).Clone())
		}
	}

	var err error
	if gw.Description, err = ensureString("apigatewayConf.description", pick(conf.Get("description")), ""); err != nil {
		return nil, err
	}
	if gw.Description == "" {
		gw.Description = naming.GatewayDescription(framework)
	}
	if gw.ServiceName, err = ensureString("serviceName", pick(conf.Get("serviceName"), in.Get("serviceName")), ""); err != nil {
		return nil, err
	}
	if gw.ServiceID, err = ensureString("serviceId", pick(conf.Get("serviceId"), in.Get("serviceId")), ""); err != nil {
		return nil, err
	}
	if gw.Protocols, err = ensureStringList("apigatewayConf.protocols", conf.Get("protocols")); err != nil {
		return nil, err
	}
	if len(gw.Protocols) == 0 {
		gw.Protocols = []string{DefaultProtocol}
	}
	if gw.Environment, err = ensureString("apigatewayConf.environment", pick(conf.Get("environment")), DefaultEnvironment); err != nil {
		return nil, err
	}
	gw.EnableCORS = conf.Get("enableCORS").Truthy()
	gw.IsDisabled = conf.Get("isDisabled").Truthy()

	if gw.CustomDomains, err = customDomains(conf.Get("customDomain")); err != nil {
		return nil, err
	}

	gw.Endpoints = []Endpoint{{
		Path:       "/",
		Method:     "ANY",
		EnableCORS: gw.EnableCORS,
		Function: EndpointFunction{
			IsIntegratedResponse: true,
			FunctionName:         fn.Name,
			FunctionNamespace:    fn.Namespace,
		},
	}}

	return gw, nil
}

// customDomains reads the customDomain list. A single mapping counts as a
// one-element list.
func customDomains(v *node.Node) ([]CustomDomain, error) {
	if !v.Truthy() {
		return nil, nil
	}
	items := []*node.Node{v}
	if v.IsSequence() {
		items = v.Items()
	}
	out := make([]CustomDomain, 0, len(items))
	for i, it := range items {
		field := fmt.Sprintf("apigatewayConf.customDomain[%d]", i)
		if !it.IsMapping() {
			return nil, invalid(field, "expected a mapping, got %s", it.Kind())
		}
		domain, err := ensureString(field+".domain", it.Get("domain"), "")
		if err != nil {
			return nil, err
		}
		domain = strings.TrimSpace(domain)
		if domain == "" {
			return nil, invalid(field+".domain", "must not be empty")
		}
		out = append(out, CustomDomain{Domain: domain, Settings: it.Clone()})
	}
	return out, nil
}

// HasCustomDomains reports whether DNS bindings are needed.
func (g *GatewayConfig) HasCustomDomains() bool {
	return g != nil && len(g.CustomDomains) > 0
}

// ToNode renders the gateway configuration in the shape the gateway
// component consumes. Per-region overrides are keyed by region.
func (g *GatewayConfig) ToNode() *node.Node {
	out := g.Extra.Clone()
	if !out.IsMapping() {
		out = node.Mapping()
	}
	out.Set("fromClientRemark", node.String(g.FromClientRemark)).
		Set("description", node.String(g.Description))
	if g.ServiceName != "" {
		out.Set("serviceName", node.String(g.ServiceName))
	}
	if g.ServiceID != "" {
		out.Set("serviceId", node.String(g.ServiceID))
	}
	out.Set("region", node.Strings(g.Region...)).
		Set("protocols", node.Strings(g.Protocols...)).
		Set("environment", node.String(g.Environment)).
		Set("enableCORS", node.Bool(g.EnableCORS)).
		Set("isDisabled", node.Bool(g.IsDisabled))

	endpoints := node.Sequence()
	for _, ep := range g.Endpoints {
		endpoints.Append(ep.ToNode())
	}
	out.Set("endpoints", endpoints)

	if len(g.CustomDomains) > 0 {
		domains := node.Sequence()
		for _, cd := range g.CustomDomains {
			domains.Append(cd.Settings.Clone())
		}
		out.Set("customDomain", domains)
	}

	for _, region := range g.Region {
		if o, ok := g.Regions[region]; ok {
			out.Set(region, o.Clone())
		}
	}
	return out
}

// ToNode renders the endpoint as a gateway route definition.
func (e Endpoint) ToNode() *node.Node {
	return node.Mapping().
		Set("path", node.String(e.Path)).
		Set("enableCORS", node.Bool(e.EnableCORS)).
		Set("method", node.String(e.Method)).
		Set("function", node.Mapping().
			Set("isIntegratedResponse", node.Bool(e.Function.IsIntegratedResponse)).
			Set("functionName", node.String(e.Function.FunctionName)).
			Set("functionNamespace", node.String(e.Function.FunctionNamespace)))
}

// ToNode renders the function configuration in the shape the function
// component consumes. Per-region overrides are keyed by region.
func (f *FunctionConfig) ToNode() *node.Node {
	out := node.Mapping().
		Set("name", node.String(f.Name)).
		Set("codeUri", node.String(f.CodeURI)).
		Set("region", node.Strings(f.Region...)).
		Set("namespace", node.String(f.Namespace)).
		Set("role", node.String(f.Role)).
		Set("handler", node.String(f.Handler)).
		Set("runtime", node.String(f.Runtime)).
		Set("description", node.String(f.Description)).
		Set("fromClientRemark", node.String(f.FromClientRemark))

	layers := f.Layers.Clone()
	if !layers.IsSequence() {
		layers = node.Sequence()
	}
	out.Set("layers", layers)

	tags := node.Mapping()
	for _, k := range slices.Sorted(maps.Keys(f.Tags)) {
		tags.Set(k, node.String(f.Tags[k]))
	}
	out.Set("tags", tags).
		Set("include", node.Strings(f.Include...)).
		Set("exclude", node.Strings(f.Exclude...))

	if f.Timeout != nil {
		out.Set("timeout", node.Int(*f.Timeout))
	}
	if f.MemorySize != nil {
		out.Set("memorySize", node.Int(*f.MemorySize))
	}
	if f.Environment != nil {
		out.Set("environment", f.Environment.Clone())
	}
	if f.VPCConfig != nil {
		out.Set("vpcConfig", f.VPCConfig.Clone())
	}

	for _, region := range f.Region {
		if o, ok := f.Regions[region]; ok {
			out.Set(region, o.Clone())
		}
	}
	return out
}

package provisioning

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/config/node"
	"github.com/imamik/slsfw/internal/util/naming"
)

// ErrUnresolvedPlaceholder is returned when a DNS record points at a region
// the gateway reported no subdomain for.
var ErrUnresolvedPlaceholder = errors.New("no gateway subdomain for DNS record")

// Outputs accumulates what the deploy phases produced.
type Outputs struct {
	FunctionName string
	Regions      []string
	// Functions holds the function deployer outputs keyed by region.
	Functions map[string]*node.Node
	// Gateways is nil when the gateway was not deployed.
	Gateways map[string]GatewayOutput
	CNS      []string
	// DNS is the output of the last DNS deployment that reported one.
	DNS *node.Node
}

// NewOutputs returns empty outputs.
func NewOutputs() *Outputs {
	return &Outputs{Functions: map[string]*node.Node{}}
}

// DefaultProtocol returns https when the gateway serves it, http otherwise.
func DefaultProtocol(protocols []string) string {
	if slices.ContainsFunc(protocols, func(p string) bool { return strings.EqualFold(p, "https") }) {
		return "https"
	}
	return "http"
}

// URL is the public URL of a gateway.
func (g GatewayOutput) URL() string {
	return fmt.Sprintf("%s://%s/%s/", DefaultProtocol(g.Protocols), g.SubDomain, g.Environment)
}

// SubDomains maps each deployed region to its gateway subdomain.
func (o *Outputs) SubDomains() map[string]string {
	subs := make(map[string]string, len(o.Gateways))
	for region, gw := range o.Gateways {
		subs[region] = gw.SubDomain
	}
	return subs
}

// ResolveRecords returns a copy of binding whose region placeholders are
// replaced with the gateway subdomain of that region.
func ResolveRecords(binding config.DNSBinding, subDomains map[string]string) (config.DNSBinding, error) {
	resolved := config.DNSBinding{
		Domain:  binding.Domain,
		Records: make([]config.DNSRecord, 0, len(binding.Records)),
	}
	for _, rec := range binding.Records {
		if region, ok := naming.RegionFromPlaceholder(rec.Value); ok {
			sub, found := subDomains[region]
			if !found || sub == "" {
				return config.DNSBinding{}, fmt.Errorf("%w: domain %s region %s", ErrUnresolvedPlaceholder, binding.Domain, region)
			}
			rec.Value = sub
		}
		resolved.Records = append(resolved.Records, rec)
	}
	return resolved, nil
}

// ToNode renders the outputs document. A single region is reported flat,
// several regions under their own keys.
func (o *Outputs) ToNode() *node.Node {
	out := node.Mapping().Set("functionName", node.String(o.FunctionName))

	if len(o.Regions) == 1 {
		out.Set("functionOutputs", o.Functions[o.Regions[0]].Clone())
	} else {
		fns := node.Mapping()
		for _, region := range o.Regions {
			fns.Set(region, o.Functions[region].Clone())
		}
		out.Set("functionOutputs", fns)
	}

	if o.Gateways == nil {
		return out
	}

	if len(o.Regions) == 1 {
		region := o.Regions[0]
		gw := o.Gateways[region]
		out.Set("region", node.String(region)).
			Set("apiGatewayServiceId", node.String(gw.ServiceID)).
			Set("url", node.String(gw.URL()))
	} else {
		for _, region := range o.Regions {
			gw := o.Gateways[region]
			out.Set(region, node.Mapping().
				Set("apiGatewayServiceId", node.String(gw.ServiceID)).
				Set("url", node.String(gw.URL())))
		}
	}

	out.Set("cns", node.Strings(o.CNS...))
	if o.DNS.Truthy() {
		out.Set("DNS", o.DNS.Clone())
	}
	return out
}

package config

import (
	"context"
	"fmt"

	"github.com/imamik/slsfw/internal/config/node"
	"github.com/imamik/slsfw/internal/util/naming"
)

// Prepare normalizes raw inputs into the function, gateway and DNS
// configuration handed to the provisioning components. Validation errors are
// returned before any domain is resolved.
func Prepare(ctx context.Context, in *node.Node, opts Options) (*Prepared, error) {
	if in == nil {
		in = node.Mapping()
	}
	if !in.IsMapping() {
		return nil, invalid("inputs", "expected a mapping, got %s", in.Kind())
	}

	framework, err := resolveFramework(in, opts)
	if err != nil {
		return nil, err
	}

	fn, err := NormalizeFunction(in, framework, opts)
	if err != nil {
		return nil, err
	}
	gw, err := NormalizeGateway(in, framework, fn)
	if err != nil {
		return nil, err
	}
	dns, err := FanOut(in, fn, gw)
	if err != nil {
		return nil, err
	}

	p := &Prepared{
		Framework: framework,
		Regions:   fn.Region,
		Function:  fn,
		Gateway:   gw,
		DNS:       dns,
	}

	if gw.HasCustomDomains() {
		resolver := opts.Resolver
		if resolver == nil {
			resolver = LocalDomainResolver{}
		}
		if p.Bindings, err = BuildBindings(ctx, resolver, gw.CustomDomains, fn.Region, dns); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// BuildBindings creates one DNS binding per custom domain. Each binding holds
// a CNAME record for every region with a record line; the record value is a
// placeholder naming the region.
func BuildBindings(ctx context.Context, resolver DomainResolver, domains []CustomDomain, regions []string, dns map[string]DNSSettings) ([]DNSBinding, error) {
	bindings := make([]DNSBinding, 0, len(domains))
	for _, cd := range domains {
		resolved, err := resolver.ResolveDomain(ctx, cd.Domain)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve domain %s: %w", cd.Domain, err)
		}

		sub := resolved.SubDomain
		if sub == "" {
			sub = ApexSubDomain
		}
		binding := DNSBinding{Domain: resolved.Domain, Records: []DNSRecord{}}
		for _, region := range regions {
			s := dns[region]
			if s.RecordLine == "" {
				continue
			}
			status := s.Status
			if status == "" {
				status = DefaultDNSStatus
			}
			binding.Records = append(binding.Records, DNSRecord{
				SubDomain:  sub,
				RecordType: RecordTypeCNAME,
				RecordLine: s.RecordLine,
				Value:      naming.DNSPlaceholder(region),
				TTL:        s.TTL,
				MX:         s.MX,
				Status:     status,
			})
		}
		bindings = append(bindings, binding)
	}
	return bindings, nil
}

// ToNode renders the DNS settings of one region.
func (s DNSSettings) ToNode() *node.Node {
	out := node.Mapping().Set("recordType", node.String(s.RecordType))
	if s.RecordLine != "" {
		out.Set("recordLine", node.String(s.RecordLine))
	}
	if s.TTL != nil {
		out.Set("ttl", node.Int(*s.TTL))
	}
	if s.MX != nil {
		out.Set("mx", node.Int(*s.MX))
	}
	return out.Set("status", node.String(s.Status))
}

// ToNode renders the prepared configuration as a single tree with the keys
// region, functionConf, apigatewayConf, cloudDNSConf and cnsConf.
func (p *Prepared) ToNode() *node.Node {
	dns := node.Mapping()
	for _, region := range p.Regions {
		dns.Set(region, p.DNS[region].ToNode())
	}

	cns := node.Sequence()
	for _, b := range p.Bindings {
		cns.Append(b.ToNode())
	}

	return node.Mapping().
		Set("framework", node.String(p.Framework)).
		Set("region", node.Strings(p.Regions...)).
		Set("functionConf", p.Function.ToNode()).
		Set("apigatewayConf", p.Gateway.ToNode()).
		Set("cloudDNSConf", dns).
		Set("cnsConf", cns)
}

// ToNode renders the binding in the shape the DNS component consumes.
func (b DNSBinding) ToNode() *node.Node {
	records := node.Sequence()
	for _, r := range b.Records {
		rec := node.Mapping().
			Set("subDomain", node.String(r.SubDomain)).
			Set("recordType", node.String(r.RecordType)).
			Set("recordLine", node.String(r.RecordLine)).
			Set("value", node.String(r.Value))
		if r.TTL != nil {
			rec.Set("ttl", node.Int(*r.TTL))
		}
		if r.MX != nil {
			rec.Set("mx", node.Int(*r.MX))
		}
		records.Append(rec.Set("status", node.String(r.Status)))
	}
	return node.Mapping().
		Set("domain", node.String(b.Domain)).
		Set("records", records)
}

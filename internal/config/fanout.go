package config

import (
	"github.com/imamik/slsfw/internal/config/merge"
	"github.com/imamik/slsfw/internal/config/node"
)

// FanOut applies the region override blocks of the inputs. The functionConf
// and apigatewayConf of a region block are attached verbatim to fn and gw.
// The cloudDNSConf of a region block is merged with the global cloudDNSConf
// to give the effective DNS settings of that region. Every region gets
// settings, with or without an override block.
//
// The global block is the merge source and the region block the target, so
// string values of the global block win while numbers, bools and keys only
// present in the region block survive.
func FanOut(in *node.Node, fn *FunctionConfig, gw *GatewayConfig) (map[string]DNSSettings, error) {
	base := in.Get("cloudDNSConf")
	if !base.IsMapping() {
		base = node.Mapping()
	}

	out := make(map[string]DNSSettings, len(fn.Region))
	for _, region := range fn.Region {
		block := in.Get(region)

		if conf := block.Get("functionConf"); conf.Truthy() {
			fn.Regions[region] = conf.Clone()
		}
		if conf := block.Get("apigatewayConf"); conf.Truthy() && gw != nil {
			gw.Regions[region] = conf.Clone()
		}

		override := block.Get("cloudDNSConf")
		if !override.IsMapping() {
			override = node.Mapping()
		}
		merged := merge.Merge(base.Clone(), override.Clone())

		settings, err := dnsSettings(region, merged)
		if err != nil {
			return nil, err
		}
		out[region] = settings
	}
	return out, nil
}

func dnsSettings(region string, merged *node.Node) (DNSSettings, error) {
	field := region + ".cloudDNSConf"
	s := DNSSettings{RecordType: RecordTypeCNAME}

	var err error
	if s.RecordLine, err = ensureString(field+".recordLine", pick(merged.Get("recordLine")), ""); err != nil {
		return DNSSettings{}, err
	}
	if s.TTL, err = optionalInt(field+".ttl", merged.Get("ttl")); err != nil {
		return DNSSettings{}, err
	}
	if s.MX, err = optionalInt(field+".mx", merged.Get("mx")); err != nil {
		return DNSSettings{}, err
	}
	if s.Status, err = ensureString(field+".status", pick(merged.Get("status")), DefaultDNSStatus); err != nil {
		return DNSSettings{}, err
	}
	return s, nil
}

package testing

import (
	"github.com/imamik/slsfw/internal/config/node"
)

// InputsBuilder provides a fluent interface for constructing deployment
// inputs. Each method returns a new builder (immutable) for chaining.
type InputsBuilder struct {
	in *node.Node
}

// NewInputsBuilder creates a builder for an express deployment in
// ap-guangzhou.
func NewInputsBuilder() *InputsBuilder {
	return &InputsBuilder{
		in: node.Mapping().
			Set("framework", node.String("express")).
			Set("region", node.String("ap-guangzhou")),
	}
}

// WithFramework sets the framework.
func (b *InputsBuilder) WithFramework(framework string) *InputsBuilder {
	return b.set("framework", node.String(framework))
}

// WithFunctionName sets an explicit function name.
func (b *InputsBuilder) WithFunctionName(name string) *InputsBuilder {
	return b.set("functionName", node.String(name))
}

// WithRegions sets the target regions.
func (b *InputsBuilder) WithRegions(regions ...string) *InputsBuilder {
	if len(regions) == 1 {
		return b.set("region", node.String(regions[0]))
	}
	return b.set("region", node.Strings(regions...))
}

// WithFunctionConf sets a functionConf entry.
func (b *InputsBuilder) WithFunctionConf(key string, value *node.Node) *InputsBuilder {
	return b.setIn("functionConf", key, value)
}

// WithGatewayConf sets an apigatewayConf entry.
func (b *InputsBuilder) WithGatewayConf(key string, value *node.Node) *InputsBuilder {
	return b.setIn("apigatewayConf", key, value)
}

// WithCustomDomain adds a custom domain to apigatewayConf.
func (b *InputsBuilder) WithCustomDomain(domain string) *InputsBuilder {
	nb := b.clone()
	gw := nb.in.Get("apigatewayConf")
	if !gw.IsMapping() {
		gw = node.Mapping()
		nb.in.Set("apigatewayConf", gw)
	}
	domains := gw.Get("customDomain")
	if !domains.IsSequence() {
		domains = node.Sequence()
		gw.Set("customDomain", domains)
	}
	domains.Append(node.Mapping().Set("domain", node.String(domain)))
	return nb
}

// WithDNS sets a cloudDNSConf entry.
func (b *InputsBuilder) WithDNS(key string, value *node.Node) *InputsBuilder {
	return b.setIn("cloudDNSConf", key, value)
}

// WithRegionOverride sets <region>.<block>.<key>.
func (b *InputsBuilder) WithRegionOverride(region, block, key string, value *node.Node) *InputsBuilder {
	nb := b.clone()
	r := nb.in.Get(region)
	if !r.IsMapping() {
		r = node.Mapping()
		nb.in.Set(region, r)
	}
	blk := r.Get(block)
	if !blk.IsMapping() {
		blk = node.Mapping()
		r.Set(block, blk)
	}
	blk.Set(key, value)
	return nb
}

// Build returns a copy of the constructed inputs.
func (b *InputsBuilder) Build() *node.Node {
	return b.in.Clone()
}

func (b *InputsBuilder) set(key string, value *node.Node) *InputsBuilder {
	nb := b.clone()
	nb.in.Set(key, value)
	return nb
}

func (b *InputsBuilder) setIn(block, key string, value *node.Node) *InputsBuilder {
	nb := b.clone()
	blk := nb.in.Get(block)
	if !blk.IsMapping() {
		blk = node.Mapping()
		nb.in.Set(block, blk)
	}
	blk.Set(key, value)
	return nb
}

func (b *InputsBuilder) clone() *InputsBuilder {
	return &InputsBuilder{in: b.in.Clone()}
}

package component

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/config/node"
	"github.com/imamik/slsfw/internal/provisioning"
)

// DeployFunction deploys the function and returns its outputs per region.
func (c *Client) DeployFunction(ctx context.Context, fn *config.FunctionConfig) (map[string]*node.Node, error) {
	outputs, err := c.call(ctx, ComponentFunction, c.instance, ActionDeploy, fn.ToNode())
	if err != nil {
		return nil, err
	}

	byRegion := make(map[string]*node.Node, len(fn.Region))
	for _, region := range fn.Region {
		n, err := node.FromValue(outputs[region])
		if err != nil {
			return nil, fmt.Errorf("invalid function output for %s: %w", region, err)
		}
		byRegion[region] = n
	}
	return byRegion, nil
}

// RemoveFunction removes every function created under the remark.
func (c *Client) RemoveFunction(ctx context.Context, req provisioning.RemoveRequest) error {
	_, err := c.call(ctx, ComponentFunction, c.instance, ActionRemove, req)
	return err
}

// DeployGateway deploys the gateway and returns its outputs per region.
func (c *Client) DeployGateway(ctx context.Context, gw *config.GatewayConfig) (map[string]provisioning.GatewayOutput, error) {
	outputs, err := c.call(ctx, ComponentGateway, c.instance, ActionDeploy, gw.ToNode())
	if err != nil {
		return nil, err
	}

	byRegion := make(map[string]provisioning.GatewayOutput, len(gw.Region))
	for _, region := range gw.Region {
		raw, ok := outputs[region]
		if !ok {
			continue
		}
		out, err := decodeGatewayOutput(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid gateway output for %s: %w", region, err)
		}
		byRegion[region] = out
	}
	return byRegion, nil
}

// RemoveGateway removes every gateway created under the remark.
func (c *Client) RemoveGateway(ctx context.Context, req provisioning.RemoveRequest) error {
	_, err := c.call(ctx, ComponentGateway, c.instance, ActionRemove, req)
	return err
}

// DeployDNS creates the records of one domain and returns the DNS output.
func (c *Client) DeployDNS(ctx context.Context, binding config.DNSBinding) (*node.Node, error) {
	outputs, err := c.call(ctx, ComponentDNS, c.dnsInstance(binding.Domain), ActionDeploy, binding)
	if err != nil {
		return nil, err
	}
	out, err := node.FromValue(outputs["DNS"])
	if err != nil {
		return nil, fmt.Errorf("invalid DNS output for %s: %w", binding.Domain, err)
	}
	return out, nil
}

// RemoveDNS removes the records of req.Domain.
func (c *Client) RemoveDNS(ctx context.Context, req provisioning.RemoveRequest) error {
	_, err := c.call(ctx, ComponentDNS, c.dnsInstance(req.Domain), ActionRemove, req)
	return err
}

// dnsInstance keeps one DNS component instance per domain.
func (c *Client) dnsInstance(domain string) string {
	return c.instance + "-" + domain
}

// decodeGatewayOutput accepts protocols as a list or as "http&https".
func decodeGatewayOutput(raw any) (provisioning.GatewayOutput, error) {
	var out provisioning.GatewayOutput
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc("&"),
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(raw); err != nil {
		return out, err
	}
	return out, nil
}

var (
	_ provisioning.FunctionDeployer = (*Client)(nil)
	_ provisioning.GatewayDeployer  = (*Client)(nil)
	_ provisioning.DNSDeployer      = (*Client)(nil)
)

package deploy

import (
	"errors"
	"fmt"

	"github.com/imamik/slsfw/internal/provisioning"
	"github.com/imamik/slsfw/internal/state"
)

// ErrMissingGatewayOutput is returned when the gateway deployer reports no
// output for a configured region.
var ErrMissingGatewayOutput = errors.New("gateway reported no output for region")

// Provisioner handles deployments.
type Provisioner struct {
	phases []provisioning.Phase
}

// NewProvisioner creates a new deploy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{
		phases: []provisioning.Phase{functionPhase{}, gatewayPhase{}, dnsPhase{}},
	}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string { return "deploy" }

// Provision deploys everything in ctx.Config and fills ctx.Outputs.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	ctx.Observer.Printf("[Deploy] Deploying %s to %v", ctx.Config.Function.Name, ctx.Config.Regions)
	return provisioning.RunPhases(ctx, p.phases)
}

// Record builds the state record of a finished deployment. The deployment
// ID of the prior record is kept.
func Record(ctx *provisioning.Context) *state.Record {
	r := state.NewRecord()
	if !ctx.Prior.IsEmpty() {
		r.DeploymentID = ctx.Prior.DeploymentID
	}
	r.Framework = ctx.Config.Framework
	r.FunctionName = ctx.Outputs.FunctionName
	r.FromClientRemark = ctx.Config.Function.FromClientRemark
	r.Regions = ctx.Config.Regions
	r.CNS = ctx.Outputs.CNS
	r.Outputs = ctx.Outputs.ToNode()
	return r
}

type functionPhase struct{}

func (functionPhase) Name() string { return "function" }

func (functionPhase) Provision(ctx *provisioning.Context) error {
	fn := ctx.Config.Function
	provisioning.LogResourceDeploying(ctx.Observer, "function", "function", fn.Name)

	outputs, err := ctx.Components.Function.DeployFunction(ctx, fn)
	if err != nil {
		provisioning.LogResourceFailed(ctx.Observer, "function", "function", fn.Name, err)
		return fmt.Errorf("failed to deploy function %s: %w", fn.Name, err)
	}

	ctx.Outputs.FunctionName = fn.Name
	ctx.Outputs.Regions = ctx.Config.Regions
	if outputs != nil {
		ctx.Outputs.Functions = outputs
	}

	provisioning.LogResourceDeployed(ctx.Observer, "function", "function", fn.Name)
	return nil
}

type gatewayPhase struct{}

func (gatewayPhase) Name() string { return "gateway" }

func (gatewayPhase) Provision(ctx *provisioning.Context) error {
	gw := ctx.Config.Gateway
	if gw == nil || gw.IsDisabled {
		provisioning.LogPhaseSkipped(ctx.Observer, "gateway", "disabled")
		return nil
	}

	name := gw.ServiceName
	if name == "" {
		name = gw.Description
	}
	provisioning.LogResourceDeploying(ctx.Observer, "gateway", "gateway", name)

	outputs, err := ctx.Components.Gateway.DeployGateway(ctx, gw)
	if err != nil {
		provisioning.LogResourceFailed(ctx.Observer, "gateway", "gateway", name, err)
		return fmt.Errorf("failed to deploy gateway: %w", err)
	}

	for _, region := range ctx.Config.Regions {
		if _, ok := outputs[region]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingGatewayOutput, region)
		}
	}

	ctx.Outputs.Gateways = outputs
	ctx.Outputs.CNS = []string{}

	provisioning.LogResourceDeployed(ctx.Observer, "gateway", "gateway", name)
	return nil
}

type dnsPhase struct{}

func (dnsPhase) Name() string { return "dns" }

func (dnsPhase) Provision(ctx *provisioning.Context) error {
	if ctx.Outputs.Gateways == nil {
		provisioning.LogPhaseSkipped(ctx.Observer, "dns", "no gateway deployed")
		return nil
	}
	if len(ctx.Config.Bindings) == 0 {
		provisioning.LogPhaseSkipped(ctx.Observer, "dns", "no custom domains")
		return nil
	}

	subDomains := ctx.Outputs.SubDomains()
	for _, binding := range ctx.Config.Bindings {
		resolved, err := provisioning.ResolveRecords(binding, subDomains)
		if err != nil {
			return err
		}

		provisioning.LogResourceDeploying(ctx.Observer, "dns", "dns", resolved.Domain)
		out, err := ctx.Components.DNS.DeployDNS(ctx, resolved)
		if err != nil {
			provisioning.LogResourceFailed(ctx.Observer, "dns", "dns", resolved.Domain, err)
			return fmt.Errorf("failed to deploy DNS for %s: %w", resolved.Domain, err)
		}

		if out.Truthy() {
			ctx.Outputs.DNS = out
		}
		ctx.Outputs.CNS = append(ctx.Outputs.CNS, resolved.Domain)
		provisioning.LogResourceDeployed(ctx.Observer, "dns", "dns", resolved.Domain)
	}
	return nil
}

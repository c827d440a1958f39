package destroy

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/slsfw/internal/provisioning"
	"github.com/imamik/slsfw/internal/state"
	"github.com/imamik/slsfw/internal/util/async"
	"github.com/imamik/slsfw/internal/util/naming"
)

// dnsConcurrency bounds parallel DNS removals.
const dnsConcurrency = 4

// Provisioner handles removal.
type Provisioner struct{}

// NewProvisioner creates a new destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string { return "Destroy" }

// Provision removes the function, the gateway and the recorded DNS domains.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	framework := ""
	if ctx.Config != nil {
		framework = ctx.Config.Framework
	}
	prior := ctx.Prior
	if prior == nil {
		prior = &state.Record{}
	}
	if framework == "" {
		framework = prior.Framework
	}
	if framework == "" {
		return errors.New("cannot remove: no framework configured or recorded")
	}

	// Removals are scoped by the client remark, which the framework determines.
	req := provisioning.RemoveRequest{FromClientRemark: naming.ClientRemark(framework)}
	ctx.Observer.Printf("[Destroy] Removing resources marked %s", req.FromClientRemark)

	provisioning.LogResourceRemoving(ctx.Observer, "destroy", "function", req.FromClientRemark)
	if err := ctx.Components.Function.RemoveFunction(ctx, req); err != nil {
		provisioning.LogResourceFailed(ctx.Observer, "destroy", "function", req.FromClientRemark, err)
		return fmt.Errorf("failed to remove function: %w", err)
	}
	provisioning.LogResourceRemoved(ctx.Observer, "destroy", "function", req.FromClientRemark)

	provisioning.LogResourceRemoving(ctx.Observer, "destroy", "gateway", req.FromClientRemark)
	if err := ctx.Components.Gateway.RemoveGateway(ctx, req); err != nil {
		provisioning.LogResourceFailed(ctx.Observer, "destroy", "gateway", req.FromClientRemark, err)
		return fmt.Errorf("failed to remove gateway: %w", err)
	}
	provisioning.LogResourceRemoved(ctx.Observer, "destroy", "gateway", req.FromClientRemark)

	tasks := make([]async.Task, 0, len(prior.CNS))
	for _, domain := range prior.CNS {
		tasks = append(tasks, async.Task{
			Name: domain,
			Func: func(c context.Context) error {
				provisioning.LogResourceRemoving(ctx.Observer, "destroy", "dns", domain)
				dnsReq := req
				dnsReq.Domain = domain
				if err := ctx.Components.DNS.RemoveDNS(c, dnsReq); err != nil {
					provisioning.LogResourceFailed(ctx.Observer, "destroy", "dns", domain, err)
					return err
				}
				provisioning.LogResourceRemoved(ctx.Observer, "destroy", "dns", domain)
				return nil
			},
		})
	}
	if err := async.RunParallel(ctx, tasks, dnsConcurrency); err != nil {
		return fmt.Errorf("failed to remove DNS records: %w", err)
	}

	ctx.Observer.Printf("[Destroy] Removed %s", req.FromClientRemark)
	return nil
}

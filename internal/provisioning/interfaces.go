package provisioning

import (
	"context"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/config/node"
)

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// RemoveRequest scopes a removal to the resources a framework created.
type RemoveRequest struct {
	FromClientRemark string `json:"fromClientRemark"`
	// Domain is set for DNS removals only.
	Domain string `json:"domain,omitempty"`
}

// FunctionDeployer deploys the function to every configured region.
// Implemented by internal/platform/component.Client.
type FunctionDeployer interface {
	// DeployFunction returns the deployment outputs keyed by region.
	DeployFunction(ctx context.Context, fn *config.FunctionConfig) (map[string]*node.Node, error)
	RemoveFunction(ctx context.Context, req RemoveRequest) error
}

// GatewayOutput is what the gateway deployer reports for one region.
type GatewayOutput struct {
	ServiceID   string   `json:"serviceId" mapstructure:"serviceId"`
	SubDomain   string   `json:"subDomain" mapstructure:"subDomain"`
	Environment string   `json:"environment" mapstructure:"environment"`
	Protocols   []string `json:"protocols" mapstructure:"protocols"`
}

// GatewayDeployer deploys the API gateway to every configured region.
type GatewayDeployer interface {
	// DeployGateway returns the gateway outputs keyed by region.
	DeployGateway(ctx context.Context, gw *config.GatewayConfig) (map[string]GatewayOutput, error)
	RemoveGateway(ctx context.Context, req RemoveRequest) error
}

// DNSDeployer manages the records of one domain at a time.
type DNSDeployer interface {
	// DeployDNS returns the DNS output of the domain, which may be null.
	DeployDNS(ctx context.Context, binding config.DNSBinding) (*node.Node, error)
	RemoveDNS(ctx context.Context, req RemoveRequest) error
}

// Components bundles the remote collaborators of a deployment.
type Components struct {
	Function FunctionDeployer
	Gateway  GatewayDeployer
	DNS      DNSDeployer
}

// PhaseRecorder observes phase durations. Implemented by internal/metrics.
type PhaseRecorder interface {
	ObservePhase(phase string, seconds float64, err error)
}

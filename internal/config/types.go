package config

import (
	"context"

	"github.com/imamik/slsfw/internal/config/node"
)

// FunctionConfig is the canonical serverless function configuration.
type FunctionConfig struct {
	Name             string
	CodeURI          string
	Region           []string
	Namespace        string
	Role             string
	Handler          string
	Runtime          string
	Description      string
	FromClientRemark string
	Tags             map[string]string
	Include          []string
	Exclude          []string
	Layers           *node.Node

	// Set only when the inputs carry a functionConf block.
	Timeout     *int
	MemorySize  *int
	Environment *node.Node
	VPCConfig   *node.Node

	// Regions holds verbatim per-region functionConf overrides.
	Regions map[string]*node.Node
}

// GatewayConfig is the canonical API gateway configuration.
type GatewayConfig struct {
	ServiceName      string
	ServiceID        string
	Description      string
	FromClientRemark string
	Region           []string
	Protocols        []string
	Environment      string
	EnableCORS       bool
	IsDisabled       bool
	Endpoints        []Endpoint
	CustomDomains    []CustomDomain

	// Extra carries apigatewayConf keys the normalizer does not interpret.
	Extra *node.Node

	// Regions holds verbatim per-region apigatewayConf overrides.
	Regions map[string]*node.Node
}

// Endpoint binds a path and method to a function.
type Endpoint struct {
	Path       string
	Method     string
	EnableCORS bool
	Function   EndpointFunction
}

// EndpointFunction references the function an endpoint invokes.
type EndpointFunction struct {
	IsIntegratedResponse bool
	FunctionName         string
	FunctionNamespace    string
}

// CustomDomain is a domain bound to the gateway. Settings is the full entry
// as written by the user, domain included.
type CustomDomain struct {
	Domain   string
	Settings *node.Node
}

// DNSSettings are the effective DNS settings of one region.
type DNSSettings struct {
	RecordType string
	RecordLine string
	TTL        *int
	MX         *int
	Status     string
}

// DNSBinding asks the DNS component to create records under Domain.
type DNSBinding struct {
	Domain  string      `json:"domain" mapstructure:"domain"`
	Records []DNSRecord `json:"records" mapstructure:"records"`
}

// DNSRecord is a single DNS record. Value holds a region placeholder until
// the gateway subdomain of that region is known.
type DNSRecord struct {
	SubDomain  string `json:"subDomain" mapstructure:"subDomain"`
	RecordType string `json:"recordType" mapstructure:"recordType"`
	RecordLine string `json:"recordLine" mapstructure:"recordLine"`
	Value      string `json:"value" mapstructure:"value"`
	TTL        *int   `json:"ttl,omitempty" mapstructure:"ttl"`
	MX         *int   `json:"mx,omitempty" mapstructure:"mx"`
	Status     string `json:"status" mapstructure:"status"`
}

// PriorState is what a previous deployment left behind that the normalizer
// needs to keep identities stable across redeploys.
type PriorState struct {
	FunctionName string
}

// ResolvedDomain is a custom domain split into its zone and subdomain.
type ResolvedDomain struct {
	Domain    string
	SubDomain string
}

// DomainResolver checks a custom domain and splits it into zone and
// subdomain.
type DomainResolver interface {
	ResolveDomain(ctx context.Context, domain string) (ResolvedDomain, error)
}

// Options control normalization.
type Options struct {
	// Framework is used when the inputs do not name one.
	Framework string
	// WorkDir is the code location used when the inputs do not name one.
	WorkDir string
	Prior   PriorState
	// Suffix generates the random part of function names. Defaults to
	// naming.RandomSuffix.
	Suffix func() string
	// Resolver checks custom domains. Defaults to LocalDomainResolver.
	Resolver DomainResolver
}

// Prepared is the fully normalized deployment configuration.
type Prepared struct {
	Framework string
	Regions   []string
	Function  *FunctionConfig
	Gateway   *GatewayConfig
	DNS       map[string]DNSSettings
	Bindings  []DNSBinding
}

package testing

import (
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/slsfw/internal/config/node"
	"github.com/imamik/slsfw/internal/provisioning"
)

// ComponentsFixture provides mocked components for common test scenarios.
type ComponentsFixture struct {
	Function *MockFunctionDeployer
	Gateway  *MockGatewayDeployer
	DNS      *MockDNSDeployer
}

// NewComponentsFixture creates a fixture with fresh mocks.
func NewComponentsFixture() *ComponentsFixture {
	return &ComponentsFixture{
		Function: &MockFunctionDeployer{},
		Gateway:  &MockGatewayDeployer{},
		DNS:      &MockDNSDeployer{},
	}
}

// Components returns the mocks as provisioning components.
func (f *ComponentsFixture) Components() provisioning.Components {
	return provisioning.Components{Function: f.Function, Gateway: f.Gateway, DNS: f.DNS}
}

// GatewayOutputs returns the gateway outputs SuccessfulDeploy reports.
func GatewayOutputs(regions ...string) map[string]provisioning.GatewayOutput {
	out := make(map[string]provisioning.GatewayOutput, len(regions))
	for _, region := range regions {
		out[region] = provisioning.GatewayOutput{
			ServiceID:   "service-" + region,
			SubDomain:   fmt.Sprintf("service-%s.apigw.example.com", region),
			Environment: "release",
			Protocols:   []string{"http", "https"},
		}
	}
	return out
}

// SuccessfulDeploy configures every component to succeed for regions.
// Returns the fixture for chaining.
func (f *ComponentsFixture) SuccessfulDeploy(regions ...string) *ComponentsFixture {
	fnOut := make(map[string]*node.Node, len(regions))
	for _, region := range regions {
		fnOut[region] = node.Mapping().
			Set("FunctionName", node.String("fn")).
			Set("Region", node.String(region))
	}

	f.Function.On("DeployFunction", mock.Anything, mock.Anything).Return(fnOut, nil)
	f.Gateway.On("DeployGateway", mock.Anything, mock.Anything).Return(GatewayOutputs(regions...), nil)
	f.DNS.On("DeployDNS", mock.Anything, mock.Anything).Return(node.Strings("record"), nil)
	return f
}

// SuccessfulRemove configures every removal to succeed.
func (f *ComponentsFixture) SuccessfulRemove() *ComponentsFixture {
	f.Function.On("RemoveFunction", mock.Anything, mock.Anything).Return(nil)
	f.Gateway.On("RemoveGateway", mock.Anything, mock.Anything).Return(nil)
	f.DNS.On("RemoveDNS", mock.Anything, mock.Anything).Return(nil)
	return f
}

// AssertExpectations asserts every mock's expectations.
func (f *ComponentsFixture) AssertExpectations(t mock.TestingT) {
	f.Function.AssertExpectations(t)
	f.Gateway.AssertExpectations(t)
	f.DNS.AssertExpectations(t)
}

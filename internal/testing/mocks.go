package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/config/node"
	"github.com/imamik/slsfw/internal/provisioning"
	"github.com/imamik/slsfw/internal/state"
)

// MockFunctionDeployer is a mock implementation of provisioning.FunctionDeployer.
type MockFunctionDeployer struct {
	mock.Mock
}

// DeployFunction records the call and returns the configured outputs.
func (m *MockFunctionDeployer) DeployFunction(ctx context.Context, fn *config.FunctionConfig) (map[string]*node.Node, error) {
	args := m.Called(ctx, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*node.Node), args.Error(1)
}

// RemoveFunction records the call.
func (m *MockFunctionDeployer) RemoveFunction(ctx context.Context, req provisioning.RemoveRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockGatewayDeployer is a mock implementation of provisioning.GatewayDeployer.
type MockGatewayDeployer struct {
	mock.Mock
}

// DeployGateway records the call and returns the configured outputs.
func (m *MockGatewayDeployer) DeployGateway(ctx context.Context, gw *config.GatewayConfig) (map[string]provisioning.GatewayOutput, error) {
	args := m.Called(ctx, gw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]provisioning.GatewayOutput), args.Error(1)
}

// RemoveGateway records the call.
func (m *MockGatewayDeployer) RemoveGateway(ctx context.Context, req provisioning.RemoveRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockDNSDeployer is a mock implementation of provisioning.DNSDeployer.
type MockDNSDeployer struct {
	mock.Mock
}

// DeployDNS records the call and returns the configured output.
func (m *MockDNSDeployer) DeployDNS(ctx context.Context, binding config.DNSBinding) (*node.Node, error) {
	args := m.Called(ctx, binding)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*node.Node), args.Error(1)
}

// RemoveDNS records the call.
func (m *MockDNSDeployer) RemoveDNS(ctx context.Context, req provisioning.RemoveRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockStore is a mock implementation of state.Store.
type MockStore struct {
	mock.Mock
}

// Load records the call and returns the configured record.
func (m *MockStore) Load(ctx context.Context, name string) (*state.Record, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*state.Record), args.Error(1)
}

// Save records the call.
func (m *MockStore) Save(ctx context.Context, name string, r *state.Record) error {
	args := m.Called(ctx, name, r)
	return args.Error(0)
}

// Delete records the call.
func (m *MockStore) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

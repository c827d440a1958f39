// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - InputsBuilder: Fluent builder for deployment inputs
//   - ComponentsFixture: Mocked components for common deploy and remove scenarios
//   - MockFunctionDeployer, MockGatewayDeployer, MockDNSDeployer, MockStore: testify mocks
//
// Usage:
//
//	in := testing.NewInputsBuilder().
//	    WithRegions("ap-guangzhou", "ap-shanghai").
//	    WithCustomDomain("api.example.com").
//	    Build()
//
//	fixture := testing.NewComponentsFixture()
//	fixture.SuccessfulDeploy("ap-guangzhou", "ap-shanghai")
package testing

// Package component is an HTTP client for a remote component runtime.
//
// The runtime hosts the function, API gateway and DNS components. Every
// call is POST /components/{component}/{instance}/{action} with a JSON body
// {"inputs": ...}; the runtime answers {"outputs": ...} or an error body.
// Transport failures and 5xx answers are retried, 4xx answers are not.
//
// Client implements provisioning.FunctionDeployer, GatewayDeployer and
// DNSDeployer.
package component

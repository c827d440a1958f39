// Package provisioning provides shared types, interfaces, and orchestration
// for deploying a serverless function with its API gateway and DNS records.
//
// # Subpackages
//
//   - deploy/: function, gateway and DNS deployment
//   - destroy/: removal of everything a deployment created
//
// # Core Types
//
// Context carries the prepared configuration, the remote components, the
// prior deployment record and the observer. Phase defines a provisioning
// step with Name() and Provision() methods. Outputs accumulates what each
// phase deployed and renders the outputs document.
package provisioning

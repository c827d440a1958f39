// Package naming provides consistent names for deployed resources.
//
// Generated function names follow {framework}_component_{6char}; the
// random suffix keeps redeploys of unnamed functions from colliding with
// other deployments. DNS placeholders follow temp_value_about_{region} and
// are swapped for gateway subdomains once the gateway is deployed.
package naming

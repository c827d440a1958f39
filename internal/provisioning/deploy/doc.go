// Package deploy deploys the function, its API gateway and the DNS records
// of its custom domains.
//
// The phases run in order: function, gateway (skipped when the gateway is
// disabled), dns. DNS records carry region placeholders until the gateway
// phase reports the subdomain of every region.
package deploy

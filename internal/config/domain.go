package config

import (
	"context"
	"strings"

	"github.com/asaskevich/govalidator"
	"golang.org/x/net/publicsuffix"
)

// LocalDomainResolver splits custom domains offline using the public suffix
// list. It does not verify ownership.
type LocalDomainResolver struct{}

// ResolveDomain implements DomainResolver.
func (LocalDomainResolver) ResolveDomain(_ context.Context, domain string) (ResolvedDomain, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	if name == "" || !govalidator.IsDNSName(name) {
		return ResolvedDomain{}, invalid("customDomain", "%q is not a valid domain name", domain)
	}

	zone, err := publicsuffix.EffectiveTLDPlusOne(name)
	if err != nil {
		return ResolvedDomain{}, invalid("customDomain", "%q has no registrable zone: %v", domain, err)
	}

	sub := strings.TrimSuffix(strings.TrimSuffix(name, zone), ".")
	if sub == "" {
		sub = ApexSubDomain
	}
	return ResolvedDomain{Domain: zone, SubDomain: sub}, nil
}

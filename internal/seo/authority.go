package seo

// AuthorityFigures are off-site authority signals for a host. Nil fields
// mean the figure is unknown to the provider.
type AuthorityFigures struct {
	DomainAge          *float64
	DomainAuthority    *float64
	TotalBacklinks     *int
	ReferringDomains   *int
	OrganicKeywords    *int
	DomainTrustSignals *float64
}

// AuthorityProvider supplies backlink and domain-authority data from an
// external source. The crawl itself cannot observe these, so aggregation
// depends on this capability rather than embedding figures.
type AuthorityProvider interface {
	Lookup(host string) AuthorityFigures
}

// StaticAuthority serves figures from a fixed per-host table. The zero
// value is the "unknown" default: every lookup returns all-nil figures.
type StaticAuthority struct {
	Figures map[string]AuthorityFigures
}

func (s StaticAuthority) Lookup(host string) AuthorityFigures {
	return s.Figures[host]
}

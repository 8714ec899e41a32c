// Package identity supplies randomized outbound identities (user agent,
// optionally a proxy) for each request cycle.
package identity

import (
	"fmt"

	"github.com/mazen160/go-random"
)

// Identity describes the outbound fingerprint used for one request cycle.
type Identity struct {
	UserAgent string
}

// userAgents is a pool of realistic desktop user agents. Consecutive picks
// are independent draws; duplicates between calls are fine.
var userAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.7444.60 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.7444.60 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.7390.122 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.7390.122 Safari/537.36 Edg/141.0.3537.57",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.6 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:144.0) Gecko/20100101 Firefox/144.0",
	"Mozilla/5.0 (X11; Linux x86_64; rv:144.0) Gecko/20100101 Firefox/144.0",
}

// Provider hands out a pseudo-randomly selected identity on every call.
type Provider struct {
	pool []string
}

// NewProvider creates a Provider backed by the built-in user agent pool.
// The randomness source is probed once here; a missing source is a
// construction error, never a runtime one.
func NewProvider() (*Provider, error) {
	if _, err := random.IntRange(0, len(userAgents)); err != nil {
		return nil, fmt.Errorf("randomness source unavailable: %w", err)
	}
	return &Provider{pool: userAgents}, nil
}

// Next returns a freshly selected identity.
func (p *Provider) Next() Identity {
	i, err := random.IntRange(0, len(p.pool))
	if err != nil {
		// Source was verified at construction; if it degrades mid-run,
		// fall back to a fixed entry rather than failing the cycle.
		i = 0
	}
	return Identity{UserAgent: p.pool[i]}
}

// Pool returns the user agents the provider selects from.
func (p *Provider) Pool() []string {
	return p.pool
}

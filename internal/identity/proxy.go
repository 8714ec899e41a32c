package identity

import (
	"sync"
	"time"
)

// failedCooldown is how long a proxy is skipped after being marked failed.
const failedCooldown = 5 * time.Minute

// ProxyPool rotates through a list of proxy addresses, skipping entries that
// failed recently.
type ProxyPool struct {
	proxies []string
	index   int
	mu      sync.Mutex
	failed  map[string]time.Time
}

// NewProxyPool creates a pool from the given proxy addresses. An empty list
// is valid; GetNext then always returns "".
func NewProxyPool(proxies []string) *ProxyPool {
	return &ProxyPool{
		proxies: proxies,
		failed:  make(map[string]time.Time),
	}
}

// GetNext returns the next healthy proxy, or "" when the pool is empty.
// If every proxy is in cooldown the current one is returned anyway.
func (p *ProxyPool) GetNext() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	start := p.index
	for {
		proxy := p.proxies[p.index]
		p.index = (p.index + 1) % len(p.proxies)

		if failTime, ok := p.failed[proxy]; ok {
			if time.Since(failTime) < failedCooldown {
				if p.index == start {
					// Cycled through everything; all failed.
					return proxy
				}
				continue
			}
			delete(p.failed, proxy)
		}

		return proxy
	}
}

// MarkFailed puts a proxy into cooldown so it is skipped for a while.
func (p *ProxyPool) MarkFailed(proxy string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed[proxy] = time.Now()
}

// MarkHealthy clears the failure status of a proxy.
func (p *ProxyPool) MarkHealthy(proxy string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.failed, proxy)
}

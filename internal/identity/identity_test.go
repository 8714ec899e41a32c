package identity

import (
	"testing"
	"time"
)

func TestProviderNext_ReturnsPoolEntry(t *testing.T) {
	p, err := NewProvider()
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}

	pool := make(map[string]bool, len(p.Pool()))
	for _, ua := range p.Pool() {
		pool[ua] = true
	}

	for i := 0; i < 20; i++ {
		id := p.Next()
		if id.UserAgent == "" {
			t.Fatal("Next returned empty user agent")
		}
		if !pool[id.UserAgent] {
			t.Fatalf("Next returned user agent outside pool: %q", id.UserAgent)
		}
	}
}

func TestProxyPool_Empty(t *testing.T) {
	p := NewProxyPool(nil)
	if got := p.GetNext(); got != "" {
		t.Errorf("Expected empty string from empty pool, got %q", got)
	}
}

func TestProxyPool_Rotation(t *testing.T) {
	p := NewProxyPool([]string{"http://a:8080", "http://b:8080"})

	first := p.GetNext()
	second := p.GetNext()
	third := p.GetNext()

	if first == second {
		t.Errorf("Expected rotation, got %q twice", first)
	}
	if third != first {
		t.Errorf("Expected wrap-around to %q, got %q", first, third)
	}
}

func TestProxyPool_MarkFailedSkips(t *testing.T) {
	p := NewProxyPool([]string{"http://a:8080", "http://b:8080"})

	p.MarkFailed("http://a:8080")

	for i := 0; i < 4; i++ {
		if got := p.GetNext(); got == "http://a:8080" {
			t.Fatal("Failed proxy was returned while in cooldown")
		}
	}

	p.MarkHealthy("http://a:8080")
	// Force the failure entry to look expired as well
	p.mu.Lock()
	p.failed["http://b:8080"] = time.Now().Add(-10 * time.Minute)
	p.mu.Unlock()

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		seen[p.GetNext()] = true
	}
	if !seen["http://a:8080"] {
		t.Error("Recovered proxy was never returned")
	}
}

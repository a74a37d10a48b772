package server

import (
	"testing"

	"github.com/blackbirdsmud/blackbirds/internal/config"
)

func TestConnLimiterPerIP(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 2, MaxTotal: 10})

	if !limiter.TryAcquire("1.2.3.4") {
		t.Fatal("first connection should be allowed")
	}
	if !limiter.TryAcquire("1.2.3.4") {
		t.Fatal("second connection should be allowed")
	}
	if limiter.TryAcquire("1.2.3.4") {
		t.Error("third connection from same IP should be rejected")
	}
	if !limiter.TryAcquire("5.6.7.8") {
		t.Error("connection from different IP should be allowed")
	}
}

func TestConnLimiterTotal(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 10, MaxTotal: 2})

	if !limiter.TryAcquire("1.1.1.1") {
		t.Fatal("first connection should be allowed")
	}
	if !limiter.TryAcquire("2.2.2.2") {
		t.Fatal("second connection should be allowed")
	}
	if limiter.TryAcquire("3.3.3.3") {
		t.Error("connection past total limit should be rejected")
	}
}

func TestConnLimiterRelease(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 1, MaxTotal: 1})

	if !limiter.TryAcquire("1.2.3.4") {
		t.Fatal("first connection should be allowed")
	}
	if limiter.TryAcquire("1.2.3.4") {
		t.Fatal("second connection should be rejected")
	}

	limiter.Release("1.2.3.4")
	if !limiter.TryAcquire("1.2.3.4") {
		t.Error("connection after release should be allowed")
	}
}

func TestConnLimiterUnlimited(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 0, MaxTotal: 0})

	for i := 0; i < 50; i++ {
		if !limiter.TryAcquire("1.2.3.4") {
			t.Fatalf("connection %d rejected with limits disabled", i)
		}
	}
}

func TestConnLimiterStats(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{MaxPerIP: 5, MaxTotal: 10})

	limiter.TryAcquire("1.1.1.1")
	limiter.TryAcquire("1.1.1.1")
	limiter.TryAcquire("2.2.2.2")

	total, ips := limiter.Stats()
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if ips != 2 {
		t.Errorf("distinct IPs = %d, want 2", ips)
	}
	if limiter.IPCount("1.1.1.1") != 2 {
		t.Errorf("IPCount(1.1.1.1) = %d, want 2", limiter.IPCount("1.1.1.1"))
	}

	limiter.Release("1.1.1.1")
	limiter.Release("1.1.1.1")
	if limiter.IPCount("1.1.1.1") != 0 {
		t.Errorf("IPCount after release = %d, want 0", limiter.IPCount("1.1.1.1"))
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"192.168.1.5:51234", "192.168.1.5"},
		{"[::1]:8080", "::1"},
		{"not-an-addr", "not-an-addr"},
	}
	for _, tt := range tests {
		if got := extractIP(tt.addr); got != tt.want {
			t.Errorf("extractIP(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

package anubis

import (
	"testing"
	"time"

	"github.com/riskibarqy/cricket-predictions/internal/domain/user"
)

func TestPrincipalCache_SetGet(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(time.Minute, 10)
	cache.Set("k1", user.Principal{UserID: "u-1"})

	principal, ok := cache.Get("k1")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if principal.UserID != "u-1" {
		t.Fatalf("unexpected user id: %s", principal.UserID)
	}
}

func TestPrincipalCache_Expired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := newPrincipalCache(20*time.Second, 10)
	cache.now = func() time.Time { return now }
	cache.Set("k1", user.Principal{UserID: "u-1"})

	now = now.Add(21 * time.Second)
	if _, ok := cache.Get("k1"); ok {
		t.Fatalf("expected cache miss after expiry")
	}
}

func TestPrincipalCache_EvictsWhenFull(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(time.Minute, 2)
	cache.Set("a", user.Principal{UserID: "a"})
	cache.Set("b", user.Principal{UserID: "b"})
	cache.Set("c", user.Principal{UserID: "c"})

	if len(cache.entries) != 2 {
		t.Fatalf("expected cache to stay bounded, got %d entries", len(cache.entries))
	}
	if _, ok := cache.Get("c"); !ok {
		t.Fatalf("expected newest entry to be kept")
	}
}

func TestPrincipalCache_NegativeTTLDisables(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(-1, 10)
	cache.Set("k1", user.Principal{UserID: "u-1"})
	if _, ok := cache.Get("k1"); ok {
		t.Fatalf("expected disabled cache to miss")
	}
}

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/cricket-predictions/internal/domain/seriescache"
)

func newTestRepository(t *testing.T) (*SeriesCacheRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSeriesCacheRepository(client), server
}

func TestSeriesCacheRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _ := newTestRepository(t)

	if _, ok, err := repo.Get(ctx, "s-1"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	updated := time.Date(2026, 3, 1, 14, 30, 0, 123, time.UTC)
	if err := repo.Upsert(ctx, seriescache.Entry{SeriesID: "s-1", Name: "T20 Series", LastUpdated: updated, Payload: []byte(`{"status":"success"}`)}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, ok, err := repo.Get(ctx, "s-1")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.Name != "T20 Series" || string(got.Payload) != `{"status":"success"}` || !got.LastUpdated.Equal(updated) {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestSeriesCacheRepository_UpsertMergesFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, server := newTestRepository(t)

	server.HSet(seriesCacheKey("s-1"), "owner", "ops")
	if err := repo.Upsert(ctx, seriescache.Entry{SeriesID: "s-1", Name: "n", LastUpdated: time.Now(), Payload: []byte("{}")}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if got := server.HGet(seriesCacheKey("s-1"), "owner"); got != "ops" {
		t.Fatalf("expected unrelated field to survive upsert, got %q", got)
	}
}

func TestSeriesCacheRepository_RejectsBadTimestamp(t *testing.T) {
	t.Parallel()

	repo, server := newTestRepository(t)
	server.HSet(seriesCacheKey("s-1"), fieldPayload, "{}", fieldLastUpdated, "yesterday")

	if _, _, err := repo.Get(context.Background(), "s-1"); err == nil {
		t.Fatalf("expected error for unparsable timestamp")
	}
}

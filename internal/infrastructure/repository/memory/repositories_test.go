package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/cricket-predictions/internal/domain/prediction"
	"github.com/riskibarqy/cricket-predictions/internal/domain/profile"
	"github.com/riskibarqy/cricket-predictions/internal/domain/seriescache"
)

func TestSeriesCacheRepository_UpsertReplacesEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSeriesCacheRepository()

	if _, ok, _ := repo.Get(ctx, "s-1"); ok {
		t.Fatalf("expected empty repository")
	}

	first := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_ = repo.Upsert(ctx, seriescache.Entry{SeriesID: "s-1", Name: "old", LastUpdated: first, Payload: []byte("a")})
	_ = repo.Upsert(ctx, seriescache.Entry{SeriesID: "s-1", Name: "new", LastUpdated: first.Add(time.Hour), Payload: []byte("b")})

	got, ok, err := repo.Get(ctx, "s-1")
	if err != nil || !ok {
		t.Fatalf("expected entry, got ok=%v err=%v", ok, err)
	}
	if got.Name != "new" || string(got.Payload) != "b" || !got.LastUpdated.Equal(first.Add(time.Hour)) {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestPredictionRepository_UpsertKeepsIdentity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPredictionRepository()
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_ = repo.Upsert(ctx, prediction.Prediction{ID: "p1", UserID: "u1", MatchID: "m1", PredictedWinner: "India", PredictedAt: at})
	_ = repo.Upsert(ctx, prediction.Prediction{ID: "p2", UserID: "u1", MatchID: "m1", PredictedWinner: "Australia", PredictedAt: at.Add(time.Minute)})
	_ = repo.Upsert(ctx, prediction.Prediction{ID: "p3", UserID: "u2", MatchID: "m1", PredictedWinner: "India", PredictedAt: at})

	items, _ := repo.ListByUser(ctx, "u1")
	if len(items) != 1 || items[0].ID != "p1" || items[0].PredictedWinner != "Australia" {
		t.Fatalf("expected single overwritten prediction keeping id, got %+v", items)
	}

	users, _ := repo.ListUserIDs(ctx)
	if len(users) != 2 || users[0] != "u1" || users[1] != "u2" {
		t.Fatalf("unexpected users: %v", users)
	}
}

func TestProfileRepository_ListTopOrdersAndLimits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewProfileRepository()
	for _, p := range []profile.Profile{
		{UserID: "a", DisplayName: "A"},
		{UserID: "b", DisplayName: "B"},
		{UserID: "c", DisplayName: "C"},
	} {
		_ = repo.Upsert(ctx, p)
	}
	_ = repo.UpdateStats(ctx, "b", 6, 75)
	_ = repo.UpdateStats(ctx, "c", 6, 80)

	top, _ := repo.ListTop(ctx, 2)
	if len(top) != 2 || top[0].UserID != "c" || top[1].UserID != "b" {
		t.Fatalf("unexpected leaderboard: %+v", top)
	}

	_ = repo.Upsert(ctx, profile.Profile{UserID: "c", DisplayName: "Cee"})
	got, _, _ := repo.GetByUserID(ctx, "c")
	if got.TotalPoints != 6 || got.DisplayName != "Cee" {
		t.Fatalf("expected upsert to keep totals, got %+v", got)
	}
}

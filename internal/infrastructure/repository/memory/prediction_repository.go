package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/cricket-predictions/internal/domain/prediction"
)

type PredictionRepository struct {
	mu    sync.RWMutex
	items map[string]prediction.Prediction
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{items: make(map[string]prediction.Prediction)}
}

func predictionKey(userID, matchID string) string {
	return userID + "|" + matchID
}

func (r *PredictionRepository) GetByUserAndMatch(_ context.Context, userID, matchID string) (prediction.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[predictionKey(userID, matchID)]
	return item, ok, nil
}

func (r *PredictionRepository) Upsert(_ context.Context, p prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := predictionKey(p.UserID, p.MatchID)
	if existing, ok := r.items[key]; ok && existing.ID != "" {
		p.ID = existing.ID
	}
	r.items[key] = p
	return nil
}

func (r *PredictionRepository) ListByUser(_ context.Context, userID string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PredictedAt.Equal(out[j].PredictedAt) {
			return out[i].PredictedAt.After(out[j].PredictedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PredictionRepository) ListUserIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, item := range r.items {
		if _, ok := seen[item.UserID]; ok {
			continue
		}
		seen[item.UserID] = struct{}{}
		out = append(out, item.UserID)
	}
	sort.Strings(out)
	return out, nil
}

package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/cricket-predictions/internal/domain/seriescache"
)

type SeriesCacheRepository struct {
	mu    sync.RWMutex
	items map[string]seriescache.Entry
}

func NewSeriesCacheRepository() *SeriesCacheRepository {
	return &SeriesCacheRepository{items: make(map[string]seriescache.Entry)}
}

func (r *SeriesCacheRepository) Get(_ context.Context, seriesID string) (seriescache.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.items[seriesID]
	if !ok {
		return seriescache.Entry{}, false, nil
	}
	entry.Payload = append([]byte(nil), entry.Payload...)
	return entry, true, nil
}

func (r *SeriesCacheRepository) Upsert(_ context.Context, entry seriescache.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.Payload = append([]byte(nil), entry.Payload...)
	r.items[entry.SeriesID] = entry
	return nil
}

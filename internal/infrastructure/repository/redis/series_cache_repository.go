package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/cricket-predictions/internal/domain/seriescache"
)

const seriesCacheKeyPrefix = "series_feed_cache:"

const (
	fieldSeriesID    = "series_id"
	fieldName        = "name"
	fieldPayload     = "payload"
	fieldLastUpdated = "last_updated_at"
)

// SeriesCacheRepository stores each entry as a hash. HSET merges fields, so
// fields written by other tools survive an upsert.
type SeriesCacheRepository struct {
	client goredis.UniversalClient
}

func NewSeriesCacheRepository(client goredis.UniversalClient) *SeriesCacheRepository {
	return &SeriesCacheRepository{client: client}
}

func seriesCacheKey(seriesID string) string {
	return seriesCacheKeyPrefix + strings.TrimSpace(seriesID)
}

func (r *SeriesCacheRepository) Get(ctx context.Context, seriesID string) (seriescache.Entry, bool, error) {
	fields, err := r.client.HGetAll(ctx, seriesCacheKey(seriesID)).Result()
	if err != nil && err != goredis.Nil {
		return seriescache.Entry{}, false, fmt.Errorf("get series cache: %w", err)
	}
	if len(fields) == 0 {
		return seriescache.Entry{}, false, nil
	}

	payload, ok := fields[fieldPayload]
	if !ok {
		return seriescache.Entry{}, false, nil
	}

	entry := seriescache.Entry{
		SeriesID: strings.TrimSpace(fields[fieldSeriesID]),
		Name:     fields[fieldName],
		Payload:  []byte(payload),
	}
	if entry.SeriesID == "" {
		entry.SeriesID = strings.TrimSpace(seriesID)
	}
	if raw := strings.TrimSpace(fields[fieldLastUpdated]); raw != "" {
		lastUpdated, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return seriescache.Entry{}, false, fmt.Errorf("parse series cache timestamp %q: %w", raw, err)
		}
		entry.LastUpdated = lastUpdated.UTC()
	}
	return entry, true, nil
}

func (r *SeriesCacheRepository) Upsert(ctx context.Context, entry seriescache.Entry) error {
	err := r.client.HSet(ctx, seriesCacheKey(entry.SeriesID),
		fieldSeriesID, strings.TrimSpace(entry.SeriesID),
		fieldName, entry.Name,
		fieldPayload, string(entry.Payload),
		fieldLastUpdated, entry.LastUpdated.UTC().Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return fmt.Errorf("upsert series cache: %w", err)
	}
	return nil
}

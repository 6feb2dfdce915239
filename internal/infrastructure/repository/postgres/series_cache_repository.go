package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-predictions/internal/domain/seriescache"
	qb "github.com/riskibarqy/cricket-predictions/internal/platform/querybuilder"
)

type SeriesCacheRepository struct {
	db *sqlx.DB
}

func NewSeriesCacheRepository(db *sqlx.DB) *SeriesCacheRepository {
	return &SeriesCacheRepository{db: db}
}

func (r *SeriesCacheRepository) Get(ctx context.Context, seriesID string) (seriescache.Entry, bool, error) {
	query, args, err := qb.Select("series_id", "name", "payload", "last_updated_at", "created_at").
		From("series_feed_cache").
		Where(qb.Eq("series_id", strings.TrimSpace(seriesID))).
		Limit(1).
		ToSQL()
	if err != nil {
		return seriescache.Entry{}, false, fmt.Errorf("build get series cache query: %w", err)
	}

	var row seriesCacheTableModel
	err = withStatementRetry(ctx, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &row, query, args...)
	})
	if err != nil {
		if isNotFound(err) {
			return seriescache.Entry{}, false, nil
		}
		return seriescache.Entry{}, false, fmt.Errorf("get series cache: %w", err)
	}

	return seriescache.Entry{
		SeriesID:    row.SeriesID,
		Name:        row.Name,
		LastUpdated: row.LastUpdatedAt.UTC(),
		Payload:     row.Payload,
	}, true, nil
}

// Upsert replaces name, payload and timestamp. created_at is kept from the first write.
func (r *SeriesCacheRepository) Upsert(ctx context.Context, entry seriescache.Entry) error {
	insertModel := seriesCacheInsertModel{
		SeriesID:      strings.TrimSpace(entry.SeriesID),
		Name:          strings.TrimSpace(entry.Name),
		Payload:       string(entry.Payload),
		LastUpdatedAt: entry.LastUpdated.UTC(),
	}

	query, args, err := qb.InsertModel("series_feed_cache", insertModel, `ON CONFLICT (series_id)
DO UPDATE SET
    name = EXCLUDED.name,
    payload = EXCLUDED.payload,
    last_updated_at = EXCLUDED.last_updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert series cache query: %w", err)
	}

	err = withStatementRetry(ctx, func(ctx context.Context) error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("upsert series cache: %w", err)
	}
	return nil
}

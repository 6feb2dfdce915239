package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-predictions/internal/domain/prediction"
	qb "github.com/riskibarqy/cricket-predictions/internal/platform/querybuilder"
)

var predictionColumns = []string{
	"id", "user_id", "match_id", "match_name", "predicted_winner", "predicted_at", "point_value", "ai_bonus",
}

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) GetByUserAndMatch(ctx context.Context, userID, matchID string) (prediction.Prediction, bool, error) {
	query, args, err := qb.Select(predictionColumns...).
		From("predictions").
		Where(
			qb.Eq("user_id", strings.TrimSpace(userID)),
			qb.Eq("match_id", strings.TrimSpace(matchID)),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("build get prediction query: %w", err)
	}

	var row predictionTableModel
	err = withStatementRetry(ctx, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &row, query, args...)
	})
	if err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("get prediction: %w", err)
	}
	return predictionFromRow(row), true, nil
}

// Upsert keys on (user_id, match_id). The stored id survives a re-submission.
func (r *PredictionRepository) Upsert(ctx context.Context, p prediction.Prediction) error {
	insertModel := predictionInsertModel{
		ID:              strings.TrimSpace(p.ID),
		UserID:          strings.TrimSpace(p.UserID),
		MatchID:         strings.TrimSpace(p.MatchID),
		MatchName:       strings.TrimSpace(p.MatchName),
		PredictedWinner: strings.TrimSpace(p.PredictedWinner),
		PredictedAt:     p.PredictedAt.UTC(),
		PointValue:      p.PointValue,
		AIBonus:         p.AIBonus,
	}

	query, args, err := qb.InsertModel("predictions", insertModel, `ON CONFLICT (user_id, match_id)
DO UPDATE SET
    match_name = EXCLUDED.match_name,
    predicted_winner = EXCLUDED.predicted_winner,
    predicted_at = EXCLUDED.predicted_at,
    point_value = EXCLUDED.point_value,
    ai_bonus = EXCLUDED.ai_bonus`)
	if err != nil {
		return fmt.Errorf("build upsert prediction query: %w", err)
	}

	err = withStatementRetry(ctx, func(ctx context.Context) error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("upsert prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select(predictionColumns...).
		From("predictions").
		Where(qb.Eq("user_id", strings.TrimSpace(userID))).
		OrderBy("predicted_at DESC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions query: %w", err)
	}

	var rows []predictionTableModel
	err = withStatementRetry(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		return r.db.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionFromRow(row))
	}
	return out, nil
}

func (r *PredictionRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT user_id FROM predictions ORDER BY user_id`

	var userIDs []string
	err := withStatementRetry(ctx, func(ctx context.Context) error {
		userIDs = userIDs[:0]
		return r.db.SelectContext(ctx, &userIDs, query)
	})
	if err != nil {
		return nil, fmt.Errorf("list prediction users: %w", err)
	}
	return userIDs, nil
}

func predictionFromRow(row predictionTableModel) prediction.Prediction {
	return prediction.Prediction{
		ID:              row.ID,
		UserID:          row.UserID,
		MatchID:         row.MatchID,
		MatchName:       row.MatchName,
		PredictedWinner: row.PredictedWinner,
		PredictedAt:     row.PredictedAt.UTC(),
		PointValue:      row.PointValue,
		AIBonus:         row.AIBonus,
	}
}

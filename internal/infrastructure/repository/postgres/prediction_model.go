package postgres

import "time"

type predictionTableModel struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	MatchID         string    `db:"match_id"`
	MatchName       string    `db:"match_name"`
	PredictedWinner string    `db:"predicted_winner"`
	PredictedAt     time.Time `db:"predicted_at"`
	PointValue      int       `db:"point_value"`
	AIBonus         bool      `db:"ai_bonus"`
}

type predictionInsertModel struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	MatchID         string    `db:"match_id"`
	MatchName       string    `db:"match_name"`
	PredictedWinner string    `db:"predicted_winner"`
	PredictedAt     time.Time `db:"predicted_at"`
	PointValue      int       `db:"point_value"`
	AIBonus         bool      `db:"ai_bonus"`
}

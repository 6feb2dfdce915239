package prediction

import "context"

type Repository interface {
	GetByUserAndMatch(ctx context.Context, userID, matchID string) (Prediction, bool, error)
	// Upsert writes the prediction keyed on (UserID, MatchID), overwriting an earlier pick.
	Upsert(ctx context.Context, p Prediction) error
	ListByUser(ctx context.Context, userID string) ([]Prediction, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}

package profile

import "context"

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Profile, bool, error)
	// Upsert creates the profile or replaces its display fields. Stats are left to UpdateStats.
	Upsert(ctx context.Context, profile Profile) error
	UpdateStats(ctx context.Context, userID string, totalPoints, accuracy int) error
	ListTop(ctx context.Context, limit int) ([]Profile, error)
}

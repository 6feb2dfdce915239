package seriescache

import "context"

type Repository interface {
	Get(ctx context.Context, seriesID string) (Entry, bool, error)
	// Upsert replaces name, timestamp and payload of the entry and leaves other stored fields untouched.
	Upsert(ctx context.Context, entry Entry) error
}

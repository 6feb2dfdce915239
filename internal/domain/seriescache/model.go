package seriescache

import "time"

// DefaultTTL is how long a stored series payload is served without asking the provider.
const DefaultTTL = 24 * time.Hour

// Entry is the persisted raw provider response for one series.
type Entry struct {
	SeriesID    string
	Name        string
	LastUpdated time.Time
	Payload     []byte
}

// IsFresh reports whether now - LastUpdated is strictly below ttl.
func (e Entry) IsFresh(now time.Time, ttl time.Duration) bool {
	if e.LastUpdated.IsZero() || ttl <= 0 {
		return false
	}
	return now.Sub(e.LastUpdated) < ttl
}

func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.LastUpdated)
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/cricket-predictions/internal/domain/profile"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]profile.Profile
	now   func() time.Time
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		items: make(map[string]profile.Profile),
		now:   time.Now,
	}
}

func (r *ProfileRepository) GetByUserID(_ context.Context, userID string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	return item, ok, nil
}

// Upsert keeps stored totals and creation time of an existing profile.
func (r *ProfileRepository) Upsert(_ context.Context, item profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	if existing, ok := r.items[item.UserID]; ok {
		existing.DisplayName = item.DisplayName
		if item.AvatarURL != "" {
			existing.AvatarURL = item.AvatarURL
		}
		existing.Guest = item.Guest
		existing.UpdatedAt = now
		r.items[item.UserID] = existing
		return nil
	}

	item.TotalPoints = 0
	item.Accuracy = 0
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	r.items[item.UserID] = item
	return nil
}

func (r *ProfileRepository) UpdateStats(_ context.Context, userID string, totalPoints, accuracy int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[userID]
	if !ok {
		return nil
	}
	item.TotalPoints = totalPoints
	item.Accuracy = accuracy
	item.UpdatedAt = r.now().UTC()
	r.items[userID] = item
	return nil
}

func (r *ProfileRepository) ListTop(_ context.Context, limit int) ([]profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profile.Profile, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return profile.Less(out[i], out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

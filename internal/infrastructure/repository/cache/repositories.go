package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/cricket-predictions/internal/domain/profile"
	basecache "github.com/riskibarqy/cricket-predictions/internal/platform/cache"
)

const (
	profileTopPrefix = "profile:top:"
	profileIDPrefix  = "profile:id:"
)

// ProfileRepository caches leaderboard and profile reads. Writes drop the affected keys.
type ProfileRepository struct {
	next  profile.Repository
	cache *basecache.Store
}

func NewProfileRepository(next profile.Repository, cache *basecache.Store) *ProfileRepository {
	return &ProfileRepository{next: next, cache: cache}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, profileIDPrefix+userID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return cachedProfileByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return profile.Profile{}, false, err
	}

	cached, _ := v.(cachedProfileByID)
	return cached.value, cached.exists, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, item profile.Profile) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.UserID)
	return nil
}

func (r *ProfileRepository) UpdateStats(ctx context.Context, userID string, totalPoints, accuracy int) error {
	if err := r.next.UpdateStats(ctx, userID, totalPoints, accuracy); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *ProfileRepository) ListTop(ctx context.Context, limit int) ([]profile.Profile, error) {
	v, err := r.cache.GetOrLoad(ctx, profileTopPrefix+strconv.Itoa(limit), func(ctx context.Context) (any, error) {
		items, err := r.next.ListTop(ctx, limit)
		if err != nil {
			return nil, err
		}
		return append([]profile.Profile(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]profile.Profile)
	return append([]profile.Profile(nil), items...), nil
}

func (r *ProfileRepository) invalidate(ctx context.Context, userID string) {
	r.cache.Delete(ctx, profileIDPrefix+userID)
	r.cache.DeletePrefix(ctx, profileTopPrefix)
}

type cachedProfileByID struct {
	value  profile.Profile
	exists bool
}

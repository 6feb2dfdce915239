package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/cricket-predictions/internal/domain/profile"
)

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 200
)

type LeaderboardEntry struct {
	Rank    int
	Profile profile.Profile
}

type LeaderboardService struct {
	profileRepo profile.Repository
}

func NewLeaderboardService(profileRepo profile.Repository) *LeaderboardService {
	return &LeaderboardService{profileRepo: profileRepo}
}

// List returns the top profiles ranked from 1. A non-positive limit uses the default.
func (s *LeaderboardService) List(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.List")
	defer span.End()

	limit = normalizeLeaderboardLimit(limit)
	items, err := s.profileRepo.ListTop(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list top profiles: %w", err)
	}
	if len(items) > limit {
		items = items[:limit]
	}

	out := make([]LeaderboardEntry, 0, len(items))
	for i, item := range items {
		out = append(out, LeaderboardEntry{Rank: i + 1, Profile: item})
	}
	return out, nil
}

func normalizeLeaderboardLimit(limit int) int {
	if limit <= 0 {
		return defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		return maxLeaderboardLimit
	}
	return limit
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/cricket-predictions/internal/domain/match"
	"github.com/riskibarqy/cricket-predictions/internal/domain/prediction"
	"github.com/riskibarqy/cricket-predictions/internal/domain/profile"
	"github.com/riskibarqy/cricket-predictions/internal/platform/logging"
)

type ProfileResyncInput struct {
	MaxWorkers int
	// DryRun computes stats without writing profiles.
	DryRun bool
}

type ProfileResyncResult struct {
	UserCount      int                 `json:"user_count"`
	WorkerCount    int                 `json:"worker_count"`
	SuccessCount   int                 `json:"success_count"`
	UnchangedCount int                 `json:"unchanged_count"`
	FailedCount    int                 `json:"failed_count"`
	DryRun         bool                `json:"dry_run"`
	Users          []ProfileResyncUser `json:"users"`
}

type ProfileResyncUser struct {
	UserID      string `json:"user_id"`
	Status      string `json:"status"`
	TotalPoints int    `json:"total_points"`
	Accuracy    int    `json:"accuracy"`
	DurationMs  int64  `json:"duration_ms"`
	Message     string `json:"message,omitempty"`
}

const (
	profileResyncStatusSuccess   = "success"
	profileResyncStatusUnchanged = "unchanged"
	profileResyncStatusFailed    = "failed"

	defaultProfileResyncWorkers = 4
)

type ProfileResyncConfig struct {
	MaxWorkers     int
	NoWinnerPolicy prediction.NoWinnerPolicy
}

// ProfileResyncService recomputes every user's stored totals from their predictions.
// It only runs when triggered.
type ProfileResyncService struct {
	feed           matchFeedReader
	predictionRepo prediction.Repository
	profileRepo    profile.Repository
	cfg            ProfileResyncConfig
	logger         *logging.Logger
	now            func() time.Time
}

func NewProfileResyncService(
	feed matchFeedReader,
	predictionRepo prediction.Repository,
	profileRepo profile.Repository,
	cfg ProfileResyncConfig,
	logger *logging.Logger,
) *ProfileResyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = defaultProfileResyncWorkers
	}
	if cfg.NoWinnerPolicy == "" {
		cfg.NoWinnerPolicy = prediction.NoWinnerLost
	}

	return &ProfileResyncService{
		feed:           feed,
		predictionRepo: predictionRepo,
		profileRepo:    profileRepo,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *ProfileResyncService) Resync(ctx context.Context, input ProfileResyncInput) (ProfileResyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileResyncService.Resync")
	defer span.End()

	// Stats computed without match data would zero every profile.
	snapshot, err := s.feed.ListMatches(ctx)
	if err != nil {
		return ProfileResyncResult{}, fmt.Errorf("load matches for resync: %w", err)
	}

	userIDs, err := s.predictionRepo.ListUserIDs(ctx)
	if err != nil {
		return ProfileResyncResult{}, fmt.Errorf("list prediction users: %w", err)
	}

	workerCount := s.normalizeWorkerCount(input.MaxWorkers, len(userIDs))
	result := ProfileResyncResult{
		UserCount:   len(userIDs),
		WorkerCount: workerCount,
		DryRun:      input.DryRun,
		Users:       make([]ProfileResyncUser, 0, len(userIDs)),
	}
	if len(userIDs) == 0 {
		return result, nil
	}

	results := make(chan ProfileResyncUser, len(userIDs))

	var successCount atomic.Int32
	var unchangedCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ProfileResyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, userID := range userIDs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.resyncUser(ctx, userID, snapshot.Matches, input.DryRun)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case profileResyncStatusSuccess:
				successCount.Add(1)
			case profileResyncStatusUnchanged:
				unchangedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return ProfileResyncResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Users = append(result.Users, row)
	}
	sort.SliceStable(result.Users, func(i, j int) bool {
		return result.Users[i].UserID < result.Users[j].UserID
	})

	result.SuccessCount = int(successCount.Load())
	result.UnchangedCount = int(unchangedCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "profile resync finished",
		"users", result.UserCount,
		"success", result.SuccessCount,
		"unchanged", result.UnchangedCount,
		"failed", result.FailedCount,
		"dry_run", input.DryRun,
	)
	return result, nil
}

func (s *ProfileResyncService) resyncUser(ctx context.Context, userID string, matches []match.Match, dryRun bool) ProfileResyncUser {
	row := ProfileResyncUser{UserID: userID}

	items, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		row.Status = profileResyncStatusFailed
		row.Message = fmt.Sprintf("list predictions: %v", err)
		return row
	}
	stats := prediction.ComputeStats(prediction.Score(items, matches, s.cfg.NoWinnerPolicy))
	row.TotalPoints = stats.TotalPoints
	row.Accuracy = stats.Accuracy

	current, exists, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		row.Status = profileResyncStatusFailed
		row.Message = fmt.Sprintf("get profile: %v", err)
		return row
	}
	if exists && !current.StatsDiffer(stats) {
		row.Status = profileResyncStatusUnchanged
		return row
	}
	if dryRun {
		row.Status = profileResyncStatusSuccess
		row.Message = "dry run"
		return row
	}

	if !exists {
		now := s.now().UTC()
		if err := s.profileRepo.Upsert(ctx, profile.Profile{UserID: userID, DisplayName: userID, CreatedAt: now, UpdatedAt: now}); err != nil {
			row.Status = profileResyncStatusFailed
			row.Message = fmt.Sprintf("create profile: %v", err)
			return row
		}
	}
	if err := s.profileRepo.UpdateStats(ctx, userID, stats.TotalPoints, stats.Accuracy); err != nil {
		row.Status = profileResyncStatusFailed
		row.Message = fmt.Sprintf("update profile stats: %v", err)
		return row
	}

	row.Status = profileResyncStatusSuccess
	return row
}

func (s *ProfileResyncService) normalizeWorkerCount(value, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > s.cfg.MaxWorkers {
		value = s.cfg.MaxWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/cricket-predictions/internal/domain/match"
	"github.com/riskibarqy/cricket-predictions/internal/domain/prediction"
	"github.com/riskibarqy/cricket-predictions/internal/domain/profile"
	"github.com/riskibarqy/cricket-predictions/internal/domain/user"
	"github.com/riskibarqy/cricket-predictions/internal/platform/id"
	"github.com/riskibarqy/cricket-predictions/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

type matchFeedReader interface {
	ListMatches(ctx context.Context) (match.SeriesSnapshot, error)
	GetMatch(ctx context.Context, matchID string) (match.Match, error)
}

type PredictionConfig struct {
	PointValue     int
	NoWinnerPolicy prediction.NoWinnerPolicy
}

type SubmitPredictionInput struct {
	Principal       user.Principal
	MatchID         string `validate:"required"`
	PredictedWinner string `validate:"required"`
	AIBonus         bool
}

type ScoredPredictions struct {
	Items   []prediction.Scored
	Stats   prediction.Stats
	Profile profile.Profile
	// FeedAvailable is false when match data could not be loaded; every item is then pending
	// and the stored profile totals are left as they were.
	FeedAvailable bool
}

type PredictionService struct {
	feed           matchFeedReader
	predictionRepo prediction.Repository
	profileRepo    profile.Repository
	idGen          id.Generator
	cfg            PredictionConfig
	validator      *validator.Validate
	logger         *logging.Logger
	now            func() time.Time
}

func NewPredictionService(
	feed matchFeedReader,
	predictionRepo prediction.Repository,
	profileRepo profile.Repository,
	idGen id.Generator,
	cfg PredictionConfig,
	logger *logging.Logger,
) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.PointValue <= 0 {
		cfg.PointValue = prediction.DefaultPointValue
	}
	if cfg.NoWinnerPolicy == "" {
		cfg.NoWinnerPolicy = prediction.NoWinnerLost
	}

	return &PredictionService{
		feed:           feed,
		predictionRepo: predictionRepo,
		profileRepo:    profileRepo,
		idGen:          idGen,
		cfg:            cfg,
		validator:      validator.New(),
		logger:         logger,
		now:            time.Now,
	}
}

func (s *PredictionService) Submit(ctx context.Context, input SubmitPredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Submit")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.PredictedWinner = strings.TrimSpace(input.PredictedWinner)
	if strings.TrimSpace(input.Principal.UserID) == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if err := s.validator.Struct(input); err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, err := s.feed.GetMatch(ctx, input.MatchID)
	if err != nil {
		return prediction.Prediction{}, err
	}

	now := s.now().UTC()
	if item.HasStartedAt(now) {
		return prediction.Prediction{}, fmt.Errorf("%w: match=%s: %w", ErrPredictionLocked, item.ID, prediction.ErrLocked)
	}
	team, ok := item.HasTeam(input.PredictedWinner)
	if !ok {
		return prediction.Prediction{}, fmt.Errorf("%w: team=%q match=%s: %w", ErrInvalidInput, input.PredictedWinner, item.ID, prediction.ErrUnknownTeam)
	}

	if _, err := s.EnsureProfile(ctx, input.Principal); err != nil {
		return prediction.Prediction{}, err
	}

	existing, exists, err := s.predictionRepo.GetByUserAndMatch(ctx, input.Principal.UserID, item.ID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get prediction: %w", err)
	}

	record := prediction.Prediction{
		ID:              existing.ID,
		UserID:          input.Principal.UserID,
		MatchID:         item.ID,
		MatchName:       item.Name,
		PredictedWinner: team,
		PredictedAt:     now,
		PointValue:      s.cfg.PointValue,
		AIBonus:         input.AIBonus,
	}
	if !exists || record.ID == "" {
		record.ID, err = s.idGen.NewID()
		if err != nil {
			return prediction.Prediction{}, fmt.Errorf("generate prediction id: %w", err)
		}
	}

	if err := s.predictionRepo.Upsert(ctx, record); err != nil {
		return prediction.Prediction{}, fmt.Errorf("upsert prediction: %w", err)
	}

	s.logger.InfoContext(ctx, "prediction submitted",
		"user_id", record.UserID,
		"match_id", record.MatchID,
		"predicted_winner", record.PredictedWinner,
		"replaced", exists,
	)
	return record, nil
}

// ListScored scores the caller's predictions against the current feed, newest first,
// and writes the resulting totals back to the profile when they changed.
func (s *PredictionService) ListScored(ctx context.Context, principal user.Principal) (ScoredPredictions, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListScored")
	defer span.End()

	userID := strings.TrimSpace(principal.UserID)
	if userID == "" {
		return ScoredPredictions{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	var (
		snapshot      match.SeriesSnapshot
		feedAvailable bool
		items         []prediction.Prediction
	)
	loaders := pool.New().WithContext(ctx).WithCancelOnError()
	loaders.Go(func(ctx context.Context) error {
		var err error
		snapshot, err = s.feed.ListMatches(ctx)
		switch {
		case err == nil:
			feedAvailable = true
			return nil
		case errors.Is(err, ErrDependencyUnavailable):
			s.logger.WarnContext(ctx, "score predictions without match data", "user_id", userID, "error", err)
			return nil
		default:
			return fmt.Errorf("list matches: %w", err)
		}
	})
	loaders.Go(func(ctx context.Context) error {
		var err error
		items, err = s.predictionRepo.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("list predictions: %w", err)
		}
		return nil
	})
	if err := loaders.Wait(); err != nil {
		return ScoredPredictions{}, err
	}

	scored := prediction.Score(items, snapshot.Matches, s.cfg.NoWinnerPolicy)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].PredictedAt.After(scored[j].PredictedAt)
	})
	stats := prediction.ComputeStats(scored)

	result := ScoredPredictions{
		Items:         scored,
		Stats:         stats,
		FeedAvailable: feedAvailable,
	}

	if !feedAvailable {
		current, err := s.EnsureProfile(ctx, principal)
		if err != nil {
			return ScoredPredictions{}, err
		}
		result.Profile = current
		return result, nil
	}

	synced, err := s.SyncProfile(ctx, principal, stats)
	if err != nil {
		return ScoredPredictions{}, err
	}
	result.Profile = synced
	return result, nil
}

// SyncProfile stores stats on the profile when they differ from what is stored.
func (s *PredictionService) SyncProfile(ctx context.Context, principal user.Principal, stats prediction.Stats) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.SyncProfile")
	defer span.End()

	current, err := s.EnsureProfile(ctx, principal)
	if err != nil {
		return profile.Profile{}, err
	}
	if !current.StatsDiffer(stats) {
		return current, nil
	}

	if err := s.profileRepo.UpdateStats(ctx, current.UserID, stats.TotalPoints, stats.Accuracy); err != nil {
		return profile.Profile{}, fmt.Errorf("update profile stats: %w", err)
	}

	current.TotalPoints = stats.TotalPoints
	current.Accuracy = stats.Accuracy
	current.UpdatedAt = s.now().UTC()
	return current, nil
}

// EnsureProfile returns the caller's profile, creating it with zero totals on first use.
func (s *PredictionService) EnsureProfile(ctx context.Context, principal user.Principal) (profile.Profile, error) {
	userID := strings.TrimSpace(principal.UserID)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	current, exists, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if exists {
		return current, nil
	}

	now := s.now().UTC()
	created := profile.Profile{
		UserID:      userID,
		DisplayName: principal.Name(),
		Guest:       principal.Guest,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.profileRepo.Upsert(ctx, created); err != nil {
		return profile.Profile{}, fmt.Errorf("create profile: %w", err)
	}

	s.logger.InfoContext(ctx, "profile created", "user_id", userID, "guest", principal.Guest)
	return created, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/riskibarqy/cricket-predictions/internal/domain/match"
	"github.com/riskibarqy/cricket-predictions/internal/domain/seriescache"
	"github.com/riskibarqy/cricket-predictions/internal/platform/logging"
)

// SeriesFeedProvider fetches series data from the upstream cricket API.
// FetchSeriesInfo returns the decoded snapshot together with the raw response body,
// which is what the cache persists. DecodeSeriesPayload turns such a body back into a snapshot.
type SeriesFeedProvider interface {
	FetchSeriesInfo(ctx context.Context, seriesID string) (match.SeriesSnapshot, []byte, error)
	DecodeSeriesPayload(payload []byte) (match.SeriesSnapshot, error)
}

const (
	feedResultFreshHit      = "fresh_hit"
	feedResultUpstream      = "upstream"
	feedResultStaleFallback = "stale_fallback"
	feedResultUnavailable   = "unavailable"

	defaultSeriesCacheWriteTimeout = 5 * time.Second
)

var seriesFeedLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cricket_series_feed_lookups_total",
	Help: "Series feed lookups by how they were served",
}, []string{"result"})

type MatchFeedConfig struct {
	SeriesID     string
	TTL          time.Duration
	WriteTimeout time.Duration
}

type MatchFeedService struct {
	cache    seriescache.Repository
	provider SeriesFeedProvider
	cfg      MatchFeedConfig
	logger   *logging.Logger

	now     func() time.Time
	goAsync func(func())
}

func NewMatchFeedService(
	cache seriescache.Repository,
	provider SeriesFeedProvider,
	cfg MatchFeedConfig,
	logger *logging.Logger,
) *MatchFeedService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = seriescache.DefaultTTL
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultSeriesCacheWriteTimeout
	}
	cfg.SeriesID = strings.TrimSpace(cfg.SeriesID)

	return &MatchFeedService{
		cache:    cache,
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		goAsync:  func(fn func()) { go fn() },
	}
}

// GetSeriesInfo serves a series from cache while fresh, refreshes it from upstream
// otherwise, and falls back to the stale entry when upstream fails. It returns false
// when no data is available at all. It never fails outright.
func (s *MatchFeedService) GetSeriesInfo(ctx context.Context, seriesID string) (match.SeriesSnapshot, bool) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchFeedService.GetSeriesInfo")
	defer span.End()

	seriesID = strings.TrimSpace(seriesID)
	if seriesID == "" {
		return match.SeriesSnapshot{}, false
	}

	entry, cached := s.readCache(ctx, seriesID)
	if cached && entry.IsFresh(s.now(), s.cfg.TTL) {
		snapshot, err := s.provider.DecodeSeriesPayload(entry.Payload)
		if err == nil {
			seriesFeedLookups.WithLabelValues(feedResultFreshHit).Inc()
			return snapshot, true
		}
		s.logger.WarnContext(ctx, "cached series payload is not decodable, refreshing", "series_id", seriesID, "error", err)
		cached = false
	}

	snapshot, raw, err := s.provider.FetchSeriesInfo(ctx, seriesID)
	if err == nil && !snapshot.Succeeded() {
		err = fmt.Errorf("%w: upstream status=%q", ErrDependencyUnavailable, snapshot.Status)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "fetch series from upstream failed", "series_id", seriesID, "has_cache", cached, "error", err)
		return s.fallback(ctx, seriesID, entry, cached)
	}

	seriesFeedLookups.WithLabelValues(feedResultUpstream).Inc()
	s.writeBack(ctx, seriesFeedEntry(seriesID, snapshot, raw, s.now()))
	return snapshot, true
}

// ListMatches returns the configured series' matches ordered by start time.
func (s *MatchFeedService) ListMatches(ctx context.Context) (match.SeriesSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchFeedService.ListMatches")
	defer span.End()

	if s.cfg.SeriesID == "" {
		return match.SeriesSnapshot{}, fmt.Errorf("%w: series id is not configured", ErrDependencyUnavailable)
	}

	snapshot, ok := s.GetSeriesInfo(ctx, s.cfg.SeriesID)
	if !ok {
		return match.SeriesSnapshot{}, fmt.Errorf("%w: series=%s has no data", ErrDependencyUnavailable, s.cfg.SeriesID)
	}
	snapshot.Matches = snapshot.SortedByStart()
	return snapshot, nil
}

func (s *MatchFeedService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchFeedService.GetMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	snapshot, err := s.ListMatches(ctx)
	if err != nil {
		return match.Match{}, err
	}
	item, ok := snapshot.FindMatch(matchID)
	if !ok {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

func (s *MatchFeedService) readCache(ctx context.Context, seriesID string) (seriescache.Entry, bool) {
	if s.cache == nil {
		return seriescache.Entry{}, false
	}

	entry, ok, err := s.cache.Get(ctx, seriesID)
	if err != nil {
		s.logger.WarnContext(ctx, "read series cache failed, treating as miss", "series_id", seriesID, "error", err)
		return seriescache.Entry{}, false
	}
	return entry, ok
}

func (s *MatchFeedService) fallback(ctx context.Context, seriesID string, entry seriescache.Entry, cached bool) (match.SeriesSnapshot, bool) {
	if cached {
		snapshot, err := s.provider.DecodeSeriesPayload(entry.Payload)
		if err == nil {
			seriesFeedLookups.WithLabelValues(feedResultStaleFallback).Inc()
			s.logger.InfoContext(ctx, "serving stale series data",
				"series_id", seriesID,
				"age", entry.Age(s.now()).String(),
			)
			return snapshot, true
		}
		s.logger.WarnContext(ctx, "stale series payload is not decodable", "series_id", seriesID, "error", err)
	}

	seriesFeedLookups.WithLabelValues(feedResultUnavailable).Inc()
	return match.SeriesSnapshot{}, false
}

// writeBack persists the refreshed entry without holding up the caller.
func (s *MatchFeedService) writeBack(ctx context.Context, entry seriescache.Entry) {
	if s.cache == nil {
		return
	}

	writeCtx := context.WithoutCancel(ctx)
	s.goAsync(func() {
		ctx, cancel := context.WithTimeout(writeCtx, s.cfg.WriteTimeout)
		defer cancel()

		if err := s.cache.Upsert(ctx, entry); err != nil {
			s.logger.WarnContext(ctx, "write series cache failed", "series_id", entry.SeriesID, "error", err)
		}
	})
}

func seriesFeedEntry(seriesID string, snapshot match.SeriesSnapshot, raw []byte, now time.Time) seriescache.Entry {
	name := strings.TrimSpace(snapshot.Info.Name)
	if name == "" {
		name = seriesID
	}
	return seriescache.Entry{
		SeriesID:    seriesID,
		Name:        name,
		LastUpdated: now.UTC(),
		Payload:     raw,
	}
}

package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/cricket-predictions/external/cricapi"
	"github.com/riskibarqy/cricket-predictions/external/forecaster"
	"github.com/riskibarqy/cricket-predictions/internal/config"
	"github.com/riskibarqy/cricket-predictions/internal/domain/user"
	"github.com/riskibarqy/cricket-predictions/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/cricket-predictions/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/cricket-predictions/internal/platform/id"
	"github.com/riskibarqy/cricket-predictions/internal/platform/logging"
	"github.com/riskibarqy/cricket-predictions/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewHTTPServer wires storage, providers and services into the HTTP server.
// The returned cleanup closes storage connections and must run after shutdown.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	stores, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	feedProvider := cricapi.NewClient(cricapi.ClientConfig{
		HTTPClient:     tracedHTTPClient(cfg.CricAPITimeout),
		BaseURL:        cfg.CricAPIBaseURL,
		APIKey:         cfg.CricAPIKey,
		Timeout:        cfg.CricAPITimeout,
		MaxRetries:     cfg.CricAPIMaxRetries,
		MinInterval:    cfg.CricAPIMinInterval,
		Logger:         logger,
		CircuitBreaker: cfg.CricAPICircuit,
	})
	if cfg.CricAPIKey == "" {
		logger.Warn("CRICAPI_API_KEY is empty, upstream requests will be rejected")
	}

	matchFeedSvc := usecase.NewMatchFeedService(stores.seriesCache, feedProvider, usecase.MatchFeedConfig{
		SeriesID:     cfg.CricAPISeriesID,
		TTL:          cfg.SeriesCacheTTL,
		WriteTimeout: cfg.SeriesCacheWriteTimeout,
	}, logger)
	predictionSvc := usecase.NewPredictionService(
		matchFeedSvc,
		stores.predictions,
		stores.profiles,
		idgen.NewUUIDGenerator(),
		usecase.PredictionConfig{
			PointValue:     cfg.PredictionPointValue,
			NoWinnerPolicy: cfg.NoWinnerPolicy,
		},
		logger,
	)
	leaderboardSvc := usecase.NewLeaderboardService(stores.profiles)
	profileResyncSvc := usecase.NewProfileResyncService(
		matchFeedSvc,
		stores.predictions,
		stores.profiles,
		usecase.ProfileResyncConfig{
			MaxWorkers:     cfg.ProfileResyncMaxWorkers,
			NoWinnerPolicy: cfg.NoWinnerPolicy,
		},
		logger,
	)

	forecastSvc, err := newForecastService(cfg, matchFeedSvc, logger)
	if err != nil {
		stores.close()
		return nil, nil, err
	}

	var verifier httpapi.TokenVerifier
	if cfg.AnubisEnabled {
		verifier = anubis.NewClient(anubis.ClientConfig{
			HTTPClient:     tracedHTTPClient(cfg.AnubisTimeout),
			BaseURL:        cfg.AnubisBaseURL,
			IntrospectPath: cfg.AnubisIntrospectPath,
			AdminKey:       cfg.AnubisAdminKey,
			Timeout:        cfg.AnubisTimeout,
			CacheTTL:       cfg.AnubisCacheTTL,
			CircuitBreaker: cfg.AnubisCircuit,
			Logger:         logger,
		})
	} else {
		logger.Warn("token verification disabled, bearer tokens will be rejected")
	}

	handler := httpapi.NewHandler(matchFeedSvc, predictionSvc, leaderboardSvc, profileResyncSvc, forecastSvc, logger)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		Verifier:           verifier,
		Guest:              user.NewGuestAccount(cfg.GuestAccountID, cfg.GuestDisplayName),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		Logger:             logger,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("application wired",
		"storage_backend", cfg.StorageBackend,
		"series_cache_backend", cfg.SeriesCacheBackend,
		"series_id", cfg.CricAPISeriesID,
		"forecast_enabled", cfg.ForecastEnabled,
		"anubis_enabled", cfg.AnubisEnabled,
	)
	return server, stores.close, nil
}

func newForecastService(cfg config.Config, feed *usecase.MatchFeedService, logger *logging.Logger) (*usecase.ForecastService, error) {
	if !cfg.ForecastEnabled {
		return usecase.NewForecastService(feed, nil), nil
	}

	client, err := forecaster.NewClient(forecaster.ClientConfig{
		HTTPClient:     tracedHTTPClient(cfg.ForecastTimeout),
		BaseURL:        cfg.ForecastBaseURL,
		APIKey:         cfg.ForecastAPIKey,
		Timeout:        cfg.ForecastTimeout,
		Logger:         logger,
		CircuitBreaker: cfg.ForecastCircuit,
	})
	if err != nil {
		return nil, fmt.Errorf("build forecaster client: %w", err)
	}
	return usecase.NewForecastService(feed, client), nil
}

func tracedHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/cricket-predictions/internal/config"
	"github.com/riskibarqy/cricket-predictions/internal/domain/prediction"
	"github.com/riskibarqy/cricket-predictions/internal/domain/profile"
	"github.com/riskibarqy/cricket-predictions/internal/domain/seriescache"
	cacherepo "github.com/riskibarqy/cricket-predictions/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/cricket-predictions/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cricket-predictions/internal/infrastructure/repository/postgres"
	redisrepo "github.com/riskibarqy/cricket-predictions/internal/infrastructure/repository/redis"
	basecache "github.com/riskibarqy/cricket-predictions/internal/platform/cache"
	"github.com/riskibarqy/cricket-predictions/internal/platform/logging"
)

const storagePingTimeout = 5 * time.Second

type storage struct {
	seriesCache seriescache.Repository
	predictions prediction.Repository
	profiles    profile.Repository

	closers []func() error
	logger  *logging.Logger
}

func newStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (*storage, error) {
	s := &storage{logger: logger}

	var db *sqlx.DB
	if cfg.StorageBackend == config.BackendPostgres || cfg.SeriesCacheBackend == config.BackendPostgres {
		var err error
		db, err = openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, db.Close)
	}

	switch cfg.StorageBackend {
	case config.BackendPostgres:
		s.predictions = postgres.NewPredictionRepository(db)
		s.profiles = postgres.NewProfileRepository(db)
	default:
		s.predictions = memory.NewPredictionRepository()
		s.profiles = memory.NewProfileRepository()
	}
	if cfg.LeaderboardCacheTTL > 0 {
		s.profiles = cacherepo.NewProfileRepository(s.profiles, basecache.NewStore(cfg.LeaderboardCacheTTL))
	}

	switch cfg.SeriesCacheBackend {
	case config.BackendPostgres:
		s.seriesCache = postgres.NewSeriesCacheRepository(db)
	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, storagePingTimeout)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = client.Close()
			s.close()
			return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		s.closers = append(s.closers, client.Close)
		s.seriesCache = redisrepo.NewSeriesCacheRepository(client)
	default:
		s.seriesCache = memory.NewSeriesCacheRepository()
	}

	return s, nil
}

func (s *storage) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.logger.Warn("close storage connection failed", "error", err)
		}
	}
	s.closers = nil
}

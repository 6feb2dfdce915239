package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/cricket-predictions/internal/domain/prediction"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SeriesCacheTTL != 24*time.Hour {
		t.Fatalf("unexpected default series cache ttl: %s", cfg.SeriesCacheTTL)
	}
	if cfg.SeriesCacheWriteTimeout != 5*time.Second {
		t.Fatalf("unexpected default write timeout: %s", cfg.SeriesCacheWriteTimeout)
	}
	if cfg.StorageBackend != BackendPostgres || cfg.SeriesCacheBackend != BackendPostgres {
		t.Fatalf("unexpected default backends: storage=%s series=%s", cfg.StorageBackend, cfg.SeriesCacheBackend)
	}
	if cfg.PredictionPointValue != prediction.DefaultPointValue {
		t.Fatalf("unexpected default point value: %d", cfg.PredictionPointValue)
	}
	if cfg.NoWinnerPolicy != prediction.NoWinnerLost {
		t.Fatalf("unexpected default no-winner policy: %s", cfg.NoWinnerPolicy)
	}
	if cfg.GuestAccountID != "universal-guest" {
		t.Fatalf("unexpected default guest id: %q", cfg.GuestAccountID)
	}
	if !cfg.CricAPICircuit.Enabled || cfg.CricAPICircuit.FailureThreshold != 5 {
		t.Fatalf("unexpected default cricapi circuit: %+v", cfg.CricAPICircuit)
	}
	if cfg.ForecastEnabled {
		t.Fatalf("expected forecast disabled by default")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "cricket-predictions-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "cricket-predictions-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_BackendSelection(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("series cache follows storage backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "memory")
		t.Setenv("SERIES_CACHE_BACKEND", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SeriesCacheBackend != BackendMemory {
			t.Fatalf("expected series cache to follow storage backend, got %s", cfg.SeriesCacheBackend)
		}
	})

	t.Run("redis series cache", func(t *testing.T) {
		t.Setenv("SERIES_CACHE_BACKEND", " Redis ")
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("REDIS_DB", "2")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SeriesCacheBackend != BackendRedis || cfg.RedisAddr != "cache:6379" || cfg.RedisDB != 2 {
			t.Fatalf("unexpected redis config: %+v", cfg)
		}
	})

	t.Run("redis is not a storage backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "redis")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for STORAGE_BACKEND=redis")
		}
	})

	t.Run("unknown series backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "")
		t.Setenv("SERIES_CACHE_BACKEND", "dynamo")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown SERIES_CACHE_BACKEND")
		}
	})
}

func TestLoad_PredictionSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cases := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{name: "pending policy", env: map[string]string{"NO_WINNER_POLICY": "pending"}},
		{name: "bad policy", env: map[string]string{"NO_WINNER_POLICY": "void"}, wantErr: true},
		{name: "zero point value", env: map[string]string{"PREDICTION_POINT_VALUE": "0"}, wantErr: true},
		{name: "legacy point value", env: map[string]string{"PREDICTION_POINT_VALUE": "100"}},
		{name: "zero resync workers", env: map[string]string{"PROFILE_RESYNC_MAX_WORKERS": "0"}, wantErr: true},
		{name: "negative leaderboard ttl", env: map[string]string{"LEADERBOARD_CACHE_TTL": "-1s"}, wantErr: true},
		{name: "forecast without url", env: map[string]string{"FORECAST_ENABLED": "true", "FORECAST_BASE_URL": ""}, wantErr: true},
		{name: "bad circuit threshold", env: map[string]string{"CRICAPI_CIRCUIT_FAILURE_COUNT": "0"}, wantErr: true},
		{name: "bad write timeout", env: map[string]string{"SERIES_CACHE_WRITE_TIMEOUT": "soon"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			_, err := Load()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

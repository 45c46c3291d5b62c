package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
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
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_LogShipRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("LOG_SHIP_ENABLED", "true")
	t.Setenv("LOG_SHIP_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when LOG_SHIP_ENABLED=true without LOG_SHIP_ENDPOINT")
	}
}

func TestLoad_LogShipConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("LOG_SHIP_ENABLED", "true")
	t.Setenv("LOG_SHIP_ENDPOINT", "logs.example.net")
	t.Setenv("LOG_SHIP_TOKEN", "token-123")
	t.Setenv("LOG_SHIP_TIMEOUT", "4s")
	t.Setenv("LOG_SHIP_MIN_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.LogShipEnabled {
		t.Fatalf("expected LogShipEnabled=true")
	}
	if cfg.LogShipEndpoint != "logs.example.net" {
		t.Fatalf("unexpected LogShipEndpoint: %q", cfg.LogShipEndpoint)
	}
	if cfg.LogShipToken != "token-123" {
		t.Fatalf("unexpected LogShipToken")
	}
	if cfg.LogShipTimeout != 4*time.Second {
		t.Fatalf("unexpected LogShipTimeout: %s", cfg.LogShipTimeout)
	}
	if cfg.LogShipMinLevel.String() != "warn" {
		t.Fatalf("unexpected LogShipMinLevel: %s", cfg.LogShipMinLevel.String())
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_LOG_LEVEL", "loud")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_LOG_LEVEL")
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("AUTH_JWT_SECRET", "prod-secret")
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("prod requires jwt secret", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("AUTH_JWT_SECRET", "")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error when AUTH_JWT_SECRET is empty in prod")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
		if cfg.StoreBackend != StoreMemory {
			t.Fatalf("expected memory store by default, got %q", cfg.StoreBackend)
		}
		if cfg.AuthJWTAudience != "authenticated" {
			t.Fatalf("unexpected default jwt audience: %q", cfg.AuthJWTAudience)
		}
	})
}

func TestLoad_StoreBackendValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("postgres accepted", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", " Postgres ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StoreBackend != StorePostgres {
			t.Fatalf("unexpected store backend: %q", cfg.StoreBackend)
		}
	})

	t.Run("unknown rejected", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORE_BACKEND")
		}
	})
}

func TestLoad_QualificationConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("QUALIFICATION_DEFAULT_ADVANCE", "")
		t.Setenv("QUALIFICATION_TIE_BREAK", "")
		t.Setenv("RECOMPUTE_MAX_RETRIES", "")
		t.Setenv("RECOMPUTE_WORKERS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.QualificationDefaultAdvance != 2 {
			t.Fatalf("unexpected default advance: %d", cfg.QualificationDefaultAdvance)
		}
		if cfg.QualificationTieBreak != standing.TieBreakStats {
			t.Fatalf("unexpected default tie break: %q", cfg.QualificationTieBreak)
		}
		if cfg.RecomputeMaxRetries != 3 {
			t.Fatalf("unexpected default retries: %d", cfg.RecomputeMaxRetries)
		}
		if cfg.RecomputeWorkers != 4 {
			t.Fatalf("unexpected default workers: %d", cfg.RecomputeWorkers)
		}
	})

	t.Run("insertion tie break", func(t *testing.T) {
		t.Setenv("QUALIFICATION_TIE_BREAK", "INSERTION")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.QualificationTieBreak != standing.TieBreakInsertion {
			t.Fatalf("unexpected tie break: %q", cfg.QualificationTieBreak)
		}
	})

	t.Run("unknown tie break", func(t *testing.T) {
		t.Setenv("QUALIFICATION_TIE_BREAK", "coin-flip")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown QUALIFICATION_TIE_BREAK")
		}
	})

	t.Run("negative advance", func(t *testing.T) {
		t.Setenv("QUALIFICATION_DEFAULT_ADVANCE", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative QUALIFICATION_DEFAULT_ADVANCE")
		}
	})

	t.Run("zero workers", func(t *testing.T) {
		t.Setenv("RECOMPUTE_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for RECOMPUTE_WORKERS=0")
		}
	})
}

func TestLoad_StorageConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("STORAGE_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageEnabled {
			t.Fatalf("expected StorageEnabled=false by default")
		}
		if cfg.StoragePrivateBucket != "payment-screenshots" || cfg.StoragePublicBucket != "avatars" {
			t.Fatalf("unexpected default buckets: %q %q", cfg.StoragePrivateBucket, cfg.StoragePublicBucket)
		}
		if cfg.StorageSignedURLTTL != time.Hour {
			t.Fatalf("unexpected signed url ttl: %s", cfg.StorageSignedURLTTL)
		}
	})

	t.Run("enabled requires public base url", func(t *testing.T) {
		t.Setenv("STORAGE_ENABLED", "true")
		t.Setenv("STORAGE_PUBLIC_BASE_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when STORAGE_ENABLED=true without STORAGE_PUBLIC_BASE_URL")
		}
	})

	t.Run("enabled with required values", func(t *testing.T) {
		t.Setenv("STORAGE_ENABLED", "true")
		t.Setenv("STORAGE_ENDPOINT", "http://localhost:9000")
		t.Setenv("STORAGE_PUBLIC_BASE_URL", "http://localhost:9000/avatars")
		t.Setenv("STORAGE_CIRCUIT_FAILURE_COUNT", "3")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageEndpoint != "http://localhost:9000" {
			t.Fatalf("unexpected storage endpoint: %q", cfg.StorageEndpoint)
		}
		if cfg.StorageCircuitFailureCount != 3 {
			t.Fatalf("unexpected circuit failure count: %d", cfg.StorageCircuitFailureCount)
		}
	})

	t.Run("invalid circuit threshold", func(t *testing.T) {
		t.Setenv("STORAGE_CIRCUIT_FAILURE_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for STORAGE_CIRCUIT_FAILURE_COUNT=0")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
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
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "tournament-hub-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "tournament-hub-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

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
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

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

	t.Run("bootstrap seed opt-in", func(t *testing.T) {
		t.Setenv("DB_BOOTSTRAP_SEED", "true")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBBootstrapSeed {
			t.Fatalf("expected DBBootstrapSeed=true")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoadDotEnv(t *testing.T) {
	const key = "TOURNAMENT_HUB_DOTENV_PROBE"
	const kept = "TOURNAMENT_HUB_DOTENV_KEPT"
	t.Setenv(key, "placeholder")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
	t.Setenv(kept, "from-process")

	path := filepath.Join(t.TempDir(), ".env")
	content := key + "=from-file\n" + kept + "=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Fatalf("expected %s loaded from file, got %q", key, got)
	}
	if got := os.Getenv(kept); got != "from-process" {
		t.Fatalf("expected process env to win, got %q", got)
	}
}

package config

import (
	"reflect"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("BOT_TOKEN", "tok")
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	// Server timeouts / sizes (valid)
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")

	// Telegram / App
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DB_PATH", "db.sqlite")
	t.Setenv("ADMIN_IDS", " 111 , nope , 222 ")
	t.Setenv("INITIAL_WALLET", "60000")
	t.Setenv("WALLET_FLOOR", "500")

	// Relay
	t.Setenv("ORIGIN_TTL", "12h")
	t.Setenv("SWEEP_INTERVAL", "30m")
	t.Setenv("BROADCAST_RPS", "10")
	t.Setenv("BROADCAST_BURST", "3")

	// Rate limiting (use invalids for parse to fall back to defaults)
	t.Setenv("RATE_RPS", "x")      // -> default 30.0
	t.Setenv("RATE_BURST", "nope") // -> default 60

	// Dedup
	t.Setenv("UPDATE_DEDUP_TTL", "24h")

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	// OTEL
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Server
	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}

	// Logging
	if cfg.LogLevel != "warn" || !cfg.LogPretty {
		t.Fatalf("logging unexpected: %+v", cfg)
	}

	// Telegram / App
	if cfg.BotToken != "123:abc" || cfg.DBPath != "db.sqlite" {
		t.Fatalf("app fields unexpected: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Admins, []int64{111, 222}) {
		t.Fatalf("admins unexpected: %#v", cfg.Admins)
	}
	if cfg.InitialWallet != 60000 || cfg.WalletFloor != 500 {
		t.Fatalf("wallet fields unexpected: %+v", cfg)
	}

	// Relay
	if cfg.OriginTTL != 12*time.Hour || cfg.SweepInterval != 30*time.Minute ||
		cfg.BroadcastRPS != 10 || cfg.BroadcastBurst != 3 {
		t.Fatalf("relay fields unexpected: %+v", cfg)
	}

	// Rate limiting (parse fallback to defaults)
	if cfg.RateRPS != 30.0 || cfg.RateBurst != 60 {
		t.Fatalf("rate limiting unexpected: %+v", cfg)
	}

	// Dedup
	if cfg.UpdateDedupTTL != 24*time.Hour {
		t.Fatalf("dedup ttl unexpected: %v", cfg.UpdateDedupTTL)
	}

	// Web protection
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}

	// OTEL
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

// --- Load validations (each case triggers exactly one validation error) ---

func TestLoad_ValidationErrors(t *testing.T) {
	set := func(t *testing.T, k, v string) {
		t.Helper()
		t.Setenv(k, v)
	}
	valid := func(t *testing.T) {
		t.Helper()
		set(t, "BOT_TOKEN", "123:abc")
	}

	t.Run("missing BOT_TOKEN", func(t *testing.T) {
		if _, err := Load(); err == nil {
			t.Fatal("expected error for empty BOT_TOKEN")
		}
	})
	t.Run("invalid LOG_LEVEL", func(t *testing.T) {
		valid(t)
		set(t, "LOG_LEVEL", "verbose")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for invalid LOG_LEVEL")
		}
	})
	t.Run("non-positive ORIGIN_TTL", func(t *testing.T) {
		valid(t)
		set(t, "ORIGIN_TTL", "-1h")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for negative ORIGIN_TTL")
		}
	})
	t.Run("non-positive SWEEP_INTERVAL", func(t *testing.T) {
		valid(t)
		set(t, "SWEEP_INTERVAL", "-5m")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for negative SWEEP_INTERVAL")
		}
	})
	t.Run("non-positive BROADCAST_RPS", func(t *testing.T) {
		valid(t)
		set(t, "BROADCAST_RPS", "-1")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for negative BROADCAST_RPS")
		}
	})
	t.Run("negative INITIAL_WALLET", func(t *testing.T) {
		valid(t)
		set(t, "INITIAL_WALLET", "-1")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for negative INITIAL_WALLET")
		}
	})
	t.Run("sampler ratio out of range", func(t *testing.T) {
		valid(t)
		set(t, "OTEL_TRACES_SAMPLER_ARG", "1.5")
		if _, err := Load(); err == nil {
			t.Fatal("expected error for out-of-range sampler ratio")
		}
	})
}

func TestSplitIDs(t *testing.T) {
	if got := splitIDs(""); got != nil {
		t.Fatalf("splitIDs(\"\") = %v, want nil", got)
	}
	if got := splitIDs("1,x,2,, 3 "); !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Fatalf("splitIDs = %v", got)
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alligatorO15/fin-mentor/internal/models"
)

var envKeys = []string{
	"MENTOR_CONFIG", "PORT", "STORAGE", "DATABASE_URL", "SQLITE_PATH", "DEFAULT_CURRENCY", "DEFAULT_PERIOD",
	"RATIO_NEEDS", "RATIO_WANTS", "RATIO_SAVINGS", "EXPLAIN_PROVIDER", "MOCK_MODE", "EXPLAIN_RETRIES",
	"EXPLAIN_TIMEOUT_SECONDS", "HF_TOKEN", "ACCESS_TOKEN_EXPIRATION_MINUTES", "PASSPHRASE_HASH", "JWT_SECRET",
}

// clearEnv убирает переменные окружения на время теста
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		if old, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage != StorageSQLite {
		t.Errorf("Storage = %s, want sqlite", cfg.Storage)
	}
	if cfg.Ratios != (models.Ratios{Needs: 0.5, Wants: 0.3, Savings: 0.2}) {
		t.Errorf("Ratios = %+v, want 50/30/20", cfg.Ratios)
	}
	if cfg.Explain.MockMode {
		t.Error("MockMode = true, want false")
	}
	if cfg.AccessTokenExpiration != 24*time.Hour {
		t.Errorf("AccessTokenExpiration = %v, want 24h", cfg.AccessTokenExpiration)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "mentor.toml")
	data := `
currency = "EUR"
period = "weekly"

[ratios]
needs = 0.6
wants = 0.2
savings = 0.2

[explain]
provider = "ollama"
mock_mode = true
retries = 5
timeout_seconds = 7
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MENTOR_CONFIG", path)
	t.Setenv("EXPLAIN_RETRIES", "1")
	t.Setenv("DEFAULT_CURRENCY", "USD")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultCurrency != "USD" {
		t.Errorf("DefaultCurrency = %s, want USD (env wins)", cfg.DefaultCurrency)
	}
	if cfg.DefaultPeriod != models.PeriodWeekly {
		t.Errorf("DefaultPeriod = %s, want weekly", cfg.DefaultPeriod)
	}
	if cfg.Ratios.Needs != 0.6 {
		t.Errorf("Ratios.Needs = %v, want 0.6", cfg.Ratios.Needs)
	}
	if cfg.Explain.Provider != "ollama" || !cfg.Explain.MockMode {
		t.Errorf("Explain = %+v", cfg.Explain)
	}
	if cfg.Explain.Retries != 1 {
		t.Errorf("Retries = %d, want 1", cfg.Explain.Retries)
	}
	if cfg.Explain.Timeout != 7*time.Second {
		t.Errorf("Timeout = %v, want 7s", cfg.Explain.Timeout)
	}
	if got := cfg.MentorConfig().Timeout; got != 14*time.Second {
		t.Errorf("MentorConfig().Timeout = %v, want 14s", got)
	}
}

func TestLoad_InvalidRatios(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATIO_NEEDS", "0.7")

	_, err := Load()
	if !errors.Is(err, models.ErrInvalidRatios) {
		t.Errorf("error = %v, want ErrInvalidRatios", err)
	}
}

func TestLoad_UnknownStorage(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE", "mongo")

	if _, err := Load(); err == nil {
		t.Error("Load with unknown storage: want error")
	}
}

func TestLoad_AuthNeedsOwnJWTSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("PASSPHRASE_HASH", "$2a$10$abcdefghijklmnopqrstuu")

	if _, err := Load(); err == nil {
		t.Error("Load with auth and default JWT secret: want error")
	}

	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Error("Load with auth and empty JWT secret: want error")
	}

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with auth and own secret: %v", err)
	}
	if cfg.JWTSecret != "a-real-secret" {
		t.Errorf("JWTSecret = %q, want a-real-secret", cfg.JWTSecret)
	}
}

func TestLoad_BadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MENTOR_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	if _, err := Load(); err == nil {
		t.Error("Load with missing file: want error")
	}
}

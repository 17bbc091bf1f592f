package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("expected default DB host localhost, got %s", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("expected default DB port 5432, got %d", cfg.Database.Port)
	}
	if cfg.HTTP.Addr != ":8000" {
		t.Errorf("expected default HTTP addr :8000, got %s", cfg.HTTP.Addr)
	}
	if cfg.Report.Dir != "reports" {
		t.Errorf("expected default report dir reports, got %s", cfg.Report.Dir)
	}
	if cfg.Report.Workers != 4 {
		t.Errorf("expected default report workers 4, got %d", cfg.Report.Workers)
	}
	if cfg.Report.DefaultTimezone != "America/Chicago" {
		t.Errorf("expected default timezone America/Chicago, got %s", cfg.Report.DefaultTimezone)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Log.Level)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("REDIS_ADDR", "cache.internal:6379")
	t.Setenv("REPORT_WORKERS", "8")
	t.Setenv("REPORT_WEBHOOK_URL", "http://hooks.internal/report")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Database.Host != "db.internal" {
		t.Errorf("expected DB host db.internal, got %s", cfg.Database.Host)
	}
	if cfg.Database.Port != 15432 {
		t.Errorf("expected DB port 15432, got %d", cfg.Database.Port)
	}
	if cfg.Redis.Addr != "cache.internal:6379" {
		t.Errorf("expected redis addr cache.internal:6379, got %s", cfg.Redis.Addr)
	}
	if cfg.Report.Workers != 8 {
		t.Errorf("expected report workers 8, got %d", cfg.Report.Workers)
	}
	if cfg.Report.WebhookURL != "http://hooks.internal/report" {
		t.Errorf("expected webhook url to be set, got %s", cfg.Report.WebhookURL)
	}
}

func TestGetEnvIntRejectsInvalid(t *testing.T) {
	t.Setenv("REPORT_WORKERS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Report.Workers != 4 {
		t.Errorf("expected invalid REPORT_WORKERS to fall back to 4, got %d", cfg.Report.Workers)
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		Database: "store_monitor",
		SSLMode:  "disable",
	}

	want := "host=localhost port=5432 user=postgres password=secret dbname=store_monitor sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}

package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SCHEDULE_BASE_URL", "STATION_CODE", "SCHEDULE_TIMEOUT", "SCHEDULE_DISPLAY_LIMIT",
		"FETCH_LOG_ENABLED", "SERVER_PORT", "LOG_LEVEL", "CORS_ALLOW_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ScheduleBaseURL != "https://rasp.yandex.ru" {
		t.Errorf("ScheduleBaseURL = %q", cfg.ScheduleBaseURL)
	}
	if cfg.StationCode != "9623103" {
		t.Errorf("StationCode = %q", cfg.StationCode)
	}
	if cfg.ScheduleTimeout != 15*time.Second {
		t.Errorf("ScheduleTimeout = %s", cfg.ScheduleTimeout)
	}
	if cfg.DisplayLimit != 4 {
		t.Errorf("DisplayLimit = %d", cfg.DisplayLimit)
	}
	if cfg.FetchLogEnabled {
		t.Error("FetchLogEnabled should default to false")
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STATION_CODE", "9613602")
	t.Setenv("SCHEDULE_TIMEOUT", "3s")
	t.Setenv("SCHEDULE_DISPLAY_LIMIT", "10")
	t.Setenv("FETCH_LOG_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example,https://b.example")

	cfg := Load()
	if cfg.StationCode != "9613602" {
		t.Errorf("StationCode = %q", cfg.StationCode)
	}
	if cfg.ScheduleTimeout != 3*time.Second {
		t.Errorf("ScheduleTimeout = %s", cfg.ScheduleTimeout)
	}
	if cfg.DisplayLimit != 10 {
		t.Errorf("DisplayLimit = %d", cfg.DisplayLimit)
	}
	if !cfg.FetchLogEnabled {
		t.Error("FetchLogEnabled should be true")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
	if len(cfg.CORSAllowOrigins) != 2 {
		t.Errorf("CORSAllowOrigins = %v", cfg.CORSAllowOrigins)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SCHEDULE_TIMEOUT", "soon")
	t.Setenv("SCHEDULE_DISPLAY_LIMIT", "four")
	t.Setenv("FETCH_LOG_ENABLED", "maybe")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := Load()
	if cfg.ScheduleTimeout != 15*time.Second {
		t.Errorf("ScheduleTimeout = %s", cfg.ScheduleTimeout)
	}
	if cfg.DisplayLimit != 4 {
		t.Errorf("DisplayLimit = %d", cfg.DisplayLimit)
	}
	if cfg.FetchLogEnabled {
		t.Error("FetchLogEnabled should fall back to false")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
}

func TestLoadNonPositiveTimeout(t *testing.T) {
	t.Setenv("SCHEDULE_TIMEOUT", "-1s")
	if cfg := Load(); cfg.ScheduleTimeout != 15*time.Second {
		t.Errorf("ScheduleTimeout = %s", cfg.ScheduleTimeout)
	}
}

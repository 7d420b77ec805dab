package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// durationSeconds parses env as time.Duration: "10s", "5m" or bare number = seconds (e.g. "10" -> 10s).
type durationSeconds time.Duration

// SetValue implements cleanenv.Setter.
func (d *durationSeconds) SetValue(data string) error {
	v, err := parseDuration(data)
	if err != nil {
		return err
	}
	*d = durationSeconds(v)
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	// Strip optional surrounding quotes: "10s" or '10s'
	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	// Bare number first (e.g. Railway HTTP_READ_TIMEOUT=10) — so "10s" never goes to ParseInt
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration must be like 10s, 5m or a number of seconds: %w", err)
	}
	return d, nil
}

func (d durationSeconds) Duration() time.Duration { return time.Duration(d) }

type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	Sheet SheetConfig
}

type AppConfig struct {
	Env     string `env:"APP_ENV" env-default:"dev"`
	Version string `env:"VERSION" env-default:"dev"`
}

type HTTPConfig struct {
	Port string `env:"HTTP_PORT" env-default:"8080"`

	// Значение: "10s", "5m" или число секунд без суффикса (например 10).
	ReadTimeout  durationSeconds `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout durationSeconds `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  durationSeconds `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type SheetConfig struct {
	// CSVURL is the published read-only CSV link of the Google Sheet.
	CSVURL string `env:"SHEET_CSV_URL" env-required:"true"`

	// SourceTZ is the timezone the raw date/start/slept cells are written in.
	// TargetTZ is the timezone everything is converted to for display.
	SourceTZ string `env:"SHEET_SOURCE_TZ" env-default:"Asia/Kolkata"`
	TargetTZ string `env:"SHEET_TARGET_TZ" env-default:"America/New_York"`

	// CacheTTL: "60s", "5m" или число секунд. Пока не истёк — отдаём снапшот из кеша.
	CacheTTL     durationSeconds `env:"SHEET_CACHE_TTL" env-default:"300"`
	FetchTimeout durationSeconds `env:"SHEET_FETCH_TIMEOUT" env-default:"15s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if !strings.HasPrefix(cfg.Sheet.CSVURL, "http://") && !strings.HasPrefix(cfg.Sheet.CSVURL, "https://") {
		return Config{}, fmt.Errorf("SHEET_CSV_URL must be an http(s) URL")
	}
	if cfg.Sheet.CacheTTL.Duration() <= 0 {
		return Config{}, fmt.Errorf("SHEET_CACHE_TTL must be positive")
	}
	return cfg, nil
}

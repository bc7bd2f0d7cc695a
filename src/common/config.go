package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDashboardURL = "https://api.coronavirus.data.gov.uk"
	defaultNHSEURL      = "https://www.england.nhs.uk/statistics/wp-content/uploads/sites/2"
)

type Config struct {
	DataDir string
	OutDir  string
	LogDir  string
	LogEnv  string

	DashboardURL    string
	NHSEURL         string
	HTTPTimeout     time.Duration
	DownloadWorkers int

	RecordStart   time.Time
	RecordEnd     time.Time // zero means derived from the clock and PublishCutoff
	HistoryStart  time.Time
	PublishCutoff time.Duration // offset from local midnight

	RecentDaysExcluded int
	HospLag            int
	DeathLag           int

	SnapshotAll bool
}

// LoadConfig reads an optional .env file and then the environment, applying
// defaults where unset.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:      getEnv("DATA_DIR", "./data/"),
		OutDir:       getEnv("OUT_DIR", "./out/"),
		LogDir:       getEnv("LOG_DIR", "./log/"),
		LogEnv:       getEnv("LOG_ENV", EnvDev),
		DashboardURL: getEnv("DASHBOARD_URL", defaultDashboardURL),
		NHSEURL:      getEnv("NHSE_URL", defaultNHSEURL),
	}
	if cfg.LogEnv != EnvDev && cfg.LogEnv != EnvProd {
		return nil, fmt.Errorf("invalid LOG_ENV %q", cfg.LogEnv)
	}

	var err error
	if cfg.HTTPTimeout, err = time.ParseDuration(getEnv("HTTP_TIMEOUT", "30s")); err != nil || cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT")
	}
	if cfg.DownloadWorkers, err = getPositiveInt("DOWNLOAD_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.RecordStart, err = getDay("RECORD_START", "2020-04-02"); err != nil {
		return nil, err
	}
	if cfg.RecordEnd, err = getDay("RECORD_END", ""); err != nil {
		return nil, err
	}
	if cfg.HistoryStart, err = getDay("HISTORY_START", "2020-03-19"); err != nil {
		return nil, err
	}
	if !cfg.RecordEnd.IsZero() && cfg.RecordEnd.Before(cfg.RecordStart) {
		return nil, fmt.Errorf("RECORD_END %s before RECORD_START %s",
			cfg.RecordEnd.Format(DateLayout), cfg.RecordStart.Format(DateLayout))
	}

	cutoff, err := time.Parse("15:04", getEnv("PUBLISH_CUTOFF", "14:05"))
	if err != nil {
		return nil, fmt.Errorf("invalid PUBLISH_CUTOFF: %w", err)
	}
	cfg.PublishCutoff = time.Duration(cutoff.Hour())*time.Hour + time.Duration(cutoff.Minute())*time.Minute

	if cfg.RecentDaysExcluded, err = getNonNegativeInt("RECENT_DAYS_EXCLUDED", 3); err != nil {
		return nil, err
	}
	if cfg.HospLag, err = getNonNegativeInt("HOSP_LAG", 7); err != nil {
		return nil, err
	}
	if cfg.DeathLag, err = getNonNegativeInt("DEATH_LAG", 14); err != nil {
		return nil, err
	}
	if cfg.DeathLag < cfg.HospLag {
		return nil, fmt.Errorf("DEATH_LAG %d shorter than HOSP_LAG %d", cfg.DeathLag, cfg.HospLag)
	}
	if cfg.SnapshotAll, err = strconv.ParseBool(getEnv("SNAPSHOT_ALL", "true")); err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_ALL: %w", err)
	}
	return cfg, nil
}

// RecordEndAt is the last report date whose workbook should exist at now:
// today once the publish cutoff has passed, yesterday before it.
func (c *Config) RecordEndAt(now time.Time) time.Time {
	if !c.RecordEnd.IsZero() {
		return c.RecordEnd
	}
	// Wall clock time, not time elapsed since midnight, which is off by an
	// hour on DST change days.
	clock := time.Duration(now.Hour())*time.Hour +
		time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second +
		time.Duration(now.Nanosecond())
	if clock > c.PublishCutoff {
		return Day(now)
	}
	return Day(now).AddDate(0, 0, -1)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDay(key, defaultValue string) (time.Time, error) {
	s := getEnv(key, defaultValue)
	if s == "" {
		return time.Time{}, nil
	}
	d, err := ParseDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getNonNegativeInt(key string, defaultValue int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return n, nil
}

func getPositiveInt(key string, defaultValue int) (int, error) {
	n, err := getNonNegativeInt(key, defaultValue)
	if err == nil && n == 0 {
		err = fmt.Errorf("invalid %s: must be positive", key)
	}
	return n, err
}

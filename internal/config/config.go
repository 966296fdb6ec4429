// Package config loads ls-solar settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/observer"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "LS_SOLAR_"

// DateLayout is the civil date format accepted for Date.
const DateLayout = time.DateOnly

// Config holds all settings. Command-line flags override these values.
type Config struct {
	Latitude  float64
	Longitude float64
	UTCOffset float64
	Name      string
	Date      string // empty means today

	LogLevel  string
	LogFormat string

	MetricsAddr     string
	RefreshInterval time.Duration
	TraceInterval   time.Duration
	AlmanacDays     int
}

// Load reads configuration from the environment, with values from a .env
// file in the working directory as fallback.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile reads configuration from the environment, falling back to the
// given dotenv file and then to defaults. A missing file is not an error.
// The file never overrides variables already set in the environment.
func LoadFile(path string) (*Config, error) {
	file, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	env := func(key, def string) string {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
			return v
		}
		if v, ok := file[EnvPrefix+key]; ok && v != "" {
			return v
		}
		return def
	}

	lat, err := parseFloat("LATITUDE", env("LATITUDE", "51.4769"))
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat("LONGITUDE", env("LONGITUDE", "-0.0005"))
	if err != nil {
		return nil, err
	}
	if err := observer.ValidateLatLong(lat, lon); err != nil {
		return nil, err
	}

	offset, err := observer.ParseUTCOffset(env("UTC_OFFSET", "0"))
	if err != nil {
		return nil, err
	}

	refresh, err := parseDuration("REFRESH_INTERVAL", env("REFRESH_INTERVAL", "5s"))
	if err != nil {
		return nil, err
	}
	traceInterval, err := parseDuration("TRACE_INTERVAL", env("TRACE_INTERVAL", "10m"))
	if err != nil {
		return nil, err
	}

	days, err := strconv.Atoi(env("ALMANAC_DAYS", "7"))
	if err != nil || days < 1 || days > 366 {
		return nil, fmt.Errorf("invalid %sALMANAC_DAYS", EnvPrefix)
	}

	cfg := &Config{
		Latitude:        lat,
		Longitude:       lon,
		UTCOffset:       offset,
		Name:            env("NAME", "Greenwich"),
		Date:            env("DATE", ""),
		LogLevel:        env("LOG_LEVEL", "info"),
		LogFormat:       env("LOG_FORMAT", "text"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		RefreshInterval: refresh,
		TraceInterval:   traceInterval,
		AlmanacDays:     days,
	}

	if cfg.Date != "" {
		if _, err := time.Parse(DateLayout, cfg.Date); err != nil {
			return nil, fmt.Errorf("invalid %sDATE: %w", EnvPrefix, err)
		}
	}

	return cfg, nil
}

// Instant returns local midnight of the configured date, or of the date
// containing now when Date is empty.
func (c *Config) Instant(now time.Time) (time.Time, error) {
	if c.Date == "" {
		return astro.LocalMidnight(now, c.UTCOffset), nil
	}
	t, err := time.ParseInLocation(DateLayout, c.Date, astro.FixedZone(c.UTCOffset))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", c.Date, err)
	}
	return t, nil
}

// Observer builds the observer described by c.
func (c *Config) Observer(now time.Time) (observer.Observer, error) {
	instant, err := c.Instant(now)
	if err != nil {
		return observer.Observer{}, err
	}
	return observer.New(observer.Params{
		Instant:   instant,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		UTCOffset: c.UTCOffset,
		Name:      c.Name,
	})
}

func parseFloat(key, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return v, nil
}

func parseDuration(key, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s%s", EnvPrefix, key)
	}
	return d, nil
}

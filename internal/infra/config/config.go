package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Store   StoreConfig   `yaml:"store"`
	Station StationConfig `yaml:"station"`
	Static  StaticConfig  `yaml:"static"`
	Log     LogConfig     `yaml:"log"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	AllowedOrigins  []string        `yaml:"allowedOrigins"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// StoreConfig points at the InfluxDB v2 instance holding the raw samples.
type StoreConfig struct {
	URL          string        `yaml:"url"`
	Token        string        `yaml:"token"`
	Org          string        `yaml:"org"`
	Bucket       string        `yaml:"bucket"`
	QueryTimeout time.Duration `yaml:"queryTimeout"`
}

// StationConfig describes where the station is. Latitude and longitude are pointers so an
// absent value can be told apart from the equator or the prime meridian.
type StationConfig struct {
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
	Timezone  string   `yaml:"timezone"`
}

// StaticConfig controls the dashboard asset fallback.
type StaticConfig struct {
	Dir   string `yaml:"dir"`
	Index string `yaml:"index"`
}

// LogConfig selects level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// applyEnvOverrides keeps the variable names the station deployment already uses
// (LAT, LONG, INFLUX_*, HOSTNAME, PORTNUMBER). Coordinates are required, so a value
// that does not parse is an error rather than a silent fallback.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	host, port := os.Getenv("HOSTNAME"), os.Getenv("PORTNUMBER")
	if host != "" || port != "" {
		cfg.HTTP.Address = joinHostPort(cfg.HTTP.Address, host, port)
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("INFLUX_URL"); v != "" {
		cfg.Store.URL = v
	}
	if v := os.Getenv("INFLUX_TOKEN"); v != "" {
		cfg.Store.Token = v
	}
	if v := os.Getenv("INFLUX_ORG"); v != "" {
		cfg.Store.Org = v
	}
	if v := os.Getenv("INFLUX_BUCKET"); v != "" {
		cfg.Store.Bucket = v
	}
	if v := os.Getenv("INFLUX_QUERY_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Store.QueryTimeout = parsed
		}
	}
	if v := os.Getenv("LAT"); v != "" {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid LAT %q: %w", v, err)
		}
		cfg.Station.Latitude = &parsed
	}
	if v := os.Getenv("LONG"); v != "" {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid LONG %q: %w", v, err)
		}
		cfg.Station.Longitude = &parsed
	}
	if v := os.Getenv("STATION_TIMEZONE"); v != "" {
		cfg.Station.Timezone = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.Static.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

func joinHostPort(current, host, port string) string {
	curHost, curPort := current, ""
	if idx := strings.LastIndex(current, ":"); idx >= 0 {
		curHost, curPort = current[:idx], current[idx+1:]
	}
	if host == "" {
		host = curHost
	}
	if port == "" {
		port = curPort
	}
	return host + ":" + port
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         "0.0.0.0:5000",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           false,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Store: StoreConfig{
			Org:          "default",
			QueryTimeout: 15 * time.Second,
		},
		Static: StaticConfig{
			Dir:   "frontend",
			Index: "index.html",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return errors.New("http.shutdownTimeout must be positive")
	}
	if strings.TrimSpace(c.Store.URL) == "" {
		return errors.New("store.url cannot be empty")
	}
	if strings.TrimSpace(c.Store.Token) == "" {
		return errors.New("store.token cannot be empty")
	}
	if strings.TrimSpace(c.Store.Org) == "" {
		return errors.New("store.org cannot be empty")
	}
	if strings.TrimSpace(c.Store.Bucket) == "" {
		return errors.New("store.bucket cannot be empty")
	}
	if c.Store.QueryTimeout <= 0 {
		return errors.New("store.queryTimeout must be positive")
	}
	if c.Station.Latitude == nil || c.Station.Longitude == nil {
		return errors.New("station.latitude and station.longitude are required")
	}
	if lat := *c.Station.Latitude; math.IsNaN(lat) || lat < -90 || lat > 90 {
		return errors.New("station.latitude must be within [-90, 90]")
	}
	if lon := *c.Station.Longitude; math.IsNaN(lon) || lon < -180 || lon > 180 {
		return errors.New("station.longitude must be within [-180, 180]")
	}
	if _, err := c.Station.Location(); err != nil {
		return fmt.Errorf("station.timezone: %w", err)
	}
	if strings.TrimSpace(c.Static.Index) == "" {
		return errors.New("static.index cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}

// Location resolves the station time zone; an empty name means the process local zone.
func (s StationConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(s.Timezone)
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

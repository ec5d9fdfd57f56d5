package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Data and temperature source kinds.
const (
	SourceMock   = "mock"
	SourceHTTP   = "http"
	SourceInflux = "influx"

	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port           string
		AllowedOrigins []string
	}

	Log struct {
		Level  string
		Format string
	}

	Source struct {
		Data             string // mock | http
		Temperature      string // mock | influx
		APIURL           string
		APITimeout       time.Duration
		MockLatencyScale float64
		NearExpiryDays   int
		PollInterval     time.Duration
		PollingEnabled   bool
	}

	InfluxDB struct {
		URL      string
		Token    string
		Org      string
		Bucket   string
		Lookback string
	}

	Store struct {
		Kind string // redis | memory
		Key  string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; the environment is used as is.
	_ = godotenv.Load()

	cfg := &Config{}
	var err error

	cfg.Server.Port = getEnv("PORT", "8000")
	cfg.Server.AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"))

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Source.Data = strings.ToLower(getEnv("DATA_SOURCE", SourceMock))
	cfg.Source.Temperature = strings.ToLower(getEnv("TEMPERATURE_SOURCE", SourceMock))
	cfg.Source.APIURL = getEnv("API_URL", "")
	if cfg.Source.APITimeout, err = getDuration("API_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Source.MockLatencyScale, err = getFloat("MOCK_LATENCY_SCALE", 1.0); err != nil {
		return nil, err
	}
	if cfg.Source.NearExpiryDays, err = getInt("NEAR_EXPIRY_DAYS", 30); err != nil {
		return nil, err
	}
	if cfg.Source.PollInterval, err = getDuration("POLL_INTERVAL", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Source.PollingEnabled, err = getBool("POLLING_ENABLED", true); err != nil {
		return nil, err
	}

	cfg.InfluxDB.URL = getEnv("INFLUXDB_URL", "")
	cfg.InfluxDB.Token = getEnv("INFLUXDB_TOKEN", "")
	cfg.InfluxDB.Org = getEnv("INFLUXDB_ORG", "")
	cfg.InfluxDB.Bucket = getEnv("INFLUXDB_BUCKET", "cold_storage")
	cfg.InfluxDB.Lookback = getEnv("INFLUXDB_LOOKBACK", "-1h")

	cfg.Store.Kind = strings.ToLower(getEnv("STORE", StoreRedis))
	cfg.Store.Key = getEnv("STORE_KEY", "wms-inventory-storage")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backends are fully configured.
func (c *Config) Validate() error {
	switch c.Source.Data {
	case SourceMock:
	case SourceHTTP:
		if c.Source.APIURL == "" {
			return fmt.Errorf("DATA_SOURCE=http requires API_URL")
		}
	default:
		return fmt.Errorf("unsupported DATA_SOURCE %q (want mock or http)", c.Source.Data)
	}

	switch c.Source.Temperature {
	case SourceMock:
	case SourceInflux:
		if c.InfluxDB.URL == "" || c.InfluxDB.Token == "" || c.InfluxDB.Org == "" {
			return fmt.Errorf("InfluxDB configuration is incomplete. Please set INFLUXDB_URL, INFLUXDB_TOKEN, and INFLUXDB_ORG environment variables")
		}
	default:
		return fmt.Errorf("unsupported TEMPERATURE_SOURCE %q (want mock or influx)", c.Source.Temperature)
	}

	switch c.Store.Kind {
	case StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("unsupported STORE %q (want redis or memory)", c.Store.Kind)
	}

	if c.Source.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.Source.PollInterval)
	}
	if c.Source.NearExpiryDays <= 0 {
		return fmt.Errorf("NEAR_EXPIRY_DAYS must be positive, got %d", c.Source.NearExpiryDays)
	}
	if c.Source.MockLatencyScale < 0 {
		return fmt.Errorf("MOCK_LATENCY_SCALE must not be negative, got %g", c.Source.MockLatencyScale)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// v1
// internal/config/config.go
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config captures all runtime settings of the ferienplanung service. Values
// layer defaults, an optional properties file, and environment variables, so
// the binary can boot with minimal setup.
type Config struct {
	// ListenAddress defines the TCP address used by the HTTP server.
	ListenAddress string
	// LogFilePath is the path of the log file (stdout is always mirrored).
	LogFilePath string
	// HTTPReadTimeout bounds the time to read incoming requests.
	HTTPReadTimeout time.Duration
	// HTTPWriteTimeout bounds the time to write responses.
	HTTPWriteTimeout time.Duration
	// ShutdownTimeout limits graceful shutdown attempts.
	ShutdownTimeout time.Duration
	// PropertiesPath records the path used to load property values.
	PropertiesPath string

	// PublicAPIBase is the base URL of the public-holiday API.
	PublicAPIBase string
	// SchoolAPIBase is the base URL of the school-holiday API.
	SchoolAPIBase string
	// LookupTimeout bounds a single holiday API request.
	LookupTimeout time.Duration
	// LookupRetries is the bounded attempt count per lookup.
	LookupRetries int
	// CacheTTL bounds the in-memory holiday cache entries.
	CacheTTL time.Duration
	// CacheDBPath enables the persistent SQLite holiday cache when set.
	CacheDBPath string
	// FallbackDataPath points at a YAML file replacing the built-in computed
	// holiday calendar; empty keeps the defaults.
	FallbackDataPath string
	// FallbackEnabled toggles the computed fallback when the APIs fail.
	FallbackEnabled bool

	// MaxUploadBytes caps the accepted size of an uploaded profile CSV.
	MaxUploadBytes int64
}

const (
	defaultListenAddress = ":8094"
	defaultLogFile       = "logs/ferienplanung.log"
	defaultReadTimeout   = 30 * time.Second
	defaultWriteTimeout  = 60 * time.Second
	defaultShutdown      = 5 * time.Second
	defaultPropsPath     = "ferienplanung.properties"
	defaultLookupTimeout = 10 * time.Second
	defaultLookupRetries = 2
	defaultCacheTTL      = 24 * time.Hour
	defaultMaxUpload     = 32 << 20
)

// Load resolves configuration by layering defaults, an optional properties
// file, and finally environment variables. The properties file location can
// be overridden with FERIENPLANUNG_PROPERTIES_PATH.
func Load() (Config, error) {
	cfg := Config{
		ListenAddress:    defaultListenAddress,
		LogFilePath:      filepath.Clean(defaultLogFile),
		HTTPReadTimeout:  defaultReadTimeout,
		HTTPWriteTimeout: defaultWriteTimeout,
		ShutdownTimeout:  defaultShutdown,
		LookupTimeout:    defaultLookupTimeout,
		LookupRetries:    defaultLookupRetries,
		CacheTTL:         defaultCacheTTL,
		FallbackEnabled:  true,
		MaxUploadBytes:   defaultMaxUpload,
	}

	propsPath := strings.TrimSpace(os.Getenv("FERIENPLANUNG_PROPERTIES_PATH"))
	if propsPath == "" {
		propsPath = defaultPropsPath
	}
	cfg.PropertiesPath = propsPath

	if err := applyProperties(&cfg, propsPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyProperties(cfg *Config, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		// No logger exists at this stage of initialization.
		_ = f.Close()
	}()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") || strings.HasPrefix(raw, ";") {
			continue
		}
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid properties entry on line %d", line)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if err := setProperty(cfg, key, value); err != nil {
			return fmt.Errorf("property %s: %w", key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read properties: %w", err)
	}
	return nil
}

func setProperty(cfg *Config, key, value string) error {
	switch key {
	case "listen_address":
		if value == "" {
			return errors.New("listen_address cannot be empty")
		}
		cfg.ListenAddress = value
	case "log_path":
		if value == "" {
			return errors.New("log_path cannot be empty")
		}
		cfg.LogFilePath = filepath.Clean(value)
	case "http_read_timeout_ms":
		d, err := parsePositiveMillis(value)
		if err != nil {
			return err
		}
		cfg.HTTPReadTimeout = d
	case "http_write_timeout_ms":
		d, err := parsePositiveMillis(value)
		if err != nil {
			return err
		}
		cfg.HTTPWriteTimeout = d
	case "shutdown_timeout_ms":
		d, err := parsePositiveMillis(value)
		if err != nil {
			return err
		}
		cfg.ShutdownTimeout = d
	case "holiday_api_base":
		cfg.PublicAPIBase = value
	case "school_holiday_api_base":
		cfg.SchoolAPIBase = value
	case "lookup_timeout_ms":
		d, err := parsePositiveMillis(value)
		if err != nil {
			return err
		}
		cfg.LookupTimeout = d
	case "lookup_retries":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid lookup_retries: %w", err)
		}
		if n < 1 {
			return errors.New("lookup_retries must be at least 1")
		}
		cfg.LookupRetries = n
	case "cache_ttl_ms":
		d, err := parsePositiveMillis(value)
		if err != nil {
			return err
		}
		cfg.CacheTTL = d
	case "cache_db_path":
		cfg.CacheDBPath = filepath.Clean(value)
	case "fallback_data_path":
		cfg.FallbackDataPath = filepath.Clean(value)
	case "fallback_enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid fallback_enabled: %w", err)
		}
		cfg.FallbackEnabled = b
	case "max_upload_bytes":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid max_upload_bytes: %w", err)
		}
		if n <= 0 {
			return errors.New("max_upload_bytes must be positive")
		}
		cfg.MaxUploadBytes = n
	default:
		// Unknown keys are ignored to keep the loader forward-compatible.
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookupEnvTrimmed("FERIENPLANUNG_LISTEN_ADDRESS"); ok {
		if v == "" {
			return errors.New("FERIENPLANUNG_LISTEN_ADDRESS cannot be empty")
		}
		cfg.ListenAddress = v
	}
	if v, ok := lookupEnvTrimmed("FERIENPLANUNG_LOG_PATH"); ok {
		if v == "" {
			return errors.New("FERIENPLANUNG_LOG_PATH cannot be empty")
		}
		cfg.LogFilePath = filepath.Clean(v)
	}
	if v, ok := lookupEnvTrimmed("FERIENPLANUNG_HTTP_READ_TIMEOUT_MS"); ok {
		d, err := parsePositiveMillis(v)
		if err != nil {
			return fmt.Errorf("FERIENPLANUNG_HTTP_READ_TIMEOUT_MS: %w", err)
		}
		cfg.HTTPReadTimeout = d
	}
	if v, ok := lookupEnvTrimmed("FERIENPLANUNG_HTTP_WRITE_TIMEOUT_MS"); ok {
		d, err := parsePositiveMillis(v)
		if err != nil {
			return fmt.Errorf("FERIENPLANUNG_HTTP_WRITE_TIMEOUT_MS: %w", err)
		}
		cfg.HTTPWriteTimeout = d
	}
	if v, ok := lookupEnvTrimmed("FERIENPLANUNG_SHUTDOWN_TIMEOUT_MS"); ok {
		d, err := parsePositiveMillis(v)
		if err != nil {
			return fmt.Errorf("FERIENPLANUNG_SHUTDOWN_TIMEOUT_MS: %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	if v, ok := lookupEnvTrimmed("FERIENPLANUNG_HOLIDAY_API_BASE"); ok {
		cfg.PublicAPIBase = v
	}
	if v, ok := lookupEnvTrimmed("FERIENPLANUNG_SCHOOL_HOLIDAY_API_BASE"); ok {
		cfg.SchoolAPIBase = v
	}
	if v, ok := lookupEnvTrimmed("FERIENPLANUNG_LOOKUP_TIMEOUT_MS"); ok {
		d, err := parsePositiveMillis(v)
		if err != nil {
			return fmt.Errorf("FERIENPLANUNG_LOOKUP_TIMEOUT_MS: %w", err)
		}
		cfg.LookupTimeout = d
	}
	if v, ok := lookupEnvTrimmed("FERIENPLANUNG_LOOKUP_RETRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FERIENPLANUNG_LOOKUP_RETRIES: %w", err)
		}
		if n < 1 {
			return errors.New("FERIENPLANUNG_LOOKUP_RETRIES must be at least 1")
		}
		cfg.LookupRetries = n
	}
	if v, ok := lookupEnvTrimmed("FERIENPLANUNG_CACHE_TTL_MS"); ok {
		d, err := parsePositiveMillis(v)
		if err != nil {
			return fmt.Errorf("FERIENPLANUNG_CACHE_TTL_MS: %w", err)
		}
		cfg.CacheTTL = d
	}
	if v, ok := lookupEnvTrimmed("FERIENPLANUNG_CACHE_DB_PATH"); ok {
		cfg.CacheDBPath = filepath.Clean(v)
	}
	if v, ok := lookupEnvTrimmed("FERIENPLANUNG_FALLBACK_DATA_PATH"); ok {
		cfg.FallbackDataPath = filepath.Clean(v)
	}
	if v, ok := lookupEnvTrimmed("FERIENPLANUNG_FALLBACK_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FERIENPLANUNG_FALLBACK_ENABLED: %w", err)
		}
		cfg.FallbackEnabled = b
	}
	if v, ok := lookupEnvTrimmed("FERIENPLANUNG_MAX_UPLOAD_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("FERIENPLANUNG_MAX_UPLOAD_BYTES: %w", err)
		}
		if n <= 0 {
			return errors.New("FERIENPLANUNG_MAX_UPLOAD_BYTES must be positive")
		}
		cfg.MaxUploadBytes = n
	}
	return nil
}

func lookupEnvTrimmed(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func parsePositiveMillis(v string) (time.Duration, error) {
	if strings.TrimSpace(v) == "" {
		return 0, errors.New("value cannot be empty")
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %w", err)
	}
	if ms <= 0 {
		return 0, errors.New("value must be greater than zero")
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// Package config loads service configuration from a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends understood by the server.
const (
	BackendMinio = "minio"
	BackendS3    = "s3"
)

// DefaultPageSize is used when PAGE_SIZE is not set.
const DefaultPageSize = 100

// Config is built once at process start and passed to each component.
type Config struct {
	Port     string
	LogLevel slog.Level

	Backend       string
	Bucket        string
	DefaultFolder string
	SuggestFolder string
	PageSize      int

	// SNSTopicARN enables suggestion notifications when set.
	SNSTopicARN string

	AWSRegion   string
	AWSEndpoint string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	// MinioUseSSL is nil when MINIO_USE_SSL is unset; the endpoint decides then.
	MinioUseSSL *bool
}

// Load reads a .env file if present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary lookup function.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := &Config{
		Port:           get("PORT", "8080"),
		Backend:        strings.ToLower(get("STORAGE_BACKEND", BackendS3)),
		Bucket:         get("S3_BUCKET_NAME", ""),
		DefaultFolder:  get("DEFAULT_FOLDER", "uncategorized"),
		SuggestFolder:  get("SUGGEST_FOLDER", "suggest"),
		SNSTopicARN:    get("SNS_TOPIC_ARN", ""),
		AWSRegion:      get("AWS_REGION", "us-east-1"),
		AWSEndpoint:    get("AWS_ENDPOINT_URL", ""),
		MinioEndpoint:  get("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: get("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: get("MINIO_SECRET_KEY", "minioadmin"),
	}

	level, err := parseLevel(get("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.PageSize, err = strconv.Atoi(get("PAGE_SIZE", strconv.Itoa(DefaultPageSize)))
	if err != nil {
		return nil, fmt.Errorf("PAGE_SIZE: %w", err)
	}

	if raw := get("MINIO_USE_SSL", ""); raw != "" {
		useSSL, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("MINIO_USE_SSL: %w", err)
		}
		cfg.MinioUseSSL = &useSSL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	switch {
	case c.Bucket == "":
		return errors.New("S3_BUCKET_NAME is required")
	case c.PageSize <= 0:
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	case c.DefaultFolder == "" || strings.Contains(c.DefaultFolder, "/"):
		return fmt.Errorf("DEFAULT_FOLDER %q is not a valid folder name", c.DefaultFolder)
	case c.Backend != BackendMinio && c.Backend != BackendS3:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendMinio, BackendS3, c.Backend)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const appName = "drivedash"

type UploadStrategy string

const (
	UploadAggregate UploadStrategy = "aggregate"
	UploadPerFile   UploadStrategy = "per-file"
)

type Config struct {
	Env string

	APIBaseURL     string
	RequestTimeout time.Duration

	Token     string
	TokenFile string

	UploadConcurrency int
	UploadStrategy    UploadStrategy

	SessionCheckInterval time.Duration

	LogLevel  string
	LogFormat string

	MetricsAddr string
}

var AppConfig *Config

// LoadEnvFile loads the first .env file found among paths. With no paths it
// checks the working directory and its two parents. A missing file is not an
// error; the process environment is used as is.
func LoadEnvFile(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = []string{".env", "../.env", "../../.env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return "", fmt.Errorf("load %s: %w", p, err)
		}
		abs, _ := filepath.Abs(p)
		return abs, nil
	}
	return "", nil
}

// LoadConfig reads the environment into AppConfig.
func LoadConfig() (*Config, error) {
	timeout, err := parseDuration("REQUEST_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	interval, err := parseDuration("SESSION_CHECK_INTERVAL", "1m")
	if err != nil {
		return nil, err
	}
	concurrency, err := parseInt("UPLOAD_CONCURRENCY", "0")
	if err != nil {
		return nil, err
	}

	tokenFile := getEnv("DRIVE_TOKEN_FILE", "")
	if tokenFile == "" {
		tokenFile = filepath.Join(xdg.ConfigHome, appName, "token")
	}

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		APIBaseURL:     strings.TrimRight(getEnv("DRIVE_API_URL", "http://localhost:8080"), "/"),
		RequestTimeout: timeout,

		Token:     getEnv("DRIVE_TOKEN", ""),
		TokenFile: tokenFile,

		UploadConcurrency: concurrency,
		UploadStrategy:    UploadStrategy(getEnv("UPLOAD_STRATEGY", string(UploadAggregate))),

		SessionCheckInterval: interval,

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		MetricsAddr: getEnv("METRICS_ADDR", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	AppConfig = cfg
	return cfg, nil
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	var problems []string
	if c.APIBaseURL == "" {
		problems = append(problems, "DRIVE_API_URL is empty")
	}
	if c.UploadConcurrency < 0 {
		problems = append(problems, "UPLOAD_CONCURRENCY must be >= 0")
	}
	switch c.UploadStrategy {
	case UploadAggregate, UploadPerFile:
	default:
		problems = append(problems, fmt.Sprintf("UPLOAD_STRATEGY %q is not one of aggregate, per-file", c.UploadStrategy))
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Fields renders the configuration for logging with secrets masked.
func (c *Config) Fields() []zap.Field {
	return []zap.Field{
		zap.String("env", c.Env),
		zap.String("api_url", c.APIBaseURL),
		zap.Duration("request_timeout", c.RequestTimeout),
		zap.String("token", maskSecret(c.Token)),
		zap.String("token_file", c.TokenFile),
		zap.Int("upload_concurrency", c.UploadConcurrency),
		zap.String("upload_strategy", string(c.UploadStrategy)),
		zap.Duration("session_check_interval", c.SessionCheckInterval),
		zap.String("metrics_addr", c.MetricsAddr),
	}
}

func maskSecret(secret string) string {
	if secret == "" {
		return "[NOT SET]"
	}
	if len(secret) <= 8 {
		return "[HIDDEN]"
	}
	return secret[:4] + "***" + secret[len(secret)-4:]
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(key, defaultValue string) (int, error) {
	s := getEnv(key, defaultValue)
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to parse int %q", key, s)
	}
	return i, nil
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	s := getEnv(key, defaultValue)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to parse duration %q", key, s)
	}
	return d, nil
}

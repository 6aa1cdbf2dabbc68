package config

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/localrivet/configurator"

	"github.com/localrivet/textsummary/internal/errortypes"
	"github.com/localrivet/textsummary/internal/logger"
	"github.com/localrivet/textsummary/internal/summarizer"
)

// Config represents the TextSummary configuration
type Config struct {
	// Summarizer contains summarization-related configuration.
	Summarizer struct {
		// CompressionRatio is the fraction of sentences kept by the extractive strategy.
		CompressionRatio float64 `json:"compression_ratio" env:"COMPRESSION_RATIO"`

		// DefaultMethod is used when a request names no method ("extractive", "abstractive", "both").
		DefaultMethod string `json:"default_method" env:"DEFAULT_METHOD" validate:"required"`

		// MinInputLength is the shortest trimmed text, in characters, a request may carry.
		MinInputLength int `json:"min_input_length" env:"MIN_INPUT_LENGTH"`

		// KeywordCount is how many keywords the abstractive strategy extracts.
		KeywordCount int `json:"keyword_count" env:"KEYWORD_COUNT" validate:"min:1"`

		// MaxKeySentences caps the keyword sentences in an abstractive summary.
		MaxKeySentences int `json:"max_key_sentences" env:"MAX_KEY_SENTENCES" validate:"min:1"`
	} `json:"summarizer"`

	// Server contains transport-related configuration.
	Server struct {
		// Transport selects how the service is exposed ("stdio", "http").
		Transport string `json:"transport" env:"TRANSPORT" validate:"required"`

		// HTTPAddr is the listen address of the HTTP API.
		HTTPAddr string `json:"http_addr" env:"HTTP_ADDR"`

		// ShutdownTimeoutSeconds bounds graceful shutdown of the HTTP API.
		ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" env:"SHUTDOWN_TIMEOUT_SECONDS"`
	} `json:"server"`

	// Logging contains logging-related configuration.
	Logging struct {
		// Level is the minimum log level to display ("debug", "info", "warn", "error").
		Level string `json:"level" env:"LOG_LEVEL" validate:"required"`

		// Format is the log format to use ("text", "json").
		Format string `json:"format" env:"LOG_FORMAT"`
	} `json:"logging"`

	// Internal state (not saved to config file)
	configPath     string       `json:"-"`
	mutex          sync.RWMutex `json:"-"`
	lastModifiedAt time.Time    `json:"-"`
}

// Default configuration values
const (
	DefaultConfigFilename  = ".textsummaryconfig"
	DefaultEnvPrefix       = "TEXTSUMMARY"
	DefaultMethod          = "both"
	DefaultMinInputLength  = 50
	DefaultTransport       = "stdio"
	DefaultHTTPAddr        = ":8080"
	DefaultShutdownTimeout = 5
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Transport names
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// NewConfig creates a new Config instance with default values
func NewConfig() *Config {
	config := &Config{}
	config.Summarizer.CompressionRatio = summarizer.DefaultCompressionRatio
	config.Summarizer.DefaultMethod = DefaultMethod
	config.Summarizer.MinInputLength = DefaultMinInputLength
	config.Summarizer.KeywordCount = summarizer.DefaultKeywordCount
	config.Summarizer.MaxKeySentences = summarizer.DefaultMaxKeySentences
	config.Server.Transport = DefaultTransport
	config.Server.HTTPAddr = DefaultHTTPAddr
	config.Server.ShutdownTimeoutSeconds = DefaultShutdownTimeout
	config.Logging.Level = DefaultLogLevel
	config.Logging.Format = DefaultLogFormat
	return config
}

// LoadConfig loads the configuration from the default path
func LoadConfig() (*Config, error) {
	return LoadConfigWithPath(DefaultConfigFilename)
}

// LoadConfigWithPath loads the configuration from a specific path. A missing
// file is not an error: defaults and environment overrides still apply.
func LoadConfigWithPath(configPath string) (*Config, error) {
	// stdout carries the MCP transport, so configuration chatter goes to stderr
	stdLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := NewConfig()

	if configPath == "" {
		configPath = DefaultConfigFilename
	}
	if configPath == DefaultConfigFilename {
		if foundPath, err := configurator.FindConfigFile(configPath); err == nil {
			configPath = foundPath
			stdLogger.Debug("Found config file at " + foundPath)
		}
	}

	loader := configurator.New(stdLogger).
		WithProvider(configurator.NewDefaultProvider())

	if _, err := os.Stat(configPath); err == nil {
		stdLogger.Info("Loading configuration", "path", configPath)
		loader = loader.WithProvider(configurator.NewFileProvider(configPath))
	} else {
		stdLogger.Info("Config file not found, using default configuration", "path", configPath)
	}

	loader = loader.
		WithProvider(configurator.NewEnvProvider(DefaultEnvPrefix)).
		WithValidator(configurator.NewDefaultValidator())

	if err := loader.Load(context.Background(), cfg); err != nil {
		return nil, errortypes.ConfigError(err, "failed to load configuration").
			WithField("path", configPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.configPath = configPath
	cfg.lastModifiedAt = time.Now()

	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var problems []string

	ratio := c.Summarizer.CompressionRatio
	if math.IsNaN(ratio) || ratio <= 0 || ratio > 1 {
		problems = append(problems, fmt.Sprintf("summarizer.compression_ratio must be in (0, 1], got %v", ratio))
	}
	if _, err := summarizer.ParseMethod(c.Summarizer.DefaultMethod); err != nil {
		problems = append(problems, "summarizer.default_method: "+err.Error())
	}
	if c.Summarizer.MinInputLength < 0 {
		problems = append(problems, "summarizer.min_input_length must not be negative")
	}
	if c.Summarizer.KeywordCount < 1 {
		problems = append(problems, "summarizer.keyword_count must be at least 1")
	}
	if c.Summarizer.MaxKeySentences < 1 {
		problems = append(problems, "summarizer.max_key_sentences must be at least 1")
	}

	switch strings.ToLower(c.Server.Transport) {
	case TransportStdio:
	case TransportHTTP:
		if c.Server.HTTPAddr == "" {
			problems = append(problems, "server.http_addr is required for the http transport")
		}
	default:
		problems = append(problems, fmt.Sprintf("server.transport must be %q or %q, got %q",
			TransportStdio, TransportHTTP, c.Server.Transport))
	}
	if c.Server.ShutdownTimeoutSeconds < 0 {
		problems = append(problems, "server.shutdown_timeout_seconds must not be negative")
	}

	if _, err := logger.ParseFormat(c.Logging.Format); err != nil {
		problems = append(problems, "logging.format: "+err.Error())
	}

	if len(problems) > 0 {
		return errortypes.ConfigError(
			fmt.Errorf("%s", strings.Join(problems, "; ")),
			"invalid configuration",
		)
	}
	return nil
}

// ShutdownTimeout returns the graceful shutdown bound as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

// SaveToFile saves the configuration to the specified file
func (c *Config) SaveToFile(path string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errortypes.ConfigError(err, "failed to create directory").WithField("path", dir)
	}

	if err := configurator.SaveToFile(c, path, configurator.FormatJSON); err != nil {
		return errortypes.ConfigError(err, "failed to save configuration").WithField("path", path)
	}

	c.configPath = path
	c.lastModifiedAt = time.Now()

	return nil
}

// Save saves the configuration to the last used file path
func (c *Config) Save() error {
	if c.configPath == "" {
		c.configPath = DefaultConfigFilename
	}
	return c.SaveToFile(c.configPath)
}

// GetConfigPath returns the path of the currently loaded configuration file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// LastModified reports when the configuration was last loaded or saved.
func (c *Config) LastModified() time.Time {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.lastModifiedAt
}

// EngineOptions converts the summarizer section into engine options.
func (c *Config) EngineOptions() summarizer.Options {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return summarizer.Options{
		CompressionRatio: c.Summarizer.CompressionRatio,
		KeywordCount:     c.Summarizer.KeywordCount,
		MaxKeySentences:  c.Summarizer.MaxKeySentences,
	}
}

// NewSlogLogger creates a slog.Logger writing to stderr based on the
// logging section.
func NewSlogLogger(cfg *Config) *slog.Logger {
	level := slog.LevelInfo
	switch logger.ParseLevel(cfg.Logging.Level) {
	case logger.DEBUG:
		level = slog.LevelDebug
	case logger.WARN:
		level = slog.LevelWarn
	case logger.ERROR, logger.FATAL, logger.DISABLED:
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if format, _ := logger.ParseFormat(cfg.Logging.Format); format == logger.JSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// NewLogger creates an internal logger based on the logging section.
func NewLogger(cfg *Config) *logger.Logger {
	format, _ := logger.ParseFormat(cfg.Logging.Format)
	lc := logger.DefaultConfig()
	lc.Level = logger.ParseLevel(cfg.Logging.Level)
	lc.Format = format
	return logger.New(lc)
}

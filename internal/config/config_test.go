package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/localrivet/textsummary/internal/errortypes"
	"github.com/localrivet/textsummary/internal/summarizer"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Summarizer.CompressionRatio != summarizer.DefaultCompressionRatio {
		t.Errorf("CompressionRatio = %v, want %v", cfg.Summarizer.CompressionRatio, summarizer.DefaultCompressionRatio)
	}
	if cfg.Summarizer.DefaultMethod != DefaultMethod {
		t.Errorf("DefaultMethod = %q, want %q", cfg.Summarizer.DefaultMethod, DefaultMethod)
	}
	if cfg.Summarizer.MinInputLength != DefaultMinInputLength {
		t.Errorf("MinInputLength = %d, want %d", cfg.Summarizer.MinInputLength, DefaultMinInputLength)
	}
	if cfg.Server.Transport != TransportStdio || cfg.Server.HTTPAddr != DefaultHTTPAddr {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.ShutdownTimeout() != 5*time.Second {
		t.Errorf("ShutdownTimeout() = %v, want 5s", cfg.ShutdownTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"ratio of one", func(c *Config) { c.Summarizer.CompressionRatio = 1 }, false},
		{"zero ratio", func(c *Config) { c.Summarizer.CompressionRatio = 0 }, true},
		{"ratio above one", func(c *Config) { c.Summarizer.CompressionRatio = 1.2 }, true},
		{"unknown method", func(c *Config) { c.Summarizer.DefaultMethod = "headline" }, true},
		{"negative min length", func(c *Config) { c.Summarizer.MinInputLength = -1 }, true},
		{"no keywords", func(c *Config) { c.Summarizer.KeywordCount = 0 }, true},
		{"no key sentences", func(c *Config) { c.Summarizer.MaxKeySentences = 0 }, true},
		{"http transport", func(c *Config) { c.Server.Transport = "HTTP" }, false},
		{"http without address", func(c *Config) { c.Server.Transport = "http"; c.Server.HTTPAddr = "" }, true},
		{"unknown transport", func(c *Config) { c.Server.Transport = "grpc" }, true},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errortypes.IsConfigError(err) {
				t.Errorf("Validate() error type = %v, want config error", err)
			}
		})
	}
}

func TestLoadConfigWithPath_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	cfg, err := LoadConfigWithPath(path)
	if err != nil {
		t.Fatalf("LoadConfigWithPath() error = %v", err)
	}
	if cfg.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", cfg.GetConfigPath(), path)
	}
	if cfg.Summarizer.KeywordCount != summarizer.DefaultKeywordCount {
		t.Errorf("KeywordCount = %d, want %d", cfg.Summarizer.KeywordCount, summarizer.DefaultKeywordCount)
	}
	if cfg.LastModified().IsZero() {
		t.Error("LastModified() is zero after loading")
	}
}

func TestLoadConfigWithPath_FileAndEnvLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "summarizer": {"compression_ratio": 0.6, "keyword_count": 5},
  "server": {"transport": "http"}
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		env        map[string]string
		wantRatio  float64
		wantMethod string
	}{
		{
			name:       "file values over defaults",
			wantRatio:  0.6,
			wantMethod: DefaultMethod,
		},
		{
			name: "environment over file",
			env: map[string]string{
				DefaultEnvPrefix + "_COMPRESSION_RATIO": "0.5",
				DefaultEnvPrefix + "_DEFAULT_METHOD":    "extractive",
			},
			wantRatio:  0.5,
			wantMethod: "extractive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfigWithPath(path)
			if err != nil {
				t.Fatalf("LoadConfigWithPath() error = %v", err)
			}
			if cfg.Summarizer.CompressionRatio != tt.wantRatio {
				t.Errorf("CompressionRatio = %v, want %v", cfg.Summarizer.CompressionRatio, tt.wantRatio)
			}
			if cfg.Summarizer.DefaultMethod != tt.wantMethod {
				t.Errorf("DefaultMethod = %q, want %q", cfg.Summarizer.DefaultMethod, tt.wantMethod)
			}
			if cfg.Summarizer.KeywordCount != 5 {
				t.Errorf("KeywordCount = %d, want 5 from the file", cfg.Summarizer.KeywordCount)
			}
			if cfg.Server.Transport != TransportHTTP {
				t.Errorf("Transport = %q, want %q", cfg.Server.Transport, TransportHTTP)
			}
			if cfg.Summarizer.MaxKeySentences != summarizer.DefaultMaxKeySentences {
				t.Errorf("MaxKeySentences = %d, want default %d", cfg.Summarizer.MaxKeySentences, summarizer.DefaultMaxKeySentences)
			}
		})
	}
}

func TestLoadConfigWithPath_InvalidEnvValue(t *testing.T) {
	t.Setenv(DefaultEnvPrefix+"_COMPRESSION_RATIO", "1.5")

	_, err := LoadConfigWithPath(filepath.Join(t.TempDir(), "absent.json"))
	if !errortypes.IsConfigError(err) {
		t.Errorf("LoadConfigWithPath() error = %v, want config error", err)
	}
}

func TestConfig_SaveToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", DefaultConfigFilename)
	cfg := NewConfig()

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if cfg.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", cfg.GetConfigPath(), path)
	}
}

func TestConfig_EngineOptions(t *testing.T) {
	cfg := NewConfig()
	cfg.Summarizer.CompressionRatio = 0.5
	cfg.Summarizer.KeywordCount = 4

	opts := cfg.EngineOptions()
	if opts.CompressionRatio != 0.5 || opts.KeywordCount != 4 || opts.MaxKeySentences != summarizer.DefaultMaxKeySentences {
		t.Errorf("EngineOptions() = %+v", opts)
	}
}

func TestNewLoggers(t *testing.T) {
	cfg := NewConfig()
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	if l := NewSlogLogger(cfg); l == nil {
		t.Error("NewSlogLogger() returned nil")
	}
	if l := NewLogger(cfg); l == nil {
		t.Error("NewLogger() returned nil")
	}
}

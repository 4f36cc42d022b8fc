package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Version is the sentir release version.
const Version = "0.1.0"

// Config holds all sentir configuration.
type Config struct {
	Server   ServerConfig
	Provider ProviderConfig
	Log      LogConfig
}

// ServerConfig holds HTTP host settings.
type ServerConfig struct {
	Addr    string
	Workers int  // max concurrent inference calls
	Preload bool // acquire the model at startup instead of on first request
}

// ProviderConfig holds model-backend settings.
type ProviderConfig struct {
	Backend    string // "onnx" or "hf"
	ModelPath  string
	VocabPath  string
	HFEndpoint string
	HFToken    string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "text" or "json"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Addr:    getenv("SENTIR_ADDR", ":8080"),
			Workers: getenvInt("SENTIR_WORKERS", 4),
			Preload: getenvBool("SENTIR_PRELOAD", false),
		},
		Provider: ProviderConfig{
			Backend:    getenv("SENTIR_PROVIDER", "onnx"),
			ModelPath:  getenv("SENTIR_MODEL_PATH", "models/model.onnx"),
			VocabPath:  getenv("SENTIR_VOCAB_PATH", "models/vocab.txt"),
			HFEndpoint: os.Getenv("SENTIR_HF_ENDPOINT"),
			HFToken:    os.Getenv("SENTIR_HF_TOKEN"),
		},
		Log: LogConfig{
			Level:  getenv("SENTIR_LOG_LEVEL", "info"),
			Format: getenv("SENTIR_LOG_FORMAT", "text"),
		},
	}
}

// Validate checks the configuration and returns all problems joined, so a
// misconfigured deployment surfaces every issue at once.
func (c Config) Validate() error {
	var errs []error

	if c.Server.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Server.Workers))
	}

	switch c.Provider.Backend {
	case "onnx":
		if _, err := os.Stat(c.Provider.ModelPath); err != nil {
			errs = append(errs, fmt.Errorf("model file not found: %s", c.Provider.ModelPath))
		}
		if _, err := os.Stat(c.Provider.VocabPath); err != nil {
			errs = append(errs, fmt.Errorf("vocab file not found: %s", c.Provider.VocabPath))
		}
	case "hf":
		if c.Provider.HFEndpoint == "" {
			errs = append(errs, errors.New("SENTIR_HF_ENDPOINT is required for the hf backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid backend %q (must be \"onnx\" or \"hf\")", c.Provider.Backend))
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q (must be \"text\" or \"json\")", c.Log.Format))
	}

	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

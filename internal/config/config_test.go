package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SENTIR_ADDR", "SENTIR_WORKERS", "SENTIR_PRELOAD",
		"SENTIR_PROVIDER", "SENTIR_MODEL_PATH", "SENTIR_VOCAB_PATH",
		"SENTIR_HF_ENDPOINT", "SENTIR_HF_TOKEN",
		"SENTIR_LOG_LEVEL", "SENTIR_LOG_FORMAT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected default addr ':8080', got %q", cfg.Server.Addr)
	}
	if cfg.Server.Workers != 4 {
		t.Fatalf("expected default workers=4, got %d", cfg.Server.Workers)
	}
	if cfg.Server.Preload {
		t.Fatal("expected default Preload=false")
	}
	if cfg.Provider.Backend != "onnx" {
		t.Fatalf("expected default backend 'onnx', got %q", cfg.Provider.Backend)
	}
	if cfg.Provider.ModelPath != "models/model.onnx" {
		t.Fatalf("expected default model path, got %q", cfg.Provider.ModelPath)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("expected default log config info/text, got %+v", cfg.Log)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SENTIR_ADDR", ":9000")
	t.Setenv("SENTIR_WORKERS", "8")
	t.Setenv("SENTIR_PRELOAD", "true")
	t.Setenv("SENTIR_PROVIDER", "hf")
	t.Setenv("SENTIR_HF_ENDPOINT", "https://api.example.com/models/go-emotions")
	t.Setenv("SENTIR_HF_TOKEN", "tok_123")
	t.Setenv("SENTIR_LOG_LEVEL", "debug")
	t.Setenv("SENTIR_LOG_FORMAT", "json")

	cfg := Load()

	if cfg.Server.Addr != ":9000" {
		t.Fatalf("expected addr ':9000', got %q", cfg.Server.Addr)
	}
	if cfg.Server.Workers != 8 {
		t.Fatalf("expected workers=8, got %d", cfg.Server.Workers)
	}
	if !cfg.Server.Preload {
		t.Fatal("expected Preload=true")
	}
	if cfg.Provider.Backend != "hf" || cfg.Provider.HFToken != "tok_123" {
		t.Fatalf("expected hf provider config, got %+v", cfg.Provider)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("expected debug/json log config, got %+v", cfg.Log)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SENTIR_WORKERS", "many")
	t.Setenv("SENTIR_PRELOAD", "sim")

	cfg := Load()

	if cfg.Server.Workers != 4 {
		t.Fatalf("expected fallback workers=4 for invalid value, got %d", cfg.Server.Workers)
	}
	if cfg.Server.Preload {
		t.Fatal("expected fallback Preload=false for invalid value")
	}
}

// validConfig returns a Config with real temp files so file-existence checks pass.
func validConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"model.onnx", "vocab.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return Config{
		Server: ServerConfig{Addr: ":8080", Workers: 4},
		Provider: ProviderConfig{
			Backend:   "onnx",
			ModelPath: filepath.Join(dir, "model.onnx"),
			VocabPath: filepath.Join(dir, "vocab.txt"),
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected nil error for valid config, got: %v", err)
	}
}

func TestValidate_BadWorkers(t *testing.T) {
	cfg := validConfig(t)
	cfg.Server.Workers = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for workers=0")
	}
	if !strings.Contains(err.Error(), "workers") {
		t.Fatalf("expected error to mention 'workers', got: %v", err)
	}
}

func TestValidate_BadBackend(t *testing.T) {
	cfg := validConfig(t)
	cfg.Provider.Backend = "tensorflow"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid backend")
	}
	if !strings.Contains(err.Error(), "backend") {
		t.Fatalf("expected error to mention 'backend', got: %v", err)
	}
}

func TestValidate_MissingModelFile(t *testing.T) {
	cfg := validConfig(t)
	cfg.Provider.ModelPath = "/nonexistent/model.onnx"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing model file")
	}
	if !strings.Contains(err.Error(), "model") {
		t.Fatalf("expected error to mention 'model', got: %v", err)
	}
}

func TestValidate_MissingHFEndpoint(t *testing.T) {
	cfg := validConfig(t)
	cfg.Provider.Backend = "hf"
	cfg.Provider.HFEndpoint = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for hf backend without endpoint")
	}
	if !strings.Contains(err.Error(), "SENTIR_HF_ENDPOINT") {
		t.Fatalf("expected error to mention 'SENTIR_HF_ENDPOINT', got: %v", err)
	}
}

func TestValidate_HFBackendSkipsFileChecks(t *testing.T) {
	cfg := validConfig(t)
	cfg.Provider.Backend = "hf"
	cfg.Provider.HFEndpoint = "https://api.example.com/models/go-emotions"
	cfg.Provider.ModelPath = "/nonexistent/model.onnx"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("hf backend should not require local model files, got: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Server.Workers = -1
	cfg.Provider.Backend = "loud"
	cfg.Log.Format = "yaml"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for multiple bad fields")
	}
	msg := err.Error()
	for _, want := range []string{"workers", "backend", "log format"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected error to mention %q, got: %v", want, msg)
		}
	}
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name     string
		envVal   string
		set      bool
		fallback int
		want     int
	}{
		{"empty uses fallback", "", false, 4, 4},
		{"valid int", "16", true, 4, 16},
		{"zero", "0", true, 4, 0},
		{"invalid falls back", "abc", true, 4, 4},
		{"negative", "-1", true, 4, -1},
	}

	const key = "SENTIR_TEST_GETENVINT"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv(key, tt.envVal)
			} else {
				os.Unsetenv(key)
			}
			got := getenvInt(key, tt.fallback)
			if got != tt.want {
				t.Errorf("getenvInt(%q, %d) = %d, want %d", tt.envVal, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestVersion_IsSet(t *testing.T) {
	if Version == "" {
		t.Fatal("expected non-empty Version constant")
	}
}

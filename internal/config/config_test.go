package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level 'info', got %q", cfg.Log.Level)
	}
	if cfg.Sort.Workers != 0 {
		t.Errorf("expected default workers 0, got %d", cfg.Sort.Workers)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("FACE_SORTER_LOG_LEVEL", "debug")
	t.Setenv("FACE_SORTER_CACHE_PATH", "/tmp/faces.db")
	t.Setenv("FACE_SORTER_WORKERS", "8")

	cfg := Load()

	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level 'debug', got %q", cfg.Log.Level)
	}
	if cfg.Cache.Path != "/tmp/faces.db" {
		t.Errorf("expected cache path '/tmp/faces.db', got %q", cfg.Cache.Path)
	}
	if cfg.Sort.Workers != 8 {
		t.Errorf("expected workers 8, got %d", cfg.Sort.Workers)
	}
}

func TestEnvInt_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not a number", value: "many"},
		{name: "negative", value: "-3"},
		{name: "zero", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FACE_SORTER_WORKERS", tt.value)
			if got := envInt("FACE_SORTER_WORKERS", 4); got != 4 {
				t.Errorf("expected fallback 4, got %d", got)
			}
		})
	}
}

package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/storefront/internal/config"
)

func TestLoadClient_Defaults(t *testing.T) {
	cfg, err := config.LoadClient(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadClient() error = %v", err)
	}
	if cfg.BaseURL != "http://localhost:8080/api" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.TimeoutDuration() != 10*time.Second || cfg.PageSize != 10 {
		t.Errorf("timeout = %v pageSize = %d", cfg.TimeoutDuration(), cfg.PageSize)
	}
	if cfg.Logging.Output != config.DefaultClientLog {
		t.Errorf("Logging.Output = %q, want %q", cfg.Logging.Output, config.DefaultClientLog)
	}
}

func TestLoadClient_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "console.toml", `base_url = "http://shop.internal/api"
page_size = 25

[logging]
level = "debug"
`)
	t.Setenv(config.EnvAPIBaseURL, "https://admin.example.com/api")

	cfg, err := config.LoadClient(filepath.Join(dir, "console.toml"))
	if err != nil {
		t.Fatalf("LoadClient() error = %v", err)
	}
	if cfg.BaseURL != "https://admin.example.com/api" {
		t.Errorf("BaseURL = %q, want env override", cfg.BaseURL)
	}
	if cfg.PageSize != 25 || cfg.Logging.Level != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadClient_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad url", `base_url = "ftp://nowhere"`},
		{"bad timeout", `timeout = "soon"`},
		{"bad page size", `page_size = -1`},
		{"bad toml", `base_url = `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, "console.toml", tt.content)
			if _, err := config.LoadClient(filepath.Join(dir, "console.toml")); err == nil {
				t.Error("LoadClient() error = nil, want failure")
			}
		})
	}
}

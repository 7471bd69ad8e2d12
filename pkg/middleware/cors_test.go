package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/storefront/pkg/middleware"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		cfg        middleware.CORSConfig
		origin     string
		wantOrigin string
	}{
		{
			"disabled",
			middleware.CORSConfig{Enabled: false, Origins: []string{"http://localhost:3000"}},
			"http://localhost:3000",
			"",
		},
		{
			"no origins",
			middleware.CORSConfig{Enabled: true},
			"http://localhost:3000",
			"",
		},
		{
			"allowed origin",
			middleware.CORSConfig{Enabled: true, Origins: []string{"http://localhost:3000"}},
			"http://localhost:3000",
			"http://localhost:3000",
		},
		{
			"disallowed origin",
			middleware.CORSConfig{Enabled: true, Origins: []string{"http://localhost:3000"}},
			"http://evil.example",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Finalize(nil)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()

			middleware.CORS(&cfg)(okHandler()).ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "DELETE"},
		AllowCredentials: true,
	}
	cfg.Finalize(nil)

	called := false
	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if called {
		t.Error("preflight should not reach the handler")
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, DELETE" {
		t.Errorf("Access-Control-Allow-Methods = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Access-Control-Allow-Credentials = %q", got)
	}
}

func TestCORSConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_CORS_ENABLED", "true")
	t.Setenv("TEST_CORS_ORIGINS", "http://localhost:3000, http://localhost:8080")

	cfg := &middleware.CORSConfig{}
	env := &middleware.CORSEnv{
		Enabled: "TEST_CORS_ENABLED",
		Origins: "TEST_CORS_ORIGINS",
	}

	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if !cfg.Enabled || len(cfg.Origins) != 2 {
		t.Errorf("Finalize() = %+v", cfg)
	}
	if len(cfg.AllowedMethods) == 0 || len(cfg.AllowedHeaders) == 0 || cfg.MaxAge != 3600 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestCORSConfig_Merge(t *testing.T) {
	base := middleware.CORSConfig{Origins: []string{"a"}, MaxAge: 100}
	base.Merge(&middleware.CORSConfig{Enabled: true, Origins: []string{"b", "c"}})

	if !base.Enabled || len(base.Origins) != 2 || base.MaxAge != 100 {
		t.Errorf("Merge() = %+v", base)
	}
}

package server_test

import (
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/JaimeStill/storefront/internal/config"
	"github.com/JaimeStill/storefront/internal/server"
	"github.com/JaimeStill/storefront/pkg/lifecycle"
	"github.com/JaimeStill/storefront/pkg/logging"
)

func testConfig(port int) *config.ServerConfig {
	return &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            port,
		ReadTimeout:     "5s",
		WriteTimeout:    "5s",
		ShutdownTimeout: "2s",
	}
}

func TestServer_ServesUntilShutdown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})

	lc := lifecycle.New()
	srv := server.New(testConfig(0), handler, logging.Discard())
	if err := srv.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := http.Get("http://" + srv.Addr())
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("body = %q, want ok", body)
	}

	if err := lc.Shutdown(2 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if _, err := http.Get("http://" + srv.Addr()); err == nil {
		t.Error("GET after shutdown should fail")
	}
}

func TestServer_PortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	srv := server.New(testConfig(port), http.NotFoundHandler(), logging.Discard())
	if err := srv.Start(lifecycle.New()); err == nil {
		t.Error("Start() error = nil, want listen failure")
	}
}

package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	configPath := writeCLIConfig(t, server.URL)

	out, _, err := runCLI(t, configPath, "health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	requireContains(t, out, "[OK] reachable")
}

func TestHealthCommandUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	configPath := writeCLIConfig(t, server.URL)
	server.Close()

	out, _, err := runCLI(t, configPath, "health")
	if err == nil {
		t.Fatal("expected unreachable agent to set a non-nil error")
	}
	requireContains(t, out, "[ERROR] unreachable")
}

func TestHealthCommandJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	configPath := writeCLIConfig(t, server.URL)

	out, _, err := runCLI(t, configPath, "--json", "health")
	if err != nil {
		t.Fatalf("health --json: %v", err)
	}
	requireContains(t, out, `"agent": true`)
}

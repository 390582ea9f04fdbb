package client

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/zfogg/swipefeed/pkg/config"
)

func initConfig(t *testing.T, baseURL string) {
	t.Helper()
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("config init: %v", err)
	}
	config.Set("api.base_url", baseURL)
	t.Cleanup(func() {
		config.Set("api.base_url", "http://localhost:8787")
		httpClient = nil
	})
}

// TestGetClientSingleton validates that GetClient returns same instance
func TestGetClientSingleton(t *testing.T) {
	initConfig(t, "http://localhost:8787")
	httpClient = nil

	client1 := GetClient()
	client2 := GetClient()

	if client1 == nil {
		t.Fatal("GetClient should not return nil")
	}
	if client1 != client2 {
		t.Error("GetClient should return same instance")
	}
}

// TestRequestHeaders validates auth, user agent and request id
func TestRequestHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	initConfig(t, server.URL)
	httpClient = nil
	SetAuthToken("tok_123")

	if _, err := GetClient().R().Get("/ping"); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if got.Get("Authorization") != "Bearer tok_123" {
		t.Errorf("Authorization: got %q", got.Get("Authorization"))
	}
	if got.Get("User-Agent") != userAgent {
		t.Errorf("User-Agent: got %q", got.Get("User-Agent"))
	}
	if len(got.Get("X-Request-ID")) != 36 {
		t.Errorf("X-Request-ID should be a uuid, got %q", got.Get("X-Request-ID"))
	}
}

// TestClearAuthToken validates the header is dropped
func TestClearAuthToken(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	initConfig(t, server.URL)
	SetAuthToken("tok_123")
	ClearAuthToken()

	if _, err := GetClient().R().Get("/ping"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if auth != "" {
		t.Errorf("Authorization should be cleared, got %q", auth)
	}
}

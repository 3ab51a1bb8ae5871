package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ArthurB95/linklink/pkg/adapters/backend"
	"github.com/ArthurB95/linklink/pkg/adapters/handler"
	"github.com/ArthurB95/linklink/pkg/config"
	"github.com/ArthurB95/linklink/pkg/core/services"
	"go.uber.org/zap"
)

// fakeLinkLinkAPI stands in for the real backend: one short code and one
// public bio page.
func fakeLinkLinkAPI(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /public/links/{code}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("code") != "promo" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Short link not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":          int64(1),
			"originalUrl": "https://example.com/campaign",
			"shortUrl":    "promo",
		})
	})
	mux.HandleFunc("GET /public/bio-pages/{handle}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("handle") != "arthur" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    int64(1),
			"title": "Arthur",
			"bio":   "links and things",
			"theme": "dark",
			"links": []map[string]interface{}{
				{"id": int64(7), "title": "Blog", "url": "https://blog.example.com"},
			},
		})
	})
	return httptest.NewServer(mux)
}

func newGateway(t *testing.T, apiURL string) *httptest.Server {
	cfg := &config.Config{
		APIBaseURL: apiURL,
		JWTSecret:  "testsecret",
	}
	logger := zap.NewNop()
	client := backend.New(cfg.APIBaseURL, nil)
	resolver := services.NewHandleResolver(client, logger)
	return httptest.NewServer(handler.NewRouter(cfg, resolver, client, logger))
}

func TestGateway(t *testing.T) {
	api := fakeLinkLinkAPI(t)
	defer api.Close()
	gateway := newGateway(t, api.URL)
	defer gateway.Close()

	// Redirects must not be followed so the 302 is observable.
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	// TEST 1: short code redirects hard
	resp, err := client.Get(gateway.URL + "/promo")
	if err != nil {
		t.Fatalf("GET /promo: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Errorf("Expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "https://example.com/campaign" {
		t.Errorf("Location = %q", loc)
	}

	// TEST 2: profile handle renders themed HTML
	resp, err = client.Get(gateway.URL + "/arthur")
	if err != nil {
		t.Fatalf("GET /arthur: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	for _, want := range []string{"Arthur", "theme-DARK", "https://blog.example.com"} {
		if !strings.Contains(body, want) {
			t.Errorf("profile body missing %q", want)
		}
	}

	// TEST 3: unknown handle is a terminal 404 page
	resp, err = client.Get(gateway.URL + "/nobody")
	if err != nil {
		t.Fatalf("GET /nobody: %v", err)
	}
	body = readBody(t, resp)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Page not found") {
		t.Error("missing not-found page")
	}

	// TEST 4: preview requires a session
	resp, err = client.Get(gateway.URL + "/preview/arthur")
	if err != nil {
		t.Fatalf("GET /preview/arthur: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTemporaryRedirect {
		t.Errorf("Expected 307 to login, got %d", resp.StatusCode)
	}

	// TEST 5: healthz
	resp, err = client.Get(gateway.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

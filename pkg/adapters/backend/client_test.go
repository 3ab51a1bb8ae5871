package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ArthurB95/linklink/pkg/core/domain"
)

type staticTokens struct{ token string }

func (s staticTokens) Token(ctx context.Context) (string, error)     { return s.token, nil }
func (s staticTokens) SaveToken(ctx context.Context, t string) error { return nil }
func (s staticTokens) ClearToken(ctx context.Context) error          { return nil }

func TestBearerHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(domain.User{ID: 1, Username: "arthur"})
	}))
	defer server.Close()

	c := New(server.URL, staticTokens{token: "tok123"})
	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok123")
	}
	if user.Username != "arthur" {
		t.Errorf("Username = %q", user.Username)
	}
}

func TestPublicCallsCarryNoBearer(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(domain.BioPage{Title: "Arthur"})
	}))
	defer server.Close()

	c := New(server.URL, staticTokens{token: "tok123"})
	if _, err := c.PublicBioPage(context.Background(), "arthur"); err != nil {
		t.Fatalf("PublicBioPage failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("public endpoint sent Authorization %q", gotAuth)
	}
}

func TestCreateShortenedLinkOmitsBlankSlug(t *testing.T) {
	tests := []struct {
		name     string
		slug     string
		wantKey  bool
		wantSlug string
	}{
		{name: "blank slug omitted", slug: "", wantKey: false},
		{name: "slug sent when set", slug: "my-link", wantKey: true, wantSlug: "my-link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload map[string]interface{}
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				_ = json.Unmarshal(body, &payload)
				_ = json.NewEncoder(w).Encode(domain.ShortenedLink{ID: 1})
			}))
			defer server.Close()

			c := New(server.URL, staticTokens{})
			if _, err := c.CreateShortenedLink(context.Background(), "https://example.com", tt.slug); err != nil {
				t.Fatalf("CreateShortenedLink failed: %v", err)
			}

			slug, present := payload["customSlug"]
			if present != tt.wantKey {
				t.Fatalf("customSlug present = %v, want %v (payload %v)", present, tt.wantKey, payload)
			}
			if tt.wantKey && slug != tt.wantSlug {
				t.Errorf("customSlug = %v, want %q", slug, tt.wantSlug)
			}
		})
	}
}

func TestListToleratesBothShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "raw array", body: `[{"id":1},{"id":2}]`, want: 2},
		{name: "paginated envelope", body: `{"content":[{"id":1}],"totalElements":1}`, want: 1},
		{name: "empty envelope", body: `{"totalElements":0}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := New(server.URL, staticTokens{})
			links, err := c.ListShortenedLinks(context.Background())
			if err != nil {
				t.Fatalf("ListShortenedLinks failed: %v", err)
			}
			if len(links) != tt.want {
				t.Errorf("got %d links, want %d", len(links), tt.want)
			}
		})
	}
}

func TestErrorCarriesBackendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Slug already taken"}`))
	}))
	defer server.Close()

	c := New(server.URL, staticTokens{})
	_, err := c.CreateShortenedLink(context.Background(), "https://example.com", "taken")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T, want *APIError", err)
	}
	if apiErr.UserMessage() != "Slug already taken" {
		t.Errorf("UserMessage = %q", apiErr.UserMessage())
	}
}

func TestNotFoundUnwraps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := New(server.URL, staticTokens{})
	_, err := c.PublicBioPage(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error %v does not unwrap to ErrNotFound", err)
	}
}

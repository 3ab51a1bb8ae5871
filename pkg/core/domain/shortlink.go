package domain

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// ShortenedLink is a user-owned short URL. ClickCount is server-owned and
// ShortURL is server-assigned unless a custom slug was requested.
type ShortenedLink struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title,omitempty"`
	OriginalURL string    `json:"originalUrl"`
	ShortURL    string    `json:"shortUrl"`
	ClickCount  int64     `json:"clickCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

var ErrInvalidURL = errors.New("URL must be absolute, including http:// or https://")

// ValidateLongURL rejects anything that does not parse as an absolute URL.
// Runs before any remote call is made.
func ValidateLongURL(raw string) error {
	if raw == "" {
		return ErrInvalidURL
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return ErrInvalidURL
	}
	return nil
}

// NormalizeSlug lowercases and strips every character outside [a-z0-9-].
// Applied continuously while the user types, so the field never holds an
// invalid character at submit time. Idempotent.
func NormalizeSlug(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatShortURL makes a displayable, openable URL out of whatever shape the
// backend stored: absolute URLs pass through, bare localhost hosts get a
// scheme, bare codes are resolved against the redirect base.
func FormatShortURL(stored, redirectBaseURL string) string {
	switch {
	case stored == "":
		return ""
	case strings.HasPrefix(stored, "http://") || strings.HasPrefix(stored, "https://"):
		return stored
	case strings.HasPrefix(stored, "localhost"):
		return "http://" + stored
	default:
		return strings.TrimRight(redirectBaseURL, "/") + "/" + stored
	}
}

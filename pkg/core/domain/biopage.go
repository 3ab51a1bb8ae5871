package domain

import (
	"strings"
	"time"
	"unicode"
)

// Theme is the closed set of presentation themes. The backend stores themes
// as freeform strings; NormalizeTheme is the only way wire values enter this
// set, so rendering code never sees the open string form.
type Theme string

const (
	ThemeGradient Theme = "GRADIENT"
	ThemeMinimal  Theme = "MINIMAL"
	ThemeDark     Theme = "DARK"
)

// NormalizeTheme maps any backend theme string into the closed Theme set.
// Matching is case-insensitive and trimmed; substring matches cover values
// like "Dark Mode". It is total and idempotent: unrecognized or absent
// values become ThemeGradient.
func NormalizeTheme(raw string) Theme {
	t := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(t, string(ThemeDark)):
		return ThemeDark
	case strings.Contains(t, string(ThemeMinimal)):
		return ThemeMinimal
	default:
		return ThemeGradient
	}
}

// BioLink is a single outbound link on a bio page. ID is zero before the
// first save; ClickCount is server-owned.
type BioLink struct {
	ID         int64  `json:"id,omitempty"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Position   int    `json:"position,omitempty"`
	IsActive   bool   `json:"isActive,omitempty"`
	ClickCount int64  `json:"clickCount,omitempty"`
}

// BioLinkPatch is a partial link update. Nil fields are omitted from the
// payload so the backend only touches what changed.
type BioLinkPatch struct {
	Title    *string `json:"title,omitempty"`
	URL      *string `json:"url,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// BioPage is the user's public profile page. At most one QRCode is bound as
// CustomQRCode at a time.
type BioPage struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Bio          string     `json:"bio"`
	AvatarURL    string     `json:"avatarUrl"`
	Theme        string     `json:"theme"`
	IsPublic     bool       `json:"isPublic"`
	ViewCount    int64      `json:"viewCount"`
	Links        []BioLink  `json:"links"`
	CustomQRCode *QRCode    `json:"customQRCode,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// BioPagePatch is a partial profile update.
type BioPagePatch struct {
	Title     *string `json:"title,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	Theme     *string `json:"theme,omitempty"`
	IsPublic  *bool   `json:"isPublic,omitempty"`
}

// AvatarInitial is the fallback glyph shown when the avatar image is missing
// or fails to load: the first character of the title, uppercased.
func (p BioPage) AvatarInitial() string {
	for _, r := range p.Title {
		return string(unicode.ToUpper(r))
	}
	return ""
}

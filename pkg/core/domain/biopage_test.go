package domain

import "testing"

func TestNormalizeTheme(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Theme
	}{
		{name: "canonical dark", raw: "DARK", want: ThemeDark},
		{name: "lowercase", raw: "dark", want: ThemeDark},
		{name: "freeform variant", raw: "Dark Mode", want: ThemeDark},
		{name: "padded", raw: "  minimal ", want: ThemeMinimal},
		{name: "canonical minimal", raw: "MINIMAL", want: ThemeMinimal},
		{name: "canonical gradient", raw: "GRADIENT", want: ThemeGradient},
		{name: "unknown falls back", raw: "neon", want: ThemeGradient},
		{name: "empty falls back", raw: "", want: ThemeGradient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTheme(tt.raw); got != tt.want {
				t.Errorf("NormalizeTheme(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeThemeIdempotent(t *testing.T) {
	for _, raw := range []string{"Dark Mode", "minimal", "whatever", ""} {
		once := NormalizeTheme(raw)
		if twice := NormalizeTheme(string(once)); twice != once {
			t.Errorf("NormalizeTheme not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestAvatarInitial(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "arthur", want: "A"},
		{title: "Link.Link", want: "L"},
		{title: "éclair", want: "É"},
		{title: "", want: ""},
	}

	for _, tt := range tests {
		page := BioPage{Title: tt.title}
		if got := page.AvatarInitial(); got != tt.want {
			t.Errorf("AvatarInitial(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

package sqlite

import (
	"context"
	"testing"
)

func newMemoryStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestTokenRoundTrip(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	token, err := store.Token(ctx)
	if err != nil {
		t.Fatalf("Token on empty store: %v", err)
	}
	if token != "" {
		t.Errorf("empty store returned token %q", token)
	}

	if err := store.SaveToken(ctx, "tok123"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	token, err = store.Token(ctx)
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "tok123" {
		t.Errorf("Token = %q, want %q", token, "tok123")
	}

	// Saving again overwrites instead of duplicating.
	if err := store.SaveToken(ctx, "tok456"); err != nil {
		t.Fatalf("SaveToken overwrite: %v", err)
	}
	token, _ = store.Token(ctx)
	if token != "tok456" {
		t.Errorf("Token after overwrite = %q, want %q", token, "tok456")
	}

	if err := store.ClearToken(ctx); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	token, _ = store.Token(ctx)
	if token != "" {
		t.Errorf("Token after clear = %q, want empty", token)
	}
}

func TestGetSetArbitraryKeys(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "last_handle", "arthur"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, err := store.Get(ctx, "last_handle")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "arthur" {
		t.Errorf("Get = %q, want %q", value, "arthur")
	}

	missing, err := store.Get(ctx, "never_set")
	if err != nil {
		t.Fatalf("Get missing key: %v", err)
	}
	if missing != "" {
		t.Errorf("missing key returned %q", missing)
	}
}

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	if cfg.DBPath != "brightside.sqlite" {
		t.Fatalf("unexpected db path: %q", cfg.DBPath)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected an error without JWT_SECRET")
	}
}

func TestResolveAPIKeyPrecedence(t *testing.T) {
	t.Setenv("BRIGHTSIDE_API_KEY", "specific")
	t.Setenv("OPENAI_API_KEY", "generic")
	t.Setenv("API_KEY", "fallback")

	if got := resolveAPIKey(); got != "specific" {
		t.Fatalf("expected the specific key to win, got %q", got)
	}
}

func TestResolveAPIKeyFallsThrough(t *testing.T) {
	t.Setenv("BRIGHTSIDE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", " ")
	t.Setenv("API_KEY", "fallback")

	if got := resolveAPIKey(); got != "fallback" {
		t.Fatalf("expected fallback key, got %q", got)
	}
}

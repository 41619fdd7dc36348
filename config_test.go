package chatdesk

import (
	"testing"
	"time"
)

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error when OPENAI_API_KEY is unset")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	for _, key := range []string{"PORT", "CHAT_MODEL", "SYSTEM_PROMPT", "FALLBACK_REPLY", "MAX_SESSIONS", "UPSTREAM_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("expected default model %q, got %q", DefaultModel, cfg.Model)
	}
	if cfg.SystemPrompt != DefaultSystemPrompt {
		t.Errorf("expected default system prompt, got %q", cfg.SystemPrompt)
	}
	if cfg.FallbackReply != DefaultFallbackReply {
		t.Errorf("expected default fallback reply, got %q", cfg.FallbackReply)
	}
	if cfg.UpstreamTimeout != 30*time.Second {
		t.Errorf("expected default upstream timeout 30s, got %s", cfg.UpstreamTimeout)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "3000")
	t.Setenv("CHAT_MODEL", "gpt-4o-mini")
	t.Setenv("SYSTEM_PROMPT", "Svara alltid på engelska.")
	t.Setenv("MAX_SESSIONS", "50")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3000 {
		t.Errorf("expected port 3000, got %d", cfg.Port)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("expected model override, got %q", cfg.Model)
	}
	if cfg.SystemPrompt != "Svara alltid på engelska." {
		t.Errorf("expected prompt override, got %q", cfg.SystemPrompt)
	}
	if cfg.MaxSessions != 50 {
		t.Errorf("expected 50 max sessions, got %d", cfg.MaxSessions)
	}
	if cfg.UpstreamTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.UpstreamTimeout)
	}
}

func TestLoadConfigBadIntFallsBack(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected fallback port 8080, got %d", cfg.Port)
	}
}

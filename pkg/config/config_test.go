package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test_key")
	t.Setenv("OPENAI_BASE_URL", "https://llm.example.com/v1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.Env != "development" {
		t.Errorf("expected env 'development', got %q", cfg.App.Env)
	}
	if cfg.Database.Path != "data.db" {
		t.Errorf("expected db path 'data.db', got %q", cfg.Database.Path)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
	if cfg.LLM.Model != "gpt-5" {
		t.Errorf("expected model 'gpt-5', got %q", cfg.LLM.Model)
	}
	if cfg.LLM.RequestTimeout != 120*time.Second {
		t.Errorf("expected 120s request timeout, got %v", cfg.LLM.RequestTimeout)
	}
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Error("default env should be development")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test_key")
	t.Setenv("OPENAI_BASE_URL", "https://llm.example.com/v1")
	t.Setenv("DB_PATH", "/tmp/advisor.db")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "/tmp/advisor.db" {
		t.Errorf("expected overridden db path, got %q", cfg.Database.Path)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected overridden port, got %d", cfg.Server.Port)
	}
	if cfg.LLM.BaseURL != "https://llm.example.com/v1" {
		t.Errorf("expected base URL from env, got %q", cfg.LLM.BaseURL)
	}
}

func TestLoad_MissingCredentialIsStartupError(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "https://llm.example.com/v1")

	if _, err := Load(""); err == nil {
		t.Fatal("expected startup error for missing credential")
	} else if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("error should name the missing setting, got: %v", err)
	}
}

func TestLoad_MissingEndpointIsStartupError(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test_key")
	t.Setenv("OPENAI_BASE_URL", "")

	if _, err := Load(""); err == nil {
		t.Fatal("expected startup error for missing endpoint")
	} else if !strings.Contains(err.Error(), "OPENAI_BASE_URL") {
		t.Errorf("error should name the missing setting, got: %v", err)
	}
}

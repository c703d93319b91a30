package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LISTINGS_PAGE_SIZE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("REDIS_TTL_SECONDS", "")
	t.Setenv("ASSISTANT_SESSION_IDLE_MINUTES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Listings.PageSize != 9 {
		t.Errorf("PageSize = %d, want 9", cfg.Listings.PageSize)
	}
	if cfg.OpenAI.Enabled {
		t.Error("OpenAI should be disabled without a key")
	}
	if cfg.OpenAI.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %q", cfg.OpenAI.ChatModel)
	}
	if cfg.OpenAI.Timeout != 0 {
		t.Errorf("Timeout = %d, want 0", cfg.OpenAI.Timeout)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.Server.AllowedOrigins)
	}
	if cfg.Redis.TTL != 60*time.Second {
		t.Errorf("Redis TTL = %v", cfg.Redis.TTL)
	}
	if cfg.Assistant.SessionIdleTimeout != 30*time.Minute {
		t.Errorf("SessionIdleTimeout = %v", cfg.Assistant.SessionIdleTimeout)
	}
}

func TestLoad_OpenAIKeyEnables(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_API_BASE", "http://localhost:9999/v1/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.OpenAI.Enabled {
		t.Error("expected OpenAI to be enabled")
	}
	if cfg.OpenAI.APIBase != "http://localhost:9999/v1" {
		t.Errorf("APIBase = %q, trailing slash should be trimmed", cfg.OpenAI.APIBase)
	}
}

func TestLoad_RejectsNonPositivePageSize(t *testing.T) {
	t.Setenv("LISTINGS_PAGE_SIZE", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero page size")
	}
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("TEST_LIST", " a, b ,,c ")

	got := getEnvAsList("TEST_LIST", "")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("getEnvAsList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGetPostgreSQLDSN(t *testing.T) {
	cfg := &Config{PostgreSQL: PostgreSQLConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable",
	}}
	want := "host=db port=5432 user=u password=p dbname=d sslmode=disable"
	if got := cfg.GetPostgreSQLDSN(); got != want {
		t.Errorf("GetPostgreSQLDSN() = %q, want %q", got, want)
	}

	cfg.PostgreSQL.DSN = "postgres://x"
	if got := cfg.GetPostgreSQLDSN(); got != "postgres://x" {
		t.Errorf("DSN should win, got %q", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/landscaper/pkg/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvCrunchbaseAPIKey, EnvGitHubTokens, EnvCacheDir, EnvConfig} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
	if cfg.Crunchbase.RequestInterval.Duration != 300*time.Millisecond || cfg.Crunchbase.Workers != 1 {
		t.Errorf("crunchbase defaults = %+v", cfg.Crunchbase)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "settings.toml", `
[cache]
dir = "/tmp/landscaper"

[crunchbase]
api_key = "cb-file"
request_interval = "1s"
workers = 2
ttl = "48h"

[github]
tokens = ["t1", "t2"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cache.Dir != "/tmp/landscaper" || cfg.Crunchbase.APIKey != "cb-file" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Crunchbase.RequestInterval.Duration != time.Second || cfg.Crunchbase.Workers != 2 {
		t.Errorf("crunchbase = %+v", cfg.Crunchbase)
	}
	if cfg.Crunchbase.TTL.Duration != 48*time.Hour || cfg.GitHub.TTL.Duration != DefaultTTL {
		t.Errorf("ttl = %v / %v", cfg.Crunchbase.TTL, cfg.GitHub.TTL)
	}
	if !reflect.DeepEqual(cfg.GitHub.Tokens, []string{"t1", "t2"}) {
		t.Errorf("tokens = %v", cfg.GitHub.Tokens)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "settings.toml", "[crunchbase]\napi_key = \"cb-file\"\n")
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvCrunchbaseAPIKey, "cb-env")
	t.Setenv(EnvGitHubTokens, " a, ,b ")
	t.Setenv(EnvCacheDir, "/var/cache/ls")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Crunchbase.APIKey != "cb-env" {
		t.Errorf("APIKey = %q, want env value", cfg.Crunchbase.APIKey)
	}
	if !reflect.DeepEqual(cfg.GitHub.Tokens, []string{"a", "b"}) {
		t.Errorf("Tokens = %v", cfg.GitHub.Tokens)
	}
	if cfg.Cache.Dir != "/var/cache/ls" {
		t.Errorf("Cache.Dir = %q", cfg.Cache.Dir)
	}
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[github]\ntokenz = [\"x\"]\n"},
		{"bad duration", "[crunchbase]\nrequest_interval = \"soon\"\n"},
		{"zero workers", "[crunchbase]\nworkers = 0\n"},
		{"syntax", "[crunchbase\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "settings.toml", tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Load() error = %v, want invalid input", err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvCrunchbaseAPIKey)
	t.Setenv(EnvGitHubTokens, "already-set")
	path := writeFile(t, ".env", "CRUNCHBASE_API_KEY=from-dotenv\nGITHUB_TOKENS=from-dotenv\n")

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv(EnvCrunchbaseAPIKey); got != "from-dotenv" {
		t.Errorf("%s = %q", EnvCrunchbaseAPIKey, got)
	}
	if got := os.Getenv(EnvGitHubTokens); got != "already-set" {
		t.Errorf("%s = %q, existing values must win", EnvGitHubTokens, got)
	}
}

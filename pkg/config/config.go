// Package config resolves landscaper settings from a TOML file, the
// environment and an optional .env file.
//
// Precedence, lowest to highest: built-in defaults, the settings file,
// environment variables. Command-line flags are applied on top by the CLI.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/landscaper/pkg/errors"
)

// Environment variables read by Load.
const (
	EnvCrunchbaseAPIKey = "CRUNCHBASE_API_KEY"
	EnvGitHubTokens     = "GITHUB_TOKENS"
	EnvCacheDir         = "LANDSCAPER_CACHE_DIR"
	EnvConfig           = "LANDSCAPER_CONFIG"
)

// Defaults.
const (
	DefaultTTL                       = 7 * 24 * time.Hour
	DefaultCrunchbaseRequestInterval = 300 * time.Millisecond
	DefaultCrunchbaseWorkers         = 1
)

// Config holds all settings.
type Config struct {
	Cache      CacheConfig      `toml:"cache"`
	Crunchbase CrunchbaseConfig `toml:"crunchbase"`
	GitHub     GitHubConfig     `toml:"github"`
}

// CacheConfig locates the snapshot cache. An empty Dir selects the
// platform cache directory.
type CacheConfig struct {
	Dir string `toml:"dir"`
}

// CrunchbaseConfig configures the organization collector.
type CrunchbaseConfig struct {
	APIKey          string   `toml:"api_key"`
	RequestInterval Duration `toml:"request_interval"`
	Workers         int      `toml:"workers"`
	TTL             Duration `toml:"ttl"`
}

// GitHubConfig configures the repository collector. One client is created
// per token.
type GitHubConfig struct {
	Tokens []string `toml:"tokens"`
	TTL    Duration `toml:"ttl"`
}

// Duration is a time.Duration that decodes from strings such as "300ms"
// or "168h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Crunchbase: CrunchbaseConfig{
			RequestInterval: Duration{DefaultCrunchbaseRequestInterval},
			Workers:         DefaultCrunchbaseWorkers,
			TTL:             Duration{DefaultTTL},
		},
		GitHub: GitHubConfig{
			TTL: Duration{DefaultTTL},
		},
	}
}

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given) without overriding variables already set. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "load %s", f)
		}
	}
	return nil
}

// Load builds the configuration from path and the environment. An empty
// path falls back to $LANDSCAPER_CONFIG; when that is unset too only
// defaults and the environment are used.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read settings %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown settings in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv(EnvCrunchbaseAPIKey); v != "" {
		c.Crunchbase.APIKey = v
	}
	if v := os.Getenv(EnvGitHubTokens); v != "" {
		c.GitHub.Tokens = SplitTokens(v)
	}
}

// Validate checks that numeric settings are usable.
func (c *Config) Validate() error {
	if c.Crunchbase.Workers < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "crunchbase.workers must be at least 1, got %d", c.Crunchbase.Workers)
	}
	if c.Crunchbase.RequestInterval.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "crunchbase.request_interval must not be negative")
	}
	if c.Crunchbase.TTL.Duration <= 0 || c.GitHub.TTL.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ttl must be positive")
	}
	return nil
}

// SplitTokens splits a comma separated token list, dropping blanks.
func SplitTokens(s string) []string {
	var tokens []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

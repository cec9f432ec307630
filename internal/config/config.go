package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/aidiff/aidiff/internal/redact"
)

// Config is the effective review configuration after merging defaults, the
// config file, AIDIFF_* environment variables, and command-line flags.
type Config struct {
	Base             string   `mapstructure:"base"`
	Staged           bool     `mapstructure:"staged"`
	IncludeUntracked bool     `mapstructure:"include_untracked"`
	Modes            []string `mapstructure:"modes"`
	Provider         string   `mapstructure:"provider"`
	Model            string   `mapstructure:"model"`
	Output           string   `mapstructure:"output"`
	GroupBy          string   `mapstructure:"group_by"`
	DryRun           bool     `mapstructure:"dry_run"`
	Debug            bool     `mapstructure:"debug"`
	PromptsDir       string   `mapstructure:"prompts_dir"`
	MaxDiffBytes     int      `mapstructure:"max_diff_bytes"`
	TimeoutSeconds   int      `mapstructure:"timeout"`
	MaxTokens        int      `mapstructure:"max_tokens"`
	NoRedact         bool     `mapstructure:"no_redact"`
	NoCache          bool     `mapstructure:"no_cache"`
	CacheDir         string   `mapstructure:"cache_dir"`
	CacheTTLSeconds  int      `mapstructure:"cache_ttl"`
	RedactPaths      []string `mapstructure:"redact_paths"`
}

// FileName is the config file name without extension; viper resolves the
// extension (yaml, json, toml) itself.
const FileName = "aidiff"

// New returns a viper instance with defaults, the config file search path,
// and AIDIFF_* environment binding applied. Flag binding happens in the CLI
// layer so flags keep the highest precedence.
func New() (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("base", "origin/main")
	v.SetDefault("staged", false)
	v.SetDefault("include_untracked", false)
	v.SetDefault("modes", []string{"security"})
	v.SetDefault("provider", "anthropic")
	v.SetDefault("model", "")
	v.SetDefault("output", "markdown")
	v.SetDefault("group_by", "file")
	v.SetDefault("dry_run", false)
	v.SetDefault("debug", false)
	v.SetDefault("prompts_dir", "")
	v.SetDefault("max_diff_bytes", 400_000)
	v.SetDefault("timeout", 120)
	v.SetDefault("max_tokens", 4096)
	v.SetDefault("no_redact", false)
	v.SetDefault("no_cache", false)
	v.SetDefault("cache_dir", "")
	v.SetDefault("cache_ttl", 86400)
	v.SetDefault("redact_paths", redact.DefaultPathPatterns)

	dir, err := Dir()
	if err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	v.SetConfigName(FileName)

	v.SetEnvPrefix("AIDIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return v, nil
}

// Load unmarshals the merged settings into a Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Dir returns the per-user config directory, $XDG_CONFIG_HOME/aidiff or
// ~/.config/aidiff.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "aidiff"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "aidiff"), nil
}

// WriteStarter writes a commented starter config file into the config
// directory and returns its path. It refuses to overwrite an existing file.
func WriteStarter() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	path := filepath.Join(dir, FileName+".yaml")
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}

const starterConfig = `# aidiff configuration. Command-line flags override these values,
# as do AIDIFF_* environment variables (AIDIFF_PROVIDER, AIDIFF_MODEL, ...).

base: origin/main
modes:
  - security
provider: anthropic
# model: claude-sonnet-4-20250514
output: markdown
group_by: file
timeout: 120
max_diff_bytes: 400000
cache_ttl: 86400
`

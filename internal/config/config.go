package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// loadedConfigFile stores the path of the config file used by the last
// successful Load.
var loadedConfigFile atomic.Value

// Config is the top-level configuration for commitai.
type Config struct {
	LogLevel         string                   `mapstructure:"log_level"         toml:"log_level"`
	Temperature      float64                  `mapstructure:"temperature"       toml:"temperature"`
	Conventional     bool                     `mapstructure:"conventional"      toml:"conventional"`
	RecentCommits    int                      `mapstructure:"recent_commits"    toml:"recent_commits"`
	MaxFiles         int                      `mapstructure:"max_files"         toml:"max_files"`
	Summarize        bool                     `mapstructure:"summarize"         toml:"summarize"`
	IgnoredFiles     []string                 `mapstructure:"ignored_files"     toml:"ignored_files,omitempty"`
	InstructionsFile string                   `mapstructure:"instructions_file" toml:"instructions_file,omitempty"`
	Active           string                   `mapstructure:"active"            toml:"active"`
	Fallbacks        []string                 `mapstructure:"fallbacks"         toml:"fallbacks"`
	Profiles         map[string]ProfileConfig `mapstructure:"profiles"          toml:"profiles"`
}

// ProfileConfig describes a single provider profile as written in the
// config file, before key resolution and defaulting.
type ProfileConfig struct {
	Kind             string            `mapstructure:"kind"               toml:"kind"`
	Model            string            `mapstructure:"model"              toml:"model"`
	BaseURL          string            `mapstructure:"base_url"           toml:"base_url,omitempty"`
	KeyRef           string            `mapstructure:"key_ref"            toml:"key_ref,omitempty"`
	EnvKey           string            `mapstructure:"env_key"            toml:"env_key,omitempty"`
	Enabled          bool              `mapstructure:"enabled"            toml:"enabled"`
	Timeout          string            `mapstructure:"timeout"            toml:"timeout,omitempty"`
	MaxRetries       int               `mapstructure:"max_retries"        toml:"max_retries"`
	ExtraHeaders     map[string]string `mapstructure:"extra_headers"      toml:"extra_headers,omitempty"`
	AzureDeployment  string            `mapstructure:"azure_deployment"   toml:"azure_deployment,omitempty"`
	AzureAPIVersion  string            `mapstructure:"azure_api_version"  toml:"azure_api_version,omitempty"`
	GeminiAPIVersion string            `mapstructure:"gemini_api_version" toml:"gemini_api_version,omitempty"`
}

// TimeoutDuration returns the profile timeout as a time.Duration. Unset
// or unparseable values fall back to the default.
func (p ProfileConfig) TimeoutDuration() time.Duration {
	fallback, _ := time.ParseDuration(DefaultProfileTimeout)
	if p.Timeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Load reads configuration with the following precedence:
//  1. Environment variables (COMMITAI_ prefix, _ as separator)
//  2. The file at explicitPath if non-empty
//  3. ~/.commitai/commitai.toml
//  4. ./commitai.toml
//  5. Built-in defaults
func Load(explicitPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	// Register every known key so env binding works without a file.
	setViperDefaults(v)

	v.SetEnvPrefix("COMMITAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, DefaultConfigDir))
		}
		v.AddConfigPath(".")
		v.SetConfigName("commitai")
	}

	if err := v.ReadInConfig(); err != nil {
		// Proceed with defaults + env when no config file exists.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if cf := v.ConfigFileUsed(); cf != "" {
		loadedConfigFile.Store(cf)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.InstructionsFile = expandHome(cfg.InstructionsFile)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Init writes the default configuration file to ~/.commitai/commitai.toml
// and returns its path. An existing file is left untouched.
func Init() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}

	dir := filepath.Join(homeDir, DefaultConfigDir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(dir, DefaultConfigFilename)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := Save(DefaultConfig(), path); err != nil {
		return "", err
	}
	return path, nil
}

// Save marshals cfg to path in TOML format.
func Save(cfg *Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ConfigFilePath returns the path of the config file that was loaded, or
// the default location when no file was found.
func ConfigFilePath() string {
	if v, ok := loadedConfigFile.Load().(string); ok {
		return v
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigFilename
	}
	return filepath.Join(homeDir, DefaultConfigDir, DefaultConfigFilename)
}

// setViperDefaults registers every known top-level key with viper so that
// env var binding works for all fields even when no config file is
// present. Profiles come from DefaultConfig and the file only.
func setViperDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("temperature", d.Temperature)
	v.SetDefault("conventional", d.Conventional)
	v.SetDefault("recent_commits", d.RecentCommits)
	v.SetDefault("max_files", d.MaxFiles)
	v.SetDefault("summarize", d.Summarize)
	v.SetDefault("ignored_files", d.IgnoredFiles)
	v.SetDefault("instructions_file", d.InstructionsFile)
	v.SetDefault("active", d.Active)
	v.SetDefault("fallbacks", d.Fallbacks)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

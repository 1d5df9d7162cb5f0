package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/doanvanminh/commitai/internal/provider"
)

// validate checks the Config for invalid or out-of-range values. It
// returns a combined error if any checks fail.
func validate(cfg *Config) error {
	var errs []string

	if !isValidEnum(cfg.LogLevel, ValidLogLevels) {
		errs = append(errs, fmt.Sprintf("log_level must be one of %v, got %q", ValidLogLevels, cfg.LogLevel))
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		errs = append(errs, fmt.Sprintf("temperature must be between 0 and 2, got %v", cfg.Temperature))
	}
	if cfg.RecentCommits < 0 {
		errs = append(errs, fmt.Sprintf("recent_commits must be non-negative, got %d", cfg.RecentCommits))
	}
	if cfg.MaxFiles < 1 {
		errs = append(errs, fmt.Sprintf("max_files must be at least 1, got %d", cfg.MaxFiles))
	}

	for name, p := range cfg.Profiles {
		if _, err := provider.ParseKind(p.Kind); err != nil {
			errs = append(errs, fmt.Sprintf("profiles.%s: %v", name, err))
		}
		if p.Model == "" {
			errs = append(errs, fmt.Sprintf("profiles.%s.model must not be empty", name))
		}
		if p.Kind == string(provider.KindAzureOpenAI) {
			if p.AzureDeployment == "" {
				errs = append(errs, fmt.Sprintf("profiles.%s.azure_deployment must be set for azure-openai", name))
			}
			if p.BaseURL == "" {
				errs = append(errs, fmt.Sprintf("profiles.%s.base_url must be set for azure-openai", name))
			}
		}
		if p.MaxRetries < 0 {
			errs = append(errs, fmt.Sprintf("profiles.%s.max_retries must be non-negative, got %d", name, p.MaxRetries))
		}
		if p.Timeout != "" {
			if d, err := time.ParseDuration(p.Timeout); err != nil {
				errs = append(errs, fmt.Sprintf("profiles.%s.timeout is not a duration: %q", name, p.Timeout))
			} else if d <= 0 {
				errs = append(errs, fmt.Sprintf("profiles.%s.timeout must be positive, got %q", name, p.Timeout))
			}
		}
	}

	if cfg.Active != "" {
		if _, ok := cfg.Profiles[cfg.Active]; !ok {
			errs = append(errs, fmt.Sprintf("active profile %q is not defined under [profiles]", cfg.Active))
		}
	}
	for _, name := range cfg.Fallbacks {
		if _, ok := cfg.Profiles[name]; !ok {
			errs = append(errs, fmt.Sprintf("fallback profile %q is not defined under [profiles]", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// isValidEnum returns true if val is in the allowed list (case-insensitive).
func isValidEnum(val string, allowed []string) bool {
	lower := strings.ToLower(val)
	for _, a := range allowed {
		if strings.ToLower(a) == lower {
			return true
		}
	}
	return false
}

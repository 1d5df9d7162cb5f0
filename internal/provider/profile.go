package provider

import (
	"fmt"
	"time"
)

const (
	// DefaultTimeout bounds one attempt when a profile sets none.
	DefaultTimeout = 30 * time.Second
	// MaxRetryCap is the upper bound on per-profile retries.
	MaxRetryCap = 5

	defaultAzureAPIVersion  = "2024-06-01"
	defaultGeminiAPIVersion = "v1beta"
)

// Profile is one fully resolved provider target. The config layer fills
// credentials and defaults; profiles reach the executor normalized and
// validated, and the executor never mutates them.
type Profile struct {
	// ID is the unique profile name, the join key for every failure and
	// log record.
	ID      string
	Kind    Kind
	Model   string
	BaseURL string
	// APIKey is the resolved credential. Empty is allowed here; adapters
	// that need one report a precondition failure per attempt.
	APIKey string
	// EnvKey names the environment variable the config layer consulted.
	// Kept for diagnostics only.
	EnvKey  string
	Enabled bool
	// Timeout is the absolute deadline for a single attempt.
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt, so a
	// profile is tried MaxRetries+1 times at most.
	MaxRetries int
	// ExtraHeaders are merged over adapter defaults, so a profile can
	// override auth or add gateway headers.
	ExtraHeaders map[string]string

	// AzureDeployment is required for azure-openai profiles.
	AzureDeployment string
	// AzureAPIVersion is the api-version query value for azure-openai.
	AzureAPIVersion string
	// GeminiAPIVersion is the URL version segment for gemini.
	GeminiAPIVersion string
}

// Normalize fills unset fields with their defaults.
func (p *Profile) Normalize() {
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.MaxRetries > MaxRetryCap {
		p.MaxRetries = MaxRetryCap
	}
	if p.BaseURL == "" {
		p.BaseURL = DefaultBaseURL(p.Kind)
	}
	if p.AzureAPIVersion == "" {
		p.AzureAPIVersion = defaultAzureAPIVersion
	}
	if p.GeminiAPIVersion == "" {
		p.GeminiAPIVersion = defaultGeminiAPIVersion
	}
}

// Validate reports the first structural problem with the profile.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile has no id")
	}
	if _, err := ParseKind(string(p.Kind)); err != nil {
		return fmt.Errorf("profile %q: %w", p.ID, err)
	}
	if p.Model == "" {
		return fmt.Errorf("profile %q has no model", p.ID)
	}
	if p.BaseURL == "" {
		return fmt.Errorf("profile %q has no base URL", p.ID)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("profile %q has a non-positive timeout", p.ID)
	}
	return nil
}

package config

import (
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/doanvanminh/commitai/internal/provider"
)

// KeyStore resolves profile credentials. *vault.Vault satisfies it.
type KeyStore interface {
	Get(name string) (string, error)
	ResolveKeyRef(keyRef string) (string, error)
}

// BuildChain converts the configuration into the ordered, fully resolved
// profile list the executor consumes. Execution order is the active
// profile first, then fallbacks as listed, then every remaining enabled
// profile sorted by id. Disabled profiles and duplicates are skipped, and
// profiles that fail validation after resolution are dropped with a
// warning so one bad entry cannot poison the chain.
func BuildChain(cfg *Config, keys KeyStore, log zerolog.Logger) []provider.Profile {
	order := chainOrder(cfg)
	chain := make([]provider.Profile, 0, len(order))
	for _, name := range order {
		p := resolveProfile(name, cfg.Profiles[name], keys, log)
		if err := p.Validate(); err != nil {
			log.Warn().Str("profile", name).Err(err).Msg("dropping invalid profile")
			continue
		}
		chain = append(chain, p)
	}
	return chain
}

// chainOrder returns the profile names to try, in order.
func chainOrder(cfg *Config) []string {
	seen := make(map[string]bool, len(cfg.Profiles))
	var order []string
	add := func(name string) {
		p, ok := cfg.Profiles[name]
		if !ok || seen[name] || !p.Enabled {
			return
		}
		seen[name] = true
		order = append(order, name)
	}

	add(cfg.Active)
	for _, name := range cfg.Fallbacks {
		add(name)
	}

	rest := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		add(name)
	}
	return order
}

// resolveProfile converts one profile config into an executor profile,
// filling the credential and the per-kind defaults.
func resolveProfile(name string, pc ProfileConfig, keys KeyStore, log zerolog.Logger) provider.Profile {
	p := provider.Profile{
		ID:               name,
		Kind:             provider.Kind(pc.Kind),
		Model:            pc.Model,
		BaseURL:          pc.BaseURL,
		APIKey:           resolveKey(name, pc, keys, log),
		EnvKey:           pc.EnvKey,
		Enabled:          pc.Enabled,
		Timeout:          pc.TimeoutDuration(),
		MaxRetries:       pc.MaxRetries,
		ExtraHeaders:     pc.ExtraHeaders,
		AzureDeployment:  pc.AzureDeployment,
		AzureAPIVersion:  pc.AzureAPIVersion,
		GeminiAPIVersion: pc.GeminiAPIVersion,
	}
	p.Normalize()
	return p
}

// resolveKey tries the explicit key reference, then the profile's env
// hint, then a vault entry under the profile name. A missing key is not
// fatal here: the profile goes to the engine keyless, and the engine
// records the precondition failure so the trail stays visible.
func resolveKey(name string, pc ProfileConfig, keys KeyStore, log zerolog.Logger) string {
	if pc.KeyRef != "" {
		key, err := keys.ResolveKeyRef(pc.KeyRef)
		if err == nil && key != "" {
			return key
		}
		log.Debug().Str("profile", name).Str("key_ref", pc.KeyRef).Err(err).Msg("key reference did not resolve")
	}
	if pc.EnvKey != "" {
		if val := os.Getenv(pc.EnvKey); val != "" {
			return val
		}
	}
	if key, err := keys.Get(name); err == nil {
		return key
	}
	return ""
}

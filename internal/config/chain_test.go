package config

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/doanvanminh/commitai/internal/provider"
)

type fakeKeys struct {
	keys map[string]string
	refs map[string]string
}

func (f fakeKeys) Get(name string) (string, error) {
	if k, ok := f.keys[name]; ok {
		return k, nil
	}
	return "", fmt.Errorf("no key for %s", name)
}

func (f fakeKeys) ResolveKeyRef(keyRef string) (string, error) {
	if k, ok := f.refs[keyRef]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unresolved key reference %s", keyRef)
}

func enabledProfile(kind, model string) ProfileConfig {
	return ProfileConfig{Kind: kind, Model: model, Enabled: true}
}

func TestChainOrder(t *testing.T) {
	cfg := &Config{
		Active:    "c",
		Fallbacks: []string{"a", "c", "d"},
		Profiles: map[string]ProfileConfig{
			"a": enabledProfile("openai", "m"),
			"b": enabledProfile("openai", "m"),
			"c": enabledProfile("ollama", "m"),
			"d": {Kind: "openai", Model: "m", Enabled: false},
			"e": enabledProfile("gemini", "m"),
		},
	}

	got := chainOrder(cfg)
	want := []string{"c", "a", "b", "e"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("chainOrder = %v, want %v", got, want)
	}
}

func TestChainOrderMissingActive(t *testing.T) {
	cfg := &Config{
		Active: "ghost",
		Profiles: map[string]ProfileConfig{
			"a": enabledProfile("openai", "m"),
		},
	}
	got := chainOrder(cfg)
	want := []string{"a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("chainOrder = %v, want %v", got, want)
	}
}

func TestBuildChainResolvesAndDefaults(t *testing.T) {
	cfg := &Config{
		Active: "remote",
		Profiles: map[string]ProfileConfig{
			"remote": {
				Kind:    "anthropic",
				Model:   "claude-sonnet-4-0",
				KeyRef:  "keyring://commitai/remote",
				Enabled: true,
				Timeout: "45s",
			},
			"local": enabledProfile("ollama", "llama3.2"),
		},
	}
	keys := fakeKeys{refs: map[string]string{"keyring://commitai/remote": "sk-ref"}}

	chain := BuildChain(cfg, keys, zerolog.Nop())
	if len(chain) != 2 {
		t.Fatalf("chain length = %d, want 2", len(chain))
	}

	remote := chain[0]
	if remote.ID != "remote" || remote.Kind != provider.KindAnthropic {
		t.Errorf("first profile = %+v", remote)
	}
	if remote.APIKey != "sk-ref" {
		t.Errorf("remote key = %q, want resolved reference", remote.APIKey)
	}
	if remote.Timeout != 45*time.Second {
		t.Errorf("remote timeout = %s", remote.Timeout)
	}
	if remote.BaseURL != "https://api.anthropic.com" {
		t.Errorf("remote base = %q, want kind default", remote.BaseURL)
	}

	local := chain[1]
	if local.BaseURL != "http://localhost:11434" {
		t.Errorf("local base = %q, want kind default", local.BaseURL)
	}
	if local.Timeout != 30*time.Second {
		t.Errorf("local timeout = %s, want default", local.Timeout)
	}
	if local.GeminiAPIVersion != "v1beta" {
		t.Errorf("local gemini api version = %q, want default fill", local.GeminiAPIVersion)
	}
}

func TestBuildChainKeyPrecedence(t *testing.T) {
	t.Setenv("CHAIN_TEST_ENV_KEY", "sk-env")

	cfg := &Config{
		Profiles: map[string]ProfileConfig{
			"ref-wins": {
				Kind: "openai", Model: "m", Enabled: true,
				KeyRef: "env:SOME_REF", EnvKey: "CHAIN_TEST_ENV_KEY",
			},
			"env-next": {
				Kind: "openai", Model: "m", Enabled: true,
				KeyRef: "env:UNRESOLVABLE", EnvKey: "CHAIN_TEST_ENV_KEY",
			},
			"vault-last": {
				Kind: "openai", Model: "m", Enabled: true,
			},
		},
	}
	keys := fakeKeys{
		refs: map[string]string{"env:SOME_REF": "sk-ref"},
		keys: map[string]string{"vault-last": "sk-vault"},
	}

	chain := BuildChain(cfg, keys, zerolog.Nop())
	byID := map[string]provider.Profile{}
	for _, p := range chain {
		byID[p.ID] = p
	}

	if got := byID["ref-wins"].APIKey; got != "sk-ref" {
		t.Errorf("ref-wins key = %q, want key reference value", got)
	}
	if got := byID["env-next"].APIKey; got != "sk-env" {
		t.Errorf("env-next key = %q, want env fallback", got)
	}
	if got := byID["vault-last"].APIKey; got != "sk-vault" {
		t.Errorf("vault-last key = %q, want vault entry", got)
	}
}

func TestBuildChainKeepsKeylessProfiles(t *testing.T) {
	cfg := &Config{
		Profiles: map[string]ProfileConfig{
			"keyless": enabledProfile("openai", "gpt-4o-mini"),
		},
	}

	chain := BuildChain(cfg, fakeKeys{}, zerolog.Nop())
	if len(chain) != 1 {
		t.Fatalf("chain length = %d, want 1 (keyless profiles stay in the chain)", len(chain))
	}
	if chain[0].APIKey != "" {
		t.Errorf("APIKey = %q, want empty", chain[0].APIKey)
	}
}

func TestBuildChainDropsInvalidProfiles(t *testing.T) {
	cfg := &Config{
		Profiles: map[string]ProfileConfig{
			"broken": enabledProfile("openai", ""),
			"good":   enabledProfile("ollama", "llama3.2"),
		},
	}

	chain := BuildChain(cfg, fakeKeys{}, zerolog.Nop())
	if len(chain) != 1 {
		t.Fatalf("chain length = %d, want 1", len(chain))
	}
	if chain[0].ID != "good" {
		t.Errorf("surviving profile = %q, want good", chain[0].ID)
	}
}

func TestBuildChainCapsRetries(t *testing.T) {
	pc := enabledProfile("ollama", "m")
	pc.MaxRetries = 99
	cfg := &Config{Profiles: map[string]ProfileConfig{"p": pc}}

	chain := BuildChain(cfg, fakeKeys{}, zerolog.Nop())
	if len(chain) != 1 {
		t.Fatal("profile missing")
	}
	if chain[0].MaxRetries != provider.MaxRetryCap {
		t.Errorf("MaxRetries = %d, want cap %d", chain[0].MaxRetries, provider.MaxRetryCap)
	}
}

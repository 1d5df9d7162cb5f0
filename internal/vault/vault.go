package vault

import (
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const serviceName = "commitai"

// Vault provides API key storage using the OS keychain, with fallback to
// environment variables for headless machines and CI.
type Vault struct{}

// New creates a new Vault instance.
func New() *Vault {
	return &Vault{}
}

// Set stores an API key for the given profile name in the OS keychain.
func (v *Vault) Set(name, key string) error {
	return keyring.Set(serviceName, name, key)
}

// Get retrieves the API key for the given profile name. It first checks
// the OS keychain, then falls back to the environment variable
// COMMITAI_KEY_{UPPER(name)} with dashes mapped to underscores.
func (v *Vault) Get(name string) (string, error) {
	secret, err := keyring.Get(serviceName, name)
	if err == nil && secret != "" {
		return secret, nil
	}

	envKey := EnvKeyName(name)
	if val := os.Getenv(envKey); val != "" {
		return val, nil
	}

	return "", fmt.Errorf("no key found for %q: not in keychain and %s not set", name, envKey)
}

// Delete removes the API key for the given profile name from the OS
// keychain.
func (v *Vault) Delete(name string) error {
	return keyring.Delete(serviceName, name)
}

// List returns the subset of names that currently resolve to a key,
// through either the keychain or the environment.
func (v *Vault) List(names []string) []string {
	var have []string
	for _, name := range names {
		if _, err := v.Get(name); err == nil {
			have = append(have, name)
		}
	}
	return have
}

// EnvKeyName returns the fallback environment variable for a profile
// name.
func EnvKeyName(name string) string {
	return "COMMITAI_KEY_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// ResolveKeyRef parses a key reference and retrieves the corresponding
// API key. Supported formats:
//   - "keyring://commitai/<name>" (preferred)
//   - "keychain:commitai/<name>" (legacy)
//   - "env:VARIABLE_NAME" (environment variable)
//   - "file:///path/to/key" (plain-text file)
func (v *Vault) ResolveKeyRef(keyRef string) (string, error) {
	if strings.HasPrefix(keyRef, "keyring://") {
		path := strings.TrimPrefix(keyRef, "keyring://")
		parts := strings.SplitN(path, "/", 2)
		if len(parts) != 2 || parts[0] != serviceName || parts[1] == "" {
			return "", fmt.Errorf("invalid key reference format: %q (expected \"keyring://commitai/<name>\")", keyRef)
		}
		return v.Get(parts[1])
	}

	if strings.HasPrefix(keyRef, "keychain:") {
		path := strings.TrimPrefix(keyRef, "keychain:")
		parts := strings.SplitN(path, "/", 2)
		if len(parts) != 2 || parts[0] != serviceName || parts[1] == "" {
			return "", fmt.Errorf("invalid key reference path: %q (expected \"commitai/<name>\")", path)
		}
		return v.Get(parts[1])
	}

	if strings.HasPrefix(keyRef, "env:") {
		envVar := strings.TrimPrefix(keyRef, "env:")
		if val := os.Getenv(envVar); val != "" {
			return val, nil
		}
		return "", fmt.Errorf("environment variable %q is not set", envVar)
	}

	if strings.HasPrefix(keyRef, "file://") {
		filePath := strings.TrimPrefix(keyRef, "file://")
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("reading key file %q: %w", filePath, err)
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", fmt.Errorf("key file %q is empty", filePath)
		}
		return key, nil
	}

	return "", fmt.Errorf("invalid key reference format: %q (expected \"keyring://commitai/<name>\", \"keychain:commitai/<name>\", \"env:VARIABLE_NAME\", or \"file:///path/to/key\")", keyRef)
}

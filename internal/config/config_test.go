package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
temperature = 0.7
active = "work"
fallbacks = ["local"]

[profiles.work]
kind = "anthropic"
model = "claude-sonnet-4-0"
key_ref = "env:WORK_KEY"
enabled = true
timeout = "45s"
max_retries = 1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Temperature != 0.7 {
		t.Errorf("Temperature = %v", cfg.Temperature)
	}
	if cfg.Active != "work" {
		t.Errorf("Active = %q", cfg.Active)
	}

	work, ok := cfg.Profiles["work"]
	if !ok {
		t.Fatal("profile work missing")
	}
	if work.Kind != "anthropic" || work.Model != "claude-sonnet-4-0" {
		t.Errorf("work profile = %+v", work)
	}
	if work.TimeoutDuration() != 45*time.Second {
		t.Errorf("work timeout = %s", work.TimeoutDuration())
	}
	if work.MaxRetries != 1 {
		t.Errorf("work max_retries = %d", work.MaxRetries)
	}

	// Keys absent from the file keep their defaults.
	if cfg.RecentCommits != DefaultRecentCommits {
		t.Errorf("RecentCommits = %d", cfg.RecentCommits)
	}
	if !cfg.Conventional {
		t.Error("Conventional lost its default")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `log_level = "debug"` + "\n")
	t.Setenv("COMMITAI_LOG_LEVEL", "error")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want env override", cfg.LogLevel)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Load of a missing explicit file did not error")
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := writeConfig(t, "log_level = [broken\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load of invalid TOML did not error")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "unknown kind",
			body: "[profiles.bad]\nkind = \"smoke-signals\"\nmodel = \"m\"\nenabled = true\n",
			want: "unknown provider kind",
		},
		{
			name: "missing model",
			body: "[profiles.bad]\nkind = \"openai\"\nenabled = true\n",
			want: "model must not be empty",
		},
		{
			name: "azure without deployment",
			body: "[profiles.az]\nkind = \"azure-openai\"\nmodel = \"gpt-4o\"\nbase_url = \"https://r.openai.azure.com\"\nenabled = true\n",
			want: "azure_deployment",
		},
		{
			name: "bad timeout",
			body: "[profiles.bad]\nkind = \"openai\"\nmodel = \"m\"\ntimeout = \"fast\"\nenabled = true\n",
			want: "not a duration",
		},
		{
			name: "undefined active",
			body: "active = \"ghost\"\n",
			want: "active profile",
		},
		{
			name: "undefined fallback",
			body: "fallbacks = [\"ghost\"]\n",
			want: "fallback profile",
		},
		{
			name: "bad temperature",
			body: "temperature = 3.5\n",
			want: "temperature",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load did not error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestTimeoutDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 30 * time.Second},
		{"45s", 45 * time.Second},
		{"2m", 2 * time.Minute},
		{"banana", 30 * time.Second},
		{"-5s", 30 * time.Second},
	}
	for _, tt := range tests {
		p := ProfileConfig{Timeout: tt.in}
		if got := p.TimeoutDuration(); got != tt.want {
			t.Errorf("TimeoutDuration(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := validate(DefaultConfig()); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	cfg := DefaultConfig()
	cfg.Active = "local"
	cfg.Profiles["local"] = ProfileConfig{
		Kind:    "ollama",
		Model:   "qwen2.5-coder",
		BaseURL: "http://localhost:11434",
		Enabled: true,
	}

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Active != "local" {
		t.Errorf("Active = %q", loaded.Active)
	}
	if got := loaded.Profiles["local"].Model; got != "qwen2.5-coder" {
		t.Errorf("local model = %q", got)
	}
}

package config

// DefaultLogLevel is the default log level for the CLI.
const DefaultLogLevel = "warn"

// DefaultTemperature is the default sampling temperature.
const DefaultTemperature = 0.2

// DefaultRecentCommits is how many recent commit subjects feed the prompt.
const DefaultRecentCommits = 10

// DefaultMaxFiles is how many staged files are included in the prompt.
const DefaultMaxFiles = 10

// DefaultConfigFilename is the name of the config file.
const DefaultConfigFilename = "commitai.toml"

// DefaultConfigDir is the config directory under the user's home.
const DefaultConfigDir = ".commitai"

// DefaultProfileTimeout is the default per-attempt timeout string.
const DefaultProfileTimeout = "30s"

// DefaultMaxRetries is the default retry budget per profile.
const DefaultMaxRetries = 2

// ValidLogLevels lists the allowed log level values.
var ValidLogLevels = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal"}

// DefaultConfig returns a Config populated with all default values. The
// shipped profiles make the tool work out of the box: "openai" activates
// once a key is present, "local" covers a machine running Ollama.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      DefaultLogLevel,
		Temperature:   DefaultTemperature,
		Conventional:  true,
		RecentCommits: DefaultRecentCommits,
		MaxFiles:      DefaultMaxFiles,
		Summarize:     false,
		Active:        "openai",
		Fallbacks:     []string{"local"},
		Profiles: map[string]ProfileConfig{
			"openai": {
				Kind:       "openai",
				Model:      "gpt-4o-mini",
				KeyRef:     "keyring://commitai/openai",
				EnvKey:     "OPENAI_API_KEY",
				Enabled:    true,
				Timeout:    DefaultProfileTimeout,
				MaxRetries: DefaultMaxRetries,
			},
			"local": {
				Kind:    "ollama",
				Model:   "llama3.2",
				BaseURL: "http://localhost:11434",
				Enabled: true,
				Timeout: "60s",
			},
		},
	}
}

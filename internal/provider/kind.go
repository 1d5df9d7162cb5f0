package provider

import "fmt"

// Kind identifies the wire protocol a profile speaks.
type Kind string

const (
	// KindOpenAI covers any OpenAI-compatible chat completions endpoint.
	KindOpenAI          Kind = "openai"
	KindOpenAIResponses Kind = "openai-responses"
	KindAnthropic       Kind = "anthropic"
	KindAzureOpenAI     Kind = "azure-openai"
	KindGemini          Kind = "gemini"
	KindOllama          Kind = "ollama"
)

// KnownKinds returns every supported kind.
func KnownKinds() []Kind {
	return []Kind{
		KindOpenAI,
		KindOpenAIResponses,
		KindAnthropic,
		KindAzureOpenAI,
		KindGemini,
		KindOllama,
	}
}

// ParseKind validates a kind string coming from configuration.
func ParseKind(s string) (Kind, error) {
	for _, k := range KnownKinds() {
		if Kind(s) == k {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown provider kind %q", s)
}

// DefaultBaseURL returns the canonical public base URL for a kind, or ""
// when there is none (azure-openai bases are per-resource).
func DefaultBaseURL(k Kind) string {
	switch k {
	case KindOpenAI, KindOpenAIResponses:
		return "https://api.openai.com"
	case KindAnthropic:
		return "https://api.anthropic.com"
	case KindGemini:
		return "https://generativelanguage.googleapis.com"
	case KindOllama:
		return "http://localhost:11434"
	default:
		return ""
	}
}

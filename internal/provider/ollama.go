package provider

import (
	"github.com/doanvanminh/commitai/internal/jsonx"
	"github.com/doanvanminh/commitai/internal/urlx"
)

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaChatReq struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

// ollamaAdapter talks to a local Ollama server. No credentials.
type ollamaAdapter struct{}

func (ollamaAdapter) Kind() Kind { return KindOllama }

func (ollamaAdapter) BuildRequest(p Profile, prompt string, temperature float64) (Request, error) {
	headers := map[string]string{"Content-Type": "application/json"}
	mergeHeaders(headers, p.ExtraHeaders)
	return Request{
		URL:     urlx.Join(p.BaseURL, "api/chat"),
		Headers: headers,
		Body: ollamaChatReq{
			Model:    p.Model,
			Messages: userMessages(prompt),
			Stream:   false,
			Options:  ollamaOptions{Temperature: temperature},
		},
	}, nil
}

func (ollamaAdapter) ParseResponse(body any) string {
	msg := jsonx.AsRecord(jsonx.AsRecord(body)["message"])
	return jsonx.AsString(msg["content"])
}

package provider

import (
	"github.com/doanvanminh/commitai/internal/jsonx"
	"github.com/doanvanminh/commitai/internal/urlx"
)

const (
	anthropicVersion   = "2023-06-01"
	anthropicMaxTokens = 1024
)

type anthropicReq struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicAdapter struct{}

func (anthropicAdapter) Kind() Kind { return KindAnthropic }

func (anthropicAdapter) BuildRequest(p Profile, prompt string, temperature float64) (Request, error) {
	if p.APIKey == "" {
		return Request{}, &PreconditionError{ProfileID: p.ID, Reason: "missing API key"}
	}
	// Both auth schemes: the native API reads x-api-key, OpenAI-style
	// gateways in front of it expect a bearer token.
	headers := map[string]string{
		"Content-Type":      "application/json",
		"x-api-key":         p.APIKey,
		"Authorization":     "Bearer " + p.APIKey,
		"anthropic-version": anthropicVersion,
	}
	mergeHeaders(headers, p.ExtraHeaders)
	return Request{
		URL:     urlx.JoinVersioned(p.BaseURL, "v1", "messages"),
		Headers: headers,
		Body: anthropicReq{
			Model:       p.Model,
			MaxTokens:   anthropicMaxTokens,
			Temperature: temperature,
			Messages:    userMessages(prompt),
		},
	}, nil
}

func (anthropicAdapter) ParseResponse(body any) string {
	for _, chunk := range jsonx.AsArray(jsonx.AsRecord(body)["content"]) {
		if t := jsonx.AsString(jsonx.AsRecord(chunk)["text"]); t != "" {
			return t
		}
	}
	return ""
}

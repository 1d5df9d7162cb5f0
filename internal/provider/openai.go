package provider

import (
	"github.com/doanvanminh/commitai/internal/jsonx"
	"github.com/doanvanminh/commitai/internal/urlx"
)

type openaiChatReq struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// openaiAdapter speaks the chat completions protocol, which most hosted
// and self-hosted gateways expose.
type openaiAdapter struct{}

func (openaiAdapter) Kind() Kind { return KindOpenAI }

func (openaiAdapter) BuildRequest(p Profile, prompt string, temperature float64) (Request, error) {
	if p.APIKey == "" {
		return Request{}, &PreconditionError{ProfileID: p.ID, Reason: "missing API key"}
	}
	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + p.APIKey,
	}
	mergeHeaders(headers, p.ExtraHeaders)
	return Request{
		URL:     urlx.JoinVersioned(p.BaseURL, "v1", "chat/completions"),
		Headers: headers,
		Body: openaiChatReq{
			Model:       p.Model,
			Messages:    userMessages(prompt),
			Temperature: temperature,
		},
	}, nil
}

func (openaiAdapter) ParseResponse(body any) string {
	choices := jsonx.AsArray(jsonx.AsRecord(body)["choices"])
	if len(choices) == 0 {
		return ""
	}
	msg := jsonx.AsRecord(jsonx.AsRecord(choices[0])["message"])
	return chatContent(msg["content"])
}

// chatContent reads a chat message content field, which is either a plain
// string or an array of typed chunks.
func chatContent(v any) string {
	if s := jsonx.AsString(v); s != "" {
		return s
	}
	for _, chunk := range jsonx.AsArray(v) {
		if t := jsonx.AsString(jsonx.AsRecord(chunk)["text"]); t != "" {
			return t
		}
	}
	return ""
}

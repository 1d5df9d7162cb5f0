package provider

import (
	"github.com/doanvanminh/commitai/internal/jsonx"
	"github.com/doanvanminh/commitai/internal/urlx"
)

type responsesReq struct {
	Model       string  `json:"model"`
	Input       string  `json:"input"`
	Temperature float64 `json:"temperature"`
}

// responsesAdapter speaks the OpenAI Responses protocol.
type responsesAdapter struct{}

func (responsesAdapter) Kind() Kind { return KindOpenAIResponses }

func (responsesAdapter) BuildRequest(p Profile, prompt string, temperature float64) (Request, error) {
	if p.APIKey == "" {
		return Request{}, &PreconditionError{ProfileID: p.ID, Reason: "missing API key"}
	}
	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + p.APIKey,
	}
	mergeHeaders(headers, p.ExtraHeaders)
	return Request{
		URL:     urlx.JoinVersioned(p.BaseURL, "v1", "responses"),
		Headers: headers,
		Body: responsesReq{
			Model:       p.Model,
			Input:       prompt,
			Temperature: temperature,
		},
	}, nil
}

// ParseResponse prefers the aggregated output_text field and otherwise
// scans output items for the first text chunk.
func (responsesAdapter) ParseResponse(body any) string {
	root := jsonx.AsRecord(body)
	if s := jsonx.AsString(root["output_text"]); s != "" {
		return s
	}
	for _, item := range jsonx.AsArray(root["output"]) {
		for _, chunk := range jsonx.AsArray(jsonx.AsRecord(item)["content"]) {
			if t := jsonx.AsString(jsonx.AsRecord(chunk)["text"]); t != "" {
				return t
			}
		}
	}
	return ""
}

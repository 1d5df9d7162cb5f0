package provider

import (
	"net/url"
	"strings"

	"github.com/doanvanminh/commitai/internal/jsonx"
	"github.com/doanvanminh/commitai/internal/urlx"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiReq struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiAdapter struct{}

func (geminiAdapter) Kind() Kind { return KindGemini }

func (geminiAdapter) BuildRequest(p Profile, prompt string, temperature float64) (Request, error) {
	if p.APIKey == "" {
		return Request{}, &PreconditionError{ProfileID: p.ID, Reason: "missing API key"}
	}
	headers := map[string]string{"Content-Type": "application/json"}
	mergeHeaders(headers, p.ExtraHeaders)
	endpoint := urlx.Join(p.BaseURL, p.GeminiAPIVersion) +
		"/models/" + url.PathEscape(p.Model) + ":generateContent" +
		"?key=" + url.QueryEscape(p.APIKey)
	return Request{
		URL:     endpoint,
		Headers: headers,
		Body: geminiReq{
			Contents: []geminiContent{{
				Role:  "user",
				Parts: []geminiPart{{Text: prompt}},
			}},
			GenerationConfig: geminiGenerationConfig{Temperature: temperature},
		},
	}, nil
}

// ParseResponse joins every text part of the first candidate, since
// Gemini splits long answers across parts.
func (geminiAdapter) ParseResponse(body any) string {
	candidates := jsonx.AsArray(jsonx.AsRecord(body)["candidates"])
	if len(candidates) == 0 {
		return ""
	}
	content := jsonx.AsRecord(jsonx.AsRecord(candidates[0])["content"])
	var texts []string
	for _, part := range jsonx.AsArray(content["parts"]) {
		if t := jsonx.AsString(jsonx.AsRecord(part)["text"]); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, "\n")
}

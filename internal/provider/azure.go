package provider

import (
	"net/url"

	"github.com/doanvanminh/commitai/internal/urlx"
)

// azureChatReq has no model field: on Azure the deployment in the URL
// selects the model.
type azureChatReq struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type azureAdapter struct{}

func (azureAdapter) Kind() Kind { return KindAzureOpenAI }

func (azureAdapter) BuildRequest(p Profile, prompt string, temperature float64) (Request, error) {
	if p.APIKey == "" {
		return Request{}, &PreconditionError{ProfileID: p.ID, Reason: "missing API key"}
	}
	if p.AzureDeployment == "" {
		return Request{}, &PreconditionError{ProfileID: p.ID, Reason: "missing Azure deployment"}
	}
	headers := map[string]string{
		"Content-Type": "application/json",
		"api-key":      p.APIKey,
	}
	mergeHeaders(headers, p.ExtraHeaders)
	path := "deployments/" + url.PathEscape(p.AzureDeployment) + "/chat/completions"
	endpoint := urlx.JoinVersioned(p.BaseURL, "openai", path) +
		"?api-version=" + url.QueryEscape(p.AzureAPIVersion)
	return Request{
		URL:     endpoint,
		Headers: headers,
		Body: azureChatReq{
			Messages:    userMessages(prompt),
			Temperature: temperature,
		},
	}, nil
}

// ParseResponse reads the chat completions shape Azure shares with
// openai.
func (azureAdapter) ParseResponse(body any) string {
	return openaiAdapter{}.ParseResponse(body)
}

package provider

import "fmt"

// Adapter translates between the engine and one backend protocol. Both
// methods are pure: BuildRequest touches no network and fails only with a
// *PreconditionError, ParseResponse never fails and returns "" for
// anything it cannot read.
type Adapter interface {
	Kind() Kind
	BuildRequest(p Profile, prompt string, temperature float64) (Request, error)
	ParseResponse(body any) string
}

// chatMessage is the user-message shape shared by the chat-style wire
// formats.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func userMessages(prompt string) []chatMessage {
	return []chatMessage{{Role: "user", Content: prompt}}
}

// mergeHeaders copies extras over dst, last write wins, so profile
// headers override adapter defaults.
func mergeHeaders(dst, extras map[string]string) {
	for k, v := range extras {
		dst[k] = v
	}
}

// Registry maps kinds to adapters.
type Registry struct {
	adapters map[Kind]Adapter
}

// NewRegistry returns a registry covering every known kind.
func NewRegistry() *Registry {
	r := &Registry{adapters: make(map[Kind]Adapter, len(KnownKinds()))}
	for _, a := range []Adapter{
		openaiAdapter{},
		responsesAdapter{},
		anthropicAdapter{},
		azureAdapter{},
		geminiAdapter{},
		ollamaAdapter{},
	} {
		r.adapters[a.Kind()] = a
	}
	return r
}

// Adapter returns the adapter for k.
func (r *Registry) Adapter(k Kind) (Adapter, error) {
	a, ok := r.adapters[k]
	if !ok {
		return nil, fmt.Errorf("no adapter for kind %q", k)
	}
	return a, nil
}

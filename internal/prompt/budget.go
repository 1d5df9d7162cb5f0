package prompt

import (
	"sort"
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// MaxAttachmentBytes caps how much of a single file reaches the prompt
// before any token counting happens.
const MaxAttachmentBytes = 100 * 1024

const truncationMarker = "... [diff truncated to fit the model context]"

// CapBytes truncates s to MaxAttachmentBytes, cutting at the last full line
// so the tail is never a half-written one.
func CapBytes(s string) string {
	if len(s) <= MaxAttachmentBytes {
		return s
	}
	cut := s[:MaxAttachmentBytes]
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		cut = cut[:i]
	}
	return cut
}

// Counter counts tokens using tiktoken encodings, cached per encoding.
type Counter struct {
	cl100kOnce sync.Once
	cl100kEnc  *tiktoken.Tiktoken
	cl100kErr  error

	o200kOnce sync.Once
	o200kEnc  *tiktoken.Tiktoken
	o200kErr  error
}

func NewCounter() *Counter {
	return &Counter{}
}

// modelEncodings maps model name prefixes to their tiktoken encoding.
var modelEncodings = map[string]string{
	"gpt-4o":  "o200k_base",
	"gpt-4.1": "o200k_base",
	"o1":      "o200k_base",
	"o3":      "o200k_base",
	"gpt-4":   "cl100k_base",
	"gpt-3.5": "cl100k_base",
	"claude":  "cl100k_base",
	"gemini":  "cl100k_base",
	"llama":   "cl100k_base",
}

// GetEncoding returns the encoding name for the given model. Unknown models
// default to cl100k_base, which is close enough for budget decisions.
func (c *Counter) GetEncoding(model string) string {
	lower := strings.ToLower(model)
	if enc, ok := modelEncodings[lower]; ok {
		return enc
	}
	best := ""
	bestLen := 0
	for prefix, enc := range modelEncodings {
		if strings.HasPrefix(lower, prefix) && len(prefix) > bestLen {
			best = enc
			bestLen = len(prefix)
		}
	}
	if best != "" {
		return best
	}
	return "cl100k_base"
}

func (c *Counter) getEncoder(model string) (*tiktoken.Tiktoken, error) {
	switch c.GetEncoding(model) {
	case "o200k_base":
		c.o200kOnce.Do(func() {
			c.o200kEnc, c.o200kErr = tiktoken.GetEncoding("o200k_base")
		})
		return c.o200kEnc, c.o200kErr
	default:
		c.cl100kOnce.Do(func() {
			c.cl100kEnc, c.cl100kErr = tiktoken.GetEncoding("cl100k_base")
		})
		return c.cl100kEnc, c.cl100kErr
	}
}

// Count returns the token count of text for the given model. Encoder
// initialization failures count as 0 so budgeting degrades to a no-op
// instead of blocking the run.
func (c *Counter) Count(model, text string) int {
	enc, err := c.getEncoder(model)
	if err != nil {
		return 0
	}
	return len(enc.Encode(text, nil, nil))
}

// TrimToBudget drops lines from the tail of text until count(text) fits in
// maxTokens, then appends a truncation marker. The count function is injected
// so callers can bind a Counter to a model, and tests can use a fake.
func TrimToBudget(text string, maxTokens int, count func(string) int) string {
	if maxTokens <= 0 || count(text) <= maxTokens {
		return text
	}

	lines := strings.Split(text, "\n")
	drop := sort.Search(len(lines), func(k int) bool {
		kept := strings.Join(lines[:len(lines)-k], "\n")
		return count(kept+"\n"+truncationMarker) <= maxTokens
	})
	if drop >= len(lines) {
		return truncationMarker
	}
	return strings.Join(lines[:len(lines)-drop], "\n") + "\n" + truncationMarker
}

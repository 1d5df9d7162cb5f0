package provider

import (
	"fmt"
	"strings"
	"time"
)

// Request is one ready-to-send HTTP call. Adapters build a fresh Request
// per attempt; the executor owns the transport.
type Request struct {
	URL     string
	Headers map[string]string
	// Body is the JSON-serializable wire payload.
	Body any
}

// Failure records one failed attempt against one profile. Failures
// accumulate across a whole run and are never discarded.
type Failure struct {
	ProfileID string
	Kind      Kind
	Endpoint  string
	// Status is the HTTP status, 0 when no response was received.
	Status    int
	Retryable bool
	// Attempt is 1-based within the profile.
	Attempt int
	Latency time.Duration
	Err     error
}

// String renders the diagnostic line shown to users when a chain is
// exhausted, e.g.
//
//	openai/primary status=503 attempt=2 retryable=true error=http 503
//
// The status segment is omitted when no status was observed.
func (f Failure) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/%s", f.Kind, f.ProfileID)
	if f.Status != 0 {
		fmt.Fprintf(&b, " status=%d", f.Status)
	}
	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	fmt.Fprintf(&b, " attempt=%d retryable=%t error=%s", f.Attempt, f.Retryable, msg)
	return b.String()
}

// Success records the attempt that produced a usable message.
type Success struct {
	ProfileID string
	Kind      Kind
	Endpoint  string
	Latency   time.Duration
	Message   string
}

// Result is the outcome of one chain run. Success is nil when every
// profile was exhausted; Failures lists every failed attempt in order,
// including ones made before a later success.
type Result struct {
	Success  *Success
	Failures []Failure
}

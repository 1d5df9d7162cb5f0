package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultTemperature applies when Options.Temperature is nil.
	DefaultTemperature = 0.2

	backoffBase = 300 * time.Millisecond
	backoffMax  = 2 * time.Second

	maxErrBodyExcerpt = 300
)

// Options tunes one chain run.
type Options struct {
	// Temperature for every request of the run. Nil means DefaultTemperature.
	Temperature *float64
	// Transform post-processes the parsed message before the empty check,
	// typically code-block extraction. Nil means no transformation.
	Transform func(string) string
}

// Executor runs profile chains: each profile in order, each with its own
// retry budget, one HTTP request in flight at a time. The executor keeps
// no state between runs beyond the shared connection pool, so a single
// instance can be reused.
type Executor struct {
	registry *Registry
	client   *http.Client
	log      zerolog.Logger
}

// NewExecutor builds an executor around the given adapter registry. There
// is no client-level timeout; each attempt gets its own deadline from the
// profile.
func NewExecutor(registry *Registry, log zerolog.Logger) *Executor {
	return &Executor{
		registry: registry,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		log: log,
	}
}

// Run tries each profile in order and returns on the first usable
// message. It never returns an error: every failed attempt is recorded in
// the result, and an exhausted chain is simply a result without success.
func (e *Executor) Run(ctx context.Context, profiles []Profile, prompt string, opts Options) Result {
	temperature := DefaultTemperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	log := e.log.With().Str("run_id", uuid.NewString()).Logger()

	var failures []Failure
	for _, p := range profiles {
		if ctx.Err() != nil {
			break
		}
		success, profileFailures := e.runProfile(ctx, log, p, prompt, temperature, opts.Transform)
		failures = append(failures, profileFailures...)
		if success != nil {
			log.Info().
				Str("profile", success.ProfileID).
				Str("kind", string(success.Kind)).
				Dur("latency", success.Latency).
				Int("prior_failures", len(failures)).
				Msg("provider chain succeeded")
			return Result{Success: success, Failures: failures}
		}
	}
	log.Warn().Int("failures", len(failures)).Msg("provider chain exhausted")
	return Result{Failures: failures}
}

// runProfile spends the profile's attempt budget. It returns a success or
// the failures of every attempt made.
func (e *Executor) runProfile(ctx context.Context, log zerolog.Logger, p Profile, prompt string, temperature float64, transform func(string) string) (*Success, []Failure) {
	adapter, err := e.registry.Adapter(p.Kind)
	if err != nil {
		f := e.recordFailure(log, Failure{
			ProfileID: p.ID,
			Kind:      p.Kind,
			Attempt:   1,
			Err:       &PreconditionError{ProfileID: p.ID, Reason: err.Error()},
		})
		return nil, []Failure{f}
	}

	totalAttempts := p.MaxRetries + 1
	if totalAttempts < 1 {
		totalAttempts = 1
	}

	var failures []Failure
	for attempt := 1; attempt <= totalAttempts; attempt++ {
		success, failure := e.attempt(ctx, log, adapter, p, prompt, temperature, transform, attempt, totalAttempts)
		if success != nil {
			return success, failures
		}
		failures = append(failures, e.recordFailure(log, *failure))

		if !failure.Retryable || attempt == totalAttempts {
			break
		}
		if err := sleepBackoff(ctx, attempt); err != nil {
			break
		}
	}
	return nil, failures
}

// attempt performs one request against one profile.
func (e *Executor) attempt(ctx context.Context, log zerolog.Logger, adapter Adapter, p Profile, prompt string, temperature float64, transform func(string) string, attempt, totalAttempts int) (*Success, *Failure) {
	fail := func(endpoint string, status int, latency time.Duration, err error) *Failure {
		return &Failure{
			ProfileID: p.ID,
			Kind:      p.Kind,
			Endpoint:  endpoint,
			Status:    status,
			Retryable: Retryable(err),
			Attempt:   attempt,
			Latency:   latency,
			Err:       err,
		}
	}

	req, err := adapter.BuildRequest(p, prompt, temperature)
	if err != nil {
		return nil, fail("", 0, 0, err)
	}

	payload, err := json.Marshal(req.Body)
	if err != nil {
		return nil, fail(req.URL, 0, 0, &PreconditionError{ProfileID: p.ID, Reason: "encode request: " + err.Error()})
	}

	log.Debug().
		Str("profile", p.ID).
		Str("kind", string(p.Kind)).
		Str("model", p.Model).
		Str("endpoint", req.URL).
		Int("attempt", attempt).
		Int("max_attempts", totalAttempts).
		Msg("request")
	log.Trace().
		Str("profile", p.ID).
		Str("endpoint", req.URL).
		Interface("headers", req.Headers).
		RawJSON("body", payload).
		Msg("http_request")

	attemptCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	start := time.Now()
	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, req.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fail(req.URL, 0, time.Since(start), &NetworkError{Err: err})
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fail(req.URL, 0, time.Since(start), classifyTransport(err, p.Timeout))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	latency := time.Since(start)
	if err != nil {
		return nil, fail(req.URL, 0, latency, classifyTransport(err, p.Timeout))
	}

	log.Trace().
		Str("profile", p.ID).
		Str("endpoint", req.URL).
		Int("status", resp.StatusCode).
		Interface("headers", flattenHeader(resp.Header)).
		Str("body", string(raw)).
		Msg("http_response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fail(req.URL, resp.StatusCode, latency, &HTTPStatusError{Status: resp.StatusCode, Body: excerpt(raw)})
	}

	// A body that is not JSON still reaches the adapter, wrapped as a raw
	// record, so parsing degrades instead of erroring.
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		decoded = map[string]any{"raw": string(raw)}
	}

	message := strings.TrimSpace(adapter.ParseResponse(decoded))
	if transform != nil {
		message = strings.TrimSpace(transform(message))
	}
	if message == "" {
		return nil, fail(req.URL, resp.StatusCode, latency, &EmptyResponseError{})
	}

	return &Success{
		ProfileID: p.ID,
		Kind:      p.Kind,
		Endpoint:  req.URL,
		Latency:   latency,
		Message:   message,
	}, nil
}

// recordFailure logs a failure at Warn and returns it.
func (e *Executor) recordFailure(log zerolog.Logger, f Failure) Failure {
	ev := log.Warn().
		Str("profile", f.ProfileID).
		Str("kind", string(f.Kind)).
		Int("attempt", f.Attempt).
		Bool("retryable", f.Retryable).
		Dur("latency", f.Latency).
		Err(f.Err)
	if f.Status != 0 {
		ev = ev.Int("status", f.Status)
	}
	ev.Msg("attempt failed")
	return f
}

// classifyTransport maps a transport error onto the taxonomy: attempt
// deadlines become timeouts, everything else is a network failure.
func classifyTransport(err error, limit time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Limit: limit}
	}
	return &NetworkError{Err: err}
}

// backoffDelay doubles from 300ms per failed attempt, capped at 2s.
func backoffDelay(attempt int) time.Duration {
	d := backoffBase << (attempt - 1)
	if d > backoffMax {
		return backoffMax
	}
	return d
}

// sleepBackoff waits out the delay for the just-failed attempt, returning
// early when ctx ends.
func sleepBackoff(ctx context.Context, attempt int) error {
	t := time.NewTimer(backoffDelay(attempt))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func flattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	return out
}

// excerpt trims a response body for inclusion in error text.
func excerpt(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > maxErrBodyExcerpt {
		s = s[:maxErrBodyExcerpt] + "..."
	}
	return s
}

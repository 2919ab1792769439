// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

/*
Package transport is the sole chokepoint for outbound API calls.

Every request the domain clients make flows through [Mediator.Send], which
owns the cross-cutting contracts:

  - Auth header injection from the token store.
  - Pre-flight expiry detection (no network call with a dead token).
  - JSON marshaling discipline and response normalization.
  - Request lifecycle events on the bus (started/ended, exactly paired).
  - Error normalization into the [apperr] taxonomy.

A backend 401 and a locally detected expiry converge on the same signal:
the token is cleared and [bus.TopicTokenExpired] is published, while the
original error still propagates to the caller.
*/
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/serista/serista/internal/platform/apperr"
	"github.com/serista/serista/internal/platform/bus"
	"github.com/serista/serista/internal/platform/constants"
	"github.com/serista/serista/internal/platform/sec"
	"github.com/serista/serista/internal/platform/tokenstore"
)

// Config carries the explicit dependencies of a [Mediator].
type Config struct {
	// BaseURL is the root address of the backend, e.g. "http://localhost:3000".
	BaseURL string
	// Store is the durable token home consulted on every call.
	Store tokenstore.Store
	// Bus receives lifecycle and expiry signals.
	Bus *bus.Bus
	// Logger for per-request debug entries. Required.
	Logger *slog.Logger

	// Timeout bounds one full request/response cycle. Zero means the default.
	Timeout time.Duration
	// RateLimitRPS throttles outbound calls. Zero disables the limiter.
	RateLimitRPS   float64
	RateLimitBurst int

	// HTTPClient overrides the default tuned client. Used in tests.
	HTTPClient *http.Client
	// Now overrides the clock used for pre-flight expiry checks. Used in tests.
	Now func() time.Time
}

// Request describes one outbound call.
type Request struct {
	Method string
	// Path is joined onto the base URL; duplicate separating slashes collapse.
	Path string
	// Query is a pre-built query string ("?k=v" or ""), see [query.Build].
	Query string
	// Header entries are merged over the defaults without being overwritten.
	Header http.Header
	// Body is JSON-marshaled when non-nil.
	Body any
}

// Response is the normalized result of a successful (2xx) call.
type Response struct {
	// Status is the HTTP status code.
	Status int
	// Raw is the unparsed response body. Empty for no-content responses.
	Raw []byte
	// Payload is the decoded body: a JSON value when the body parses, the
	// raw text when it does not, or nil when the body is empty.
	Payload any
}

// Decode unmarshals the raw body into v. A no-content response leaves v
// untouched.
func (r *Response) Decode(v any) error {
	if len(r.Raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return fmt.Errorf("transport: decode response: %w", err)
	}
	return nil
}

// Mediator wraps outbound HTTP calls with auth, eventing, and error
// normalization. Safe for concurrent use.
type Mediator struct {
	baseURL string
	client  *http.Client
	store   tokenstore.Store
	bus     *bus.Bus
	limiter *rate.Limiter
	log     *slog.Logger
	now     func() time.Time
}

// New constructs a [Mediator] from cfg, applying tuned transport defaults.
func New(cfg Config) *Mediator {
	client := cfg.HTTPClient
	if client == nil {
		client = newHTTPClient(cfg.Timeout)
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = constants.DefaultRateLimitBurst
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Mediator{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
		store:   cfg.Store,
		bus:     cfg.Bus,
		limiter: limiter,
		log:     cfg.Logger,
		now:     now,
	}
}

// newHTTPClient builds an HTTP client tuned for short JSON API calls.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   constants.DefaultDialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   constants.DefaultDialTimeout,
			ResponseHeaderTimeout: constants.DefaultResponseHeaderTimeout,
			IdleConnTimeout:       constants.DefaultIdleConnTimeout,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   4,
			ForceAttemptHTTP2:     true,
		},
	}
}

// Send performs one mediated call.
//
// # Flow
//
//  1. Resolve the target URL from the base address and req.Path.
//  2. Publish RequestStarted; guarantee exactly one RequestEnded.
//  3. Pre-flight: a stored token with a past expiry aborts the call.
//  4. Merge headers, attach Authorization when a token is present.
//  5. Dispatch, then normalize the response or error.
//
// # Errors
//
// [apperr.TokenExpired] (pre-flight), [apperr.Network] (transport failure),
// or [apperr.HTTP] (non-2xx status; 401 additionally tears the session
// down via the expiry signal).
func (m *Mediator) Send(ctx context.Context, req Request) (*Response, error) {
	url := m.resolve(req.Path) + req.Query

	event := bus.RequestEvent{ID: uuid.New(), Method: req.Method, URL: url}
	m.bus.Publish(bus.TopicRequestStarted, event)
	// The ended notification must fire on every exit path, paired with the
	// started event above.
	defer m.bus.Publish(bus.TopicRequestEnded, event)

	// ── 1. Pre-flight expiry check ────────────────────────────────────────

	token, err := m.store.Get(ctx)
	if err != nil {
		// A broken store must not block the call; the backend still decides.
		m.log.Warn("token store read failed", slog.Any("error", err))
		token = ""
	}
	if token != "" && sec.Expired(token, m.now()) {
		m.expireSession(ctx)
		return nil, apperr.TokenExpired()
	}

	// ── 2. Request construction ───────────────────────────────────────────

	var bodyReader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("transport: marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}

	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	// Default to JSON without overwriting a caller-supplied content type.
	if httpReq.Header.Get(constants.HeaderContentType) == "" {
		httpReq.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}
	if token != "" {
		httpReq.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	}

	// ── 3. Dispatch ───────────────────────────────────────────────────────

	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return nil, apperr.Network(url, err)
		}
	}

	m.log.Debug("api request",
		slog.String("method", req.Method),
		slog.String("url", url),
	)

	httpResp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, apperr.Network(url, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, apperr.Network(url, err)
	}

	// ── 4. Normalization ──────────────────────────────────────────────────

	var payload any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			// Non-JSON bodies pass through as raw text; not an error by itself.
			payload = string(raw)
		}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		if httpResp.StatusCode == http.StatusUnauthorized {
			// Same teardown path as local proactive detection.
			m.expireSession(ctx)
		}
		m.log.Debug("api request failed",
			slog.String("method", req.Method),
			slog.String("url", url),
			slog.Int("status", httpResp.StatusCode),
		)
		return nil, apperr.HTTP(httpResp.StatusCode, payload)
	}

	return &Response{Status: httpResp.StatusCode, Raw: raw, Payload: payload}, nil
}

// resolve joins the base address with path, collapsing duplicate slashes.
func (m *Mediator) resolve(path string) string {
	return m.baseURL + "/" + strings.TrimLeft(path, "/")
}

// expireSession clears the stored token and raises the shared expiry signal.
// It is idempotent: clearing an empty store and re-publishing are both safe.
func (m *Mediator) expireSession(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn("token store clear failed", slog.Any("error", err))
	}
	m.bus.Publish(bus.TopicTokenExpired, nil)
}

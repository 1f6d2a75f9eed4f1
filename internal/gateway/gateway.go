// Package gateway is the sole mediator between the console's domain clients
// and the Mess Management backend. Every outbound call passes through a fixed
// interceptor chain: attach credentials, then transmit, then watch the
// response for an authentication rejection. Calls are independent and
// at-most-once; the gateway never retries, caches or cancels.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const maxResponseBytes = 1 << 20

// Options configures the optional sinks of the interceptor chain.
type Options struct {
	// Notify is invoked after a forced logout (upstream 401 on an
	// authenticated call). May be nil.
	Notify InvalidationFunc
	// Observe receives per-request metrics data. May be nil.
	Observe ObserveFunc
}

// Client issues JSON requests against the backend base URL.
type Client struct {
	base   *url.URL
	authed Doer
	public Doer
	log    zerolog.Logger
}

// New builds a Client around httpClient. The credential and rejection
// interceptors apply to authenticated calls only; the public path (login)
// goes straight to the transport, so a failed login never tears down an
// existing session.
func New(baseURL string, httpClient *http.Client, log zerolog.Logger, opts Options) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("gateway: base url %q missing scheme or host", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	instrumented := Instrument(opts.Observe, httpClient)
	return &Client{
		base:   base,
		authed: AttachCredentials(HandleRejection(opts.Notify, instrumented)),
		public: instrumented,
		log:    log,
	}, nil
}

// Request describes one backend call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded when non-nil.
	Body any
	// Out, when non-nil, receives the decoded 2xx response body.
	Out any
	// Unauthenticated routes the call past the credential interceptor.
	Unauthenticated bool
}

// Do transmits the request and decodes the response. Non-2xx statuses are
// returned as *APIError carrying the upstream payload; transport failures
// are returned wrapped with no payload. The caller's context governs the
// request lifetime.
func (c *Client) Do(ctx context.Context, req Request) error {
	target := c.base.JoinPath(strings.Split(strings.Trim(req.Path, "/"), "/")...)
	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("gateway: encode body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	doer := c.authed
	if req.Unauthenticated {
		doer = c.public
	}

	resp, err := doer.Do(httpReq)
	if err != nil {
		return fmt.Errorf("gateway: %s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("gateway: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().
			Int("status", resp.StatusCode).
			Str("method", req.Method).
			Str("path", req.Path).
			Msg("upstream error response")
		return &APIError{Status: resp.StatusCode, Body: payload}
	}

	if req.Out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, req.Out); err != nil {
			return fmt.Errorf("gateway: decode response: %w", err)
		}
	}
	return nil
}

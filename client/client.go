package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	sanitymcp "github.com/Purple-Horizons/sanity-mcp"
	"pkt.systems/pslog"
)

// Client talks to one Content Lake project/dataset. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	cfg        sanitymcp.Config
	useCDN     bool
	httpClient *http.Client
	logger     pslog.Base

	// readBase/writeBase override the derived endpoints. Used by tests and
	// private deployments that front the API with their own hosts.
	readBase  string
	writeBase string
}

// Option customises client construction.
type Option func(*Client)

// WithHTTPClient supplies a custom HTTP client/transport stack.
// Use this for custom proxies, tracing round-trippers, or connection
// pooling behavior not covered by the defaults.
func WithHTTPClient(cli *http.Client) Option {
	return func(c *Client) {
		if cli != nil {
			c.httpClient = cli
		}
	}
}

// WithLogger supplies a logger for client diagnostics.
// Passing nil falls back to pslog.NoopLogger().
func WithLogger(logger pslog.Base) Option {
	return func(c *Client) {
		if logger == nil {
			c.logger = pslog.NoopLogger()
			return
		}
		c.logger = logger
	}
}

// WithEndpoints overrides the derived read and write base URLs (scheme and
// host included, no trailing slash). An empty value keeps the derived URL
// for that path. Endpoint-selection semantics are otherwise unchanged:
// writes still refuse to run without a token.
func WithEndpoints(readBaseURL, writeBaseURL string) Option {
	return func(c *Client) {
		c.readBase = strings.TrimRight(strings.TrimSpace(readBaseURL), "/")
		c.writeBase = strings.TrimRight(strings.TrimSpace(writeBaseURL), "/")
	}
}

// New constructs a client from the immutable connection configuration.
// Defaults are applied for dataset, API version, and host; a missing
// project id fails immediately.
func New(cfg sanitymcp.Config, opts ...Option) (*Client, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg:        cfg,
		useCDN:     cfg.CDNEnabled(),
		httpClient: &http.Client{},
		logger:     pslog.NoopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the connection configuration the client was built with.
func (c *Client) Config() sanitymcp.Config {
	return c.cfg
}

// UseCDN reports whether reads go through the accelerated CDN subdomain.
func (c *Client) UseCDN() bool {
	return c.useCDN
}

// readBaseURL selects the per-request read endpoint from the immutable
// configuration: the CDN subdomain for anonymous clients, the direct API
// host otherwise.
func (c *Client) readBaseURL() string {
	if c.readBase != "" {
		return c.readBase
	}
	sub := sanitymcp.SubdomainAPI
	if c.useCDN {
		sub = sanitymcp.SubdomainCDN
	}
	return fmt.Sprintf("https://%s.%s.%s/v%s", c.cfg.ProjectID, sub, c.cfg.APIHost, c.cfg.APIVersion)
}

// writeBaseURL always points at the direct host; mutations never go through
// the CDN regardless of the read-path setting.
func (c *Client) writeBaseURL() string {
	if c.writeBase != "" {
		return c.writeBase
	}
	return fmt.Sprintf("https://%s.%s.%s/v%s", c.cfg.ProjectID, sanitymcp.SubdomainAPI, c.cfg.APIHost, c.cfg.APIVersion)
}

// requireToken rejects credentialed operations before any network I/O.
func (c *Client) requireToken(operation string) error {
	if c.cfg.HasToken() {
		return nil
	}
	return &AuthRequiredError{Operation: operation}
}

func (c *Client) newRequest(ctx context.Context, method, base, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	target := base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.cfg.HasToken() {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.cfg.Token))
	}
	c.applyCorrelationHeader(ctx, req)
	return req, nil
}

// errorFn converts a non-success response into the operation's error type.
type errorFn func(status int, body []byte) error

func asQueryError(status int, body []byte) error {
	return &QueryError{Status: status, Body: string(body)}
}

func asMutationError(status int, body []byte) error {
	return &MutationError{Status: status, Body: string(body)}
}

// getJSON issues a GET against base+path and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, base, path string, query url.Values, out any, wrap errorFn) error {
	c.logTraceCtx(ctx, "client.http.get.start", "path", path)
	req, err := c.newRequest(ctx, http.MethodGet, base, path, query, nil, "")
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, path, out, wrap)
}

// postJSON issues a POST with a JSON body against base+path and decodes the
// response into out.
func (c *Client) postJSON(ctx context.Context, base, path string, payload any, out any, wrap errorFn) error {
	c.logTraceCtx(ctx, "client.http.post.start", "path", path)
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, base, path, nil, buf, "application/json")
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, path, out, wrap)
}

// postBinary issues a POST with a raw body and decodes the response into out.
func (c *Client) postBinary(ctx context.Context, base, path string, query url.Values, body io.Reader, contentType string, out any, wrap errorFn) error {
	c.logTraceCtx(ctx, "client.http.post.start", "path", path)
	req, err := c.newRequest(ctx, http.MethodPost, base, path, query, body, contentType)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, path, out, wrap)
}

func (c *Client) doJSON(ctx context.Context, req *http.Request, path string, out any, wrap errorFn) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logErrorCtx(ctx, "client.http.transport_error", "path", path, "error", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		data, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return readErr
		}
		c.logWarnCtx(ctx, "client.http.error", "path", path, "status", resp.StatusCode)
		return wrap(resp.StatusCode, data)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	c.logTraceCtx(ctx, "client.http.success", "path", path, "status", resp.StatusCode)
	return nil
}

func hasKey(keyvals []any, key string) bool {
	for i := 0; i+1 < len(keyvals); i += 2 {
		if k, ok := keyvals[i].(string); ok && k == key {
			return true
		}
	}
	return false
}

func (c *Client) enrichKeyvals(ctx context.Context, keyvals []any) []any {
	cid := CorrelationIDFromContext(ctx)
	if cid == "" || hasKey(keyvals, "cid") {
		return keyvals
	}
	enriched := append([]any(nil), keyvals...)
	return append(enriched, "cid", cid)
}

func (c *Client) logTraceCtx(ctx context.Context, msg string, keyvals ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Trace(msg, c.enrichKeyvals(ctx, keyvals)...)
}

func (c *Client) logWarnCtx(ctx context.Context, msg string, keyvals ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Warn(msg, c.enrichKeyvals(ctx, keyvals)...)
}

func (c *Client) logErrorCtx(ctx context.Context, msg string, keyvals ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Error(msg, c.enrichKeyvals(ctx, keyvals)...)
}

// Package leano implements the session-authenticated command protocol
// spoken by ZITEL LTE routers over their local HTTP interface: a login
// call that yields an opaque token, and a command endpoint that accepts
// fixed-grammar text commands under a Leano_Auth header.
package leano

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	authPath    = "/authenticate.leano"
	commandPath = "/api.leano"

	// authHeader carries the session token on every command call. The
	// firmware matches it case-sensitively, see post.
	authHeader = "Leano_Auth"

	authContentType    = "application/x-www-form-urlencoded"
	commandContentType = "application/x-www-form-urlencoded; charset=UTF-8"
)

// Config contains the settings for connecting to a router.
type Config struct {
	// URL is the base URL of the router, e.g. http://192.168.0.1.
	URL string

	// Username and Password form the login command. The stock firmware
	// ships with admin/admin.
	Username string
	Password string

	// AuthTimeout bounds the login round trip.
	AuthTimeout time.Duration

	// CommandTimeout bounds each command round trip.
	CommandTimeout time.Duration
}

// DefaultConfig returns a Config with the stock firmware's defaults.
func DefaultConfig() Config {
	return Config{
		URL:            "http://192.168.0.1",
		Username:       "admin",
		Password:       "admin",
		AuthTimeout:    10 * time.Second,
		CommandTimeout: 30 * time.Second,
	}
}

// Session is the credential state produced by a successful Authenticate.
// The token is the sole credential. It is never persisted and does not
// change for the life of the session.
type Session struct {
	Token string
}

// Degraded reports whether the device accepted the login without issuing a
// token. Observed firmware treats such sessions as valid, so this is a
// warning state for the caller to surface rather than an error.
func (s Session) Degraded() bool {
	return s.Token == ""
}

var (
	// ErrAuthRejected reports a login the device answered with a
	// non-success status. Fatal for the session; the client never
	// retries on its own.
	ErrAuthRejected = errors.New("authentication rejected by device")

	// ErrNotAuthenticated reports an Execute call made before a
	// successful Authenticate.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// TransportError wraps a failed round trip: connection errors, timeouts,
// non-2xx answers and bodies that are not JSON at all.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a reply that was JSON but not the flat object the
// protocol calls for.
type ProtocolError struct {
	// Command holds the command verb, never its arguments.
	Command string
	Reason  string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: malformed reply: %s", e.Command, e.Reason)
}

// Client speaks the Leano protocol to a single router. It starts
// unauthenticated; Authenticate moves it to the authenticated state in
// which Execute attaches the session token to every call. A Client holds
// one session and never re-authenticates on its own.
//
// A Client is not safe for concurrent use during Authenticate; once
// authenticated, concurrent Execute calls are fine.
type Client struct {
	config     Config
	baseURL    *url.URL
	httpClient *http.Client
	session    *Session
}

// New creates a Client for the router at cfg.URL. Zero timeouts fall back
// to the defaults.
func New(cfg Config) (*Client, error) {
	base, err := parseBaseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	def := DefaultConfig()
	if cfg.Username == "" {
		cfg.Username = def.Username
	}
	if cfg.Password == "" {
		cfg.Password = def.Password
	}
	if cfg.AuthTimeout <= 0 {
		cfg.AuthTimeout = def.AuthTimeout
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = def.CommandTimeout
	}
	return &Client{
		config:  cfg,
		baseURL: base,
		// Deadlines come from the per-call contexts built in post; the
		// shared client carries no timeout of its own.
		httpClient: &http.Client{},
	}, nil
}

// parseBaseURL normalizes a user-supplied gateway address: a bare host
// gets an http scheme, and any path, query or fragment is dropped.
func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultConfig().URL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse gateway URL %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// Authenticate sends the fixed-grammar login and stores the returned token
// for every later Execute call. The device reports rejection in-band with
// a non-success status, surfaced as ErrAuthRejected.
func (c *Client) Authenticate(ctx context.Context) (Session, error) {
	body := fmt.Sprintf("authenticate %s %s", c.config.Username, c.config.Password)
	reply, err := c.post(ctx, authPath, body, authContentType, "", c.config.AuthTimeout, "authenticate")
	if err != nil {
		return Session{}, err
	}
	if !reply.OK() {
		if code := reply.Code(); code != "" {
			return Session{}, fmt.Errorf("%w (code %s)", ErrAuthRejected, code)
		}
		return Session{}, ErrAuthRejected
	}
	session := Session{Token: reply.Field(FieldToken)}
	c.session = &session
	return session, nil
}

// Execute sends cmd under the current session and returns the decoded
// reply. It does not interpret the reply's status field; per-command
// success semantics belong to the caller. Calling Execute before a
// successful Authenticate fails with ErrNotAuthenticated.
func (c *Client) Execute(ctx context.Context, cmd Command) (Response, error) {
	if c.session == nil {
		return nil, ErrNotAuthenticated
	}
	return c.post(ctx, commandPath, string(cmd), commandContentType, c.session.Token, c.config.CommandTimeout, cmd.Verb())
}

// post performs one round trip: POST body to path, bounded by timeout,
// and decode the reply. Command calls carry the session token even when
// the device issued an empty one; the login call carries no auth header.
func (c *Client) post(ctx context.Context, path, body, contentType, token string, timeout time.Duration, verb string) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := c.baseURL.ResolveReference(&url.URL{Path: path}).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if path == commandPath {
		// The firmware matches the auth header case-sensitively, so
		// bypass Go's canonicalization (which would send Leano_auth).
		req.Header[authHeader] = []string{token}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{URL: endpoint, Err: fmt.Errorf("unexpected status code %d", resp.StatusCode)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}
	if !json.Valid(raw) {
		return nil, &TransportError{URL: endpoint, Err: errors.New("body is not JSON")}
	}

	var reply Response
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, &ProtocolError{Command: verb, Reason: "reply is not a flat JSON object"}
	}
	return reply, nil
}

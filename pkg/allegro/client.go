package allegro

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/oczkers/gollegro/pkg/soap"
)

const (
	defaultCountryCode = 1
	defaultRetryDelay  = 5 * time.Second
)

// Client is a stateful WebAPI client. It owns the credentials, the live
// session token and the transport handle. Calls are sequential; see the
// package documentation for the concurrency contract.
type Client struct {
	username    string
	passwdHash  string // base64 of sha256(password), computed once
	apiKey      string
	countryCode int
	debug       bool

	logger     *slog.Logger
	config     *soap.Config
	retryDelay time.Duration

	transport soap.Caller
	dial      func() (soap.Caller, error)
	sleep     func(ctx context.Context, d time.Duration) error
	now       func() time.Time

	token string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCountryCode sets the WebAPI country code used on login.
func WithCountryCode(code int) Option {
	return func(c *Client) { c.countryCode = code }
}

// WithEndpoint points the client at a non-production service URL.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		c.config.Endpoint = url
		c.config.Namespace = url
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.config.HTTPClient = httpClient }
}

// WithRetryDelay sets the fixed delay between retries. Defaults to 5s.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryDelay = d
		}
	}
}

// WithDebug enables verbose per-call logging, including argument names.
// Credential material is never logged.
func WithDebug(debug bool) Option {
	return func(c *Client) { c.debug = debug }
}

// WithTransport substitutes the wire client. The transport is then never
// rebuilt on re-login unless WithDialFunc is also given. Intended for
// tests.
func WithTransport(transport soap.Caller) Option {
	return func(c *Client) { c.transport = transport }
}

// WithDialFunc sets the factory used to (re)build the transport handle.
// Re-login rebuilds the transport through it, re-binding connection-level
// state.
func WithDialFunc(dial func() (soap.Caller, error)) Option {
	return func(c *Client) { c.dial = dial }
}

// WithSleepFunc substitutes the retry-delay wait. Intended for tests.
func WithSleepFunc(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = sleep }
}

// WithClock substitutes the time source used for date-window arguments.
// Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New constructs a client and performs the initial login. The cleartext
// password is hashed immediately and not retained. Initial login failures
// are returned to the caller so misconfigured credentials fail fast;
// later session expiry is recovered automatically.
func New(ctx context.Context, username, password, apiKey string, opts ...Option) (*Client, error) {
	digest := sha256.Sum256([]byte(password))

	c := &Client{
		username:    username,
		passwdHash:  base64.StdEncoding.EncodeToString(digest[:]),
		apiKey:      apiKey,
		countryCode: defaultCountryCode,
		logger:      slog.Default(),
		config:      soap.DefaultConfig(),
		retryDelay:  defaultRetryDelay,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sleep == nil {
		c.sleep = sleepContext
	}

	if c.transport == nil {
		if c.dial == nil {
			c.dial = func() (soap.Caller, error) {
				return soap.NewClient(c.config, c.logger), nil
			}
		}
		transport, err := c.dial()
		if err != nil {
			return nil, fmt.Errorf("dialing webapi: %w", err)
		}
		c.transport = transport
	}

	token, err := c.login(ctx)
	if err != nil {
		return nil, fmt.Errorf("initial login: %w", err)
	}
	c.token = token

	return c, nil
}

// sleepContext blocks for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// chunk splits ids into batches of at most size elements.
func chunk[T any](list []T, size int) [][]T {
	var out [][]T
	for len(list) > size {
		out = append(out, list[:size])
		list = list[size:]
	}
	if len(list) > 0 {
		out = append(out, list)
	}
	return out
}

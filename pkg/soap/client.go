package soap

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Config holds wire-level client settings.
type Config struct {
	// Endpoint is the service URL requests are posted to.
	Endpoint string
	// Namespace is the XML namespace of request elements and the base of
	// the SOAPAction header.
	Namespace string
	UserAgent string
	Timeout   time.Duration
	// MinTLSVersion constrains the TLS handshake. Zero keeps the
	// net/http default.
	MinTLSVersion uint16
	// HTTPClient overrides the built-in client when set; TLS and timeout
	// settings above are then ignored.
	HTTPClient *http.Client
}

// DefaultConfig returns the production WebAPI endpoint settings.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:      "https://webapi.allegro.pl/service.php",
		Namespace:     "https://webapi.allegro.pl/service.php",
		UserAgent:     "gollegro/1.0",
		Timeout:       30 * time.Second,
		MinTLSVersion: tls.VersionTLS12,
	}
}

// Caller executes one named remote operation. *Client satisfies it; tests
// substitute fakes.
type Caller interface {
	Call(ctx context.Context, operation string, params Params) (*Response, error)
}

// Client posts SOAP envelopes to the WebAPI endpoint.
type Client struct {
	http   *http.Client
	config *Config
	logger *slog.Logger
}

// NewClient creates a wire client. A nil config selects DefaultConfig; a
// nil logger selects slog.Default.
func NewClient(config *Config, logger *slog.Logger) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig:     &tls.Config{MinVersion: config.MinTLSVersion},
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
			Timeout: config.Timeout,
		}
	}

	return &Client{
		http:   httpClient,
		config: config,
		logger: logger,
	}
}

// Call executes one remote operation. Service faults come back as *Fault;
// connectivity failures are wrapped with ErrTransport; anything else is a
// decode problem.
func (c *Client) Call(ctx context.Context, operation string, params Params) (*Response, error) {
	doc, err := buildEnvelope(c.config.Namespace, operation, params)
	if err != nil {
		return nil, err
	}
	payload, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", operation, err)
	}

	callID := uuid.New().String()
	c.logger.Debug("webapi request", "operation", operation, "call_id", callID, "bytes", len(payload))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", fmt.Sprintf("%q", c.config.Namespace+"#"+operation))
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s response: %v", ErrTransport, operation, err)
	}

	// Faults ship with varying HTTP statuses; decode before looking at
	// the status line.
	result, err := parseEnvelope(body)
	if err != nil {
		var fault *Fault
		if errors.As(err, &fault) {
			c.logger.Debug("webapi fault", "operation", operation, "call_id", callID, "code", fault.Code)
			return nil, fault
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: %s: status %d", ErrTransport, operation, resp.StatusCode)
		}
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", ErrTransport, operation, resp.StatusCode)
	}

	c.logger.Debug("webapi response", "operation", operation, "call_id", callID, "bytes", len(body))
	return result, nil
}

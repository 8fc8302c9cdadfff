package allegro

import (
	"context"
	"fmt"

	"github.com/oczkers/gollegro/pkg/soap"
)

// login performs the full two-step handshake: query the system status for
// the current verification key, then submit the encrypted-login request.
// Returns the fresh session token. Never consults the stored token.
func (c *Client) login(ctx context.Context) (string, error) {
	status, err := c.transport.Call(ctx, "doQuerySysStatus", soap.Params{
		{Name: "sysvar", Value: 1},
		{Name: "countryId", Value: c.countryCode},
		{Name: "webapiKey", Value: c.apiKey},
	})
	if err != nil {
		return "", fmt.Errorf("querying system status: %w", err)
	}
	verKey, err := status.Int("verKey")
	if err != nil {
		return "", fmt.Errorf("querying system status: %w", err)
	}

	resp, err := c.transport.Call(ctx, "doLoginEnc", soap.Params{
		{Name: "userLogin", Value: c.username},
		{Name: "userHashPassword", Value: c.passwdHash},
		{Name: "countryCode", Value: c.countryCode},
		{Name: "webapiKey", Value: c.apiKey},
		{Name: "localVersion", Value: verKey},
	})
	if err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}
	token := resp.Text("sessionHandlePart")
	if token == "" {
		return "", fmt.Errorf("login response missing sessionHandlePart")
	}
	return token, nil
}

// reauthenticate repeats the login handshake until it succeeds, waiting
// the retry delay between attempts. An existing token never short-circuits
// the handshake. When a dial function is configured the transport handle
// is rebuilt before each attempt, so re-login also recovers from
// connection-level breakage. Gives up only on context cancellation.
func (c *Client) reauthenticate(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if c.dial != nil {
			transport, err := c.dial()
			if err != nil {
				c.logger.Warn("rebuilding webapi transport failed", "error", err)
				if err := c.sleep(ctx, c.retryDelay); err != nil {
					return "", err
				}
				continue
			}
			c.transport = transport
		}

		token, err := c.login(ctx)
		if err == nil {
			return token, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		c.logger.Warn("login failed, retrying", "error", err, "delay", c.retryDelay)
		if err := c.sleep(ctx, c.retryDelay); err != nil {
			return "", err
		}
	}
}

package allegro

import (
	"context"

	"github.com/oczkers/gollegro/pkg/soap"
)

// The two journal-polling operations carry the session token under a
// different argument name than every other operation.
var journalOperations = map[string]bool{
	"doGetSiteJournalDeals":     true,
	"doGetSiteJournalDealsInfo": true,
}

// sessionParamName returns the argument name carrying the session token
// for the given operation.
func sessionParamName(operation string) string {
	if journalOperations[operation] {
		return "sessionId"
	}
	return "sessionHandle"
}

// call executes one remote operation, absorbing transient failures.
//
// The loop attaches the current session token, invokes the transport and
// classifies any failure: connectivity and transient server faults are
// retried after the fixed delay; a reported session expiry triggers a
// fresh login before the retry; anything unrecognized is logged in full
// and treated as a session problem. There is no attempt cap: the call
// returns a response, or an error only once ctx is cancelled.
func (c *Client) call(ctx context.Context, operation string, params soap.Params) (*soap.Response, error) {
	if c.debug {
		names := make([]string, len(params))
		for i, p := range params {
			names[i] = p.Name
		}
		c.logger.Debug("dispatching webapi call", "operation", operation, "args", names)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		augmented := params.Set(sessionParamName(operation), c.token)
		resp, err := c.transport.Call(ctx, operation, augmented)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		switch classify(err) {
		case kindTransport:
			c.logger.Warn("webapi call failed, retrying", "operation", operation, "error", err)
			if err := c.sleep(ctx, c.retryDelay); err != nil {
				return nil, err
			}

		case kindSessionExpired:
			c.logger.Debug("session expired, re-authenticating", "operation", operation, "error", err)
			token, err := c.reauthenticate(ctx)
			if err != nil {
				return nil, err
			}
			c.token = token

		case kindServerError:
			c.logger.Debug("transient service error, retrying", "operation", operation, "error", err)
			if err := c.sleep(ctx, c.retryDelay); err != nil {
				return nil, err
			}

		default:
			c.logger.Warn("unclassified webapi failure, re-authenticating", "operation", operation, "error", err)
			if err := c.sleep(ctx, c.retryDelay); err != nil {
				return nil, err
			}
			token, err := c.reauthenticate(ctx)
			if err != nil {
				return nil, err
			}
			c.token = token
		}
	}
}

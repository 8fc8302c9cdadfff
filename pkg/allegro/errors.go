package allegro

import (
	"errors"

	"github.com/oczkers/gollegro/pkg/soap"
)

// Fault codes the dispatcher reacts to.
const (
	faultNoSession      = "ERR_NO_SESSION"
	faultSessionExpired = "ERR_SESSION_EXPIRED"
	faultInternalError  = "ERR_INTERNAL_SYSTEM_ERROR"
)

// faultKind partitions remote-call failures by the recovery they require.
type faultKind int

const (
	// kindTransport covers connectivity failures; the session is presumed
	// still valid and the call is retried after a delay.
	kindTransport faultKind = iota
	// kindSessionExpired covers faults reporting a missing or expired
	// session; a fresh login precedes the retry.
	kindSessionExpired
	// kindServerError covers transient server-side faults; retried after
	// a delay without re-login.
	kindServerError
	// kindUnclassified covers everything else; handled defensively as a
	// possible session problem.
	kindUnclassified
)

// classify maps a remote-call failure onto the dispatcher's error kinds.
// Fault-code matching happens only here.
func classify(err error) faultKind {
	var fault *soap.Fault
	if errors.As(err, &fault) {
		switch fault.Code {
		case faultNoSession, faultSessionExpired:
			return kindSessionExpired
		case faultInternalError:
			return kindServerError
		default:
			return kindUnclassified
		}
	}
	if errors.Is(err, soap.ErrTransport) {
		return kindTransport
	}
	return kindUnclassified
}

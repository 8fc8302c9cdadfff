package soap

import (
	"errors"
	"fmt"
)

// ErrTransport marks connectivity-level failures: connection refused, DNS,
// timeouts, unreadable responses. Wrapped errors satisfy
// errors.Is(err, ErrTransport).
var ErrTransport = errors.New("soap: transport failure")

// Fault is a service-level SOAP fault. Code is the machine-readable fault
// code reported by the service with any namespace prefix stripped.
type Fault struct {
	Code    string
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("soap: fault %s: %s", f.Code, f.Message)
}

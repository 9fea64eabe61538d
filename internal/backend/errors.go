package backend

import "fmt"

// Op identifies which backend call failed
type Op string

const (
	OpConnect Op = "connect"
	OpQuery   Op = "query"
	OpPreview Op = "preview"
)

// TransportError wraps failures below the application protocol:
// dial errors, timeouts, unreadable or malformed replies.
type TransportError struct {
	Op         Op
	Underlying error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Underlying)
}

func (e *TransportError) Unwrap() error {
	return e.Underlying
}

// WrapTransportError creates a TransportError from underlying error
func WrapTransportError(op Op, err error) error {
	return &TransportError{Op: op, Underlying: err}
}

package chain

import (
	"errors"
	"fmt"
)

// RPCError is returned when a chain API request fails.
type RPCError struct {
	Operation string
	Message   string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("chain %s failed: %s", e.Operation, e.Message)
}

// NotFoundError is returned when a resource does not exist on the chain.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Resource)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// CallError is returned when a read-only contract call is rejected by the
// contract itself rather than by transport.
type CallError struct {
	Function string
	Cause    string
}

func (e *CallError) Error() string {
	if e.Cause == "" {
		return fmt.Sprintf("contract call %s rejected", e.Function)
	}
	return fmt.Sprintf("contract call %s rejected: %s", e.Function, e.Cause)
}

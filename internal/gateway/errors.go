package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind classifies gateway failures so callers can decide whether
// to retry, back off, or surface the error
type ErrorKind string

const (
	KindInvalidResponse ErrorKind = "invalid_response"
	KindRateLimited     ErrorKind = "rate_limited"
	KindUnavailable     ErrorKind = "unavailable"
)

// GatewayError wraps a failure from the generative model with its
// classification and the operation that produced it
type GatewayError struct {
	Kind    ErrorKind
	Op      string
	Content json.RawMessage // offending payload for invalid_response, nil otherwise
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("gateway %s: %s", e.Op, e.Kind)
}

func (e *GatewayError) Unwrap() error { return e.Err }

func invalidResponse(op string, content json.RawMessage, err error) *GatewayError {
	return &GatewayError{Kind: KindInvalidResponse, Op: op, Content: content, Err: err}
}

func rateLimited(op string, err error) *GatewayError {
	return &GatewayError{Kind: KindRateLimited, Op: op, Err: err}
}

func unavailable(op string, err error) *GatewayError {
	return &GatewayError{Kind: KindUnavailable, Op: op, Err: err}
}

// IsRateLimited reports whether err is a rate-limit gateway error
func IsRateLimited(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Kind == KindRateLimited
}

// IsInvalidResponse reports whether err is a malformed-output gateway error
func IsInvalidResponse(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Kind == KindInvalidResponse
}

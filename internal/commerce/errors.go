// internal/commerce/errors.go
package commerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrTransport marks network-level failures: connection refused, timeouts,
// non-2xx responses, undecodable bodies. Callers surface it as a generic
// failure and may retry manually; the gateway itself never retries.
var ErrTransport = errors.New("commerce: transport failure")

// GraphQLError is one entry of the errors array in a mutation payload or the
// top-level response envelope. Mutation payloads carry the code flat; the
// top-level envelope nests it under extensions.exception.code.
type GraphQLError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e *GraphQLError) UnmarshalJSON(data []byte) error {
	var raw struct {
		Field      string `json:"field"`
		Message    string `json:"message"`
		Code       string `json:"code"`
		Extensions *struct {
			Exception *struct {
				Code string `json:"code"`
			} `json:"exception"`
		} `json:"extensions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Field = raw.Field
	e.Message = raw.Message
	e.Code = raw.Code
	if e.Code == "" && raw.Extensions != nil && raw.Extensions.Exception != nil {
		e.Code = raw.Extensions.Exception.Code
	}
	return nil
}

// RequestError is a failed operation: a non-empty errors list came back. Only
// the first reported entry is carried, matching what the UI surfaces.
type RequestError struct {
	Operation string
	Field     string
	Message   string
	Code      string
}

func (e *RequestError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// newRequestError builds a RequestError from the first entry of a non-empty
// errors list.
func newRequestError(operation string, errs []GraphQLError) *RequestError {
	first := errs[0]
	return &RequestError{
		Operation: operation,
		Field:     first.Field,
		Message:   first.Message,
		Code:      first.Code,
	}
}

// IsTransport reports whether err is a network-level failure
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsAuthExpired reports whether err signals an expired or invalid credential.
// The backend reports this either through a message or a machine code; both
// spellings of the expired-signature message occur in the wild.
func IsAuthExpired(err error) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	switch reqErr.Code {
	case "UNAUTHENTICATED", "PERMISSION_DENIED", "JWT_SIGNATURE_EXPIRED", "JWT_INVALID_TOKEN":
		return true
	}
	msg := strings.ToLower(reqErr.Message)
	return strings.Contains(msg, "signature has expired") ||
		strings.Contains(msg, "token has expired")
}

// IsStaleCheckout reports whether err means the checkout identifier no longer
// resolves on the backend (session expired or deleted upstream).
func IsStaleCheckout(err error) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	if reqErr.Code == "NOT_FOUND" {
		return true
	}
	return strings.Contains(reqErr.Message, "Couldn't resolve to a node")
}

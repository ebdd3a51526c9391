// internal/domain/checkout/errors.go
package checkout

import (
	"errors"
	"fmt"
)

// ErrNoCheckout means no active checkout session exists for the device.
// Callers render an empty-cart affordance rather than an error.
var ErrNoCheckout = errors.New("checkout: no active session")

// ErrNotAuthenticated means a checkout step that requires a signed-in user
// was reached without one.
var ErrNotAuthenticated = errors.New("checkout: authentication required")

// ErrOrderPlaced means the confirmation step was re-entered after the order
// was already placed and the session cleared.
var ErrOrderPlaced = errors.New("checkout: order already placed")

// ValidationError is a local validation failure. It never reaches the
// network and blocks step advancement immediately.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsValidation reports whether err is a local validation failure
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

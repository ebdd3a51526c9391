// internal/domain/auth/errors.go
package auth

import "errors"

// ErrNotSignedIn means the operation requires a signed-in device
var ErrNotSignedIn = errors.New("auth: not signed in")

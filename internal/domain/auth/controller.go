// internal/domain/auth/controller.go
package auth

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/commerce"
	"github.com/your-org/storefront-gateway/internal/domain/session"
)

// State is the device's authentication state
type State string

const (
	// StateChecking means a stored token exists but the profile has not been
	// confirmed against the backend yet
	StateChecking State = "checking"
	// StateAuthenticated means the device holds a valid token and a profile
	StateAuthenticated State = "authenticated"
	// StateUnauthenticated means the device holds no usable credentials
	StateUnauthenticated State = "unauthenticated"
)

// API is the slice of the remote gateway the controller uses.
// *commerce.Client satisfies it.
type API interface {
	TokenCreate(ctx context.Context, email, password string) (*commerce.TokenPair, error)
	AccountRegister(ctx context.Context, input commerce.AccountRegisterInput) (*commerce.User, error)
	Me(ctx context.Context) (*commerce.User, error)
}

// CheckoutResetter clears a device's checkout state on logout
type CheckoutResetter interface {
	Clear(ctx context.Context, device string) error
}

// Controller drives the authentication lifecycle per device: login, register,
// logout and session restoration on reconnect.
type Controller struct {
	api      API
	sessions *session.Store
	checkout CheckoutResetter
	channel  string
	logger   *logrus.Logger
}

// NewController creates the authentication controller
func NewController(api API, sessions *session.Store, checkout CheckoutResetter, channel string, logger *logrus.Logger) *Controller {
	return &Controller{
		api:      api,
		sessions: sessions,
		checkout: checkout,
		channel:  channel,
		logger:   logger,
	}
}

// Status reports the device's current authentication state and cached
// profile. A stored but expired token counts as unauthenticated.
func (c *Controller) Status(ctx context.Context, device string) (State, *commerce.User) {
	if !c.sessions.IsValid(ctx, device) {
		return StateUnauthenticated, nil
	}
	user, ok := c.sessions.User(ctx, device)
	if !ok {
		return StateChecking, nil
	}
	return StateAuthenticated, user
}

// Restore re-validates a device's stored credentials against the backend and
// refreshes the cached profile. Invalid or rejected tokens clear the session.
func (c *Controller) Restore(ctx context.Context, device string) (State, *commerce.User, error) {
	token, hasToken := c.sessions.Token(ctx, device)
	if !hasToken {
		// Guest device: nothing to restore, and its cart stays untouched.
		return StateUnauthenticated, nil, nil
	}
	if !c.sessions.IsValid(ctx, device) {
		c.clearDevice(ctx, device)
		return StateUnauthenticated, nil, nil
	}

	user, err := c.api.Me(commerce.WithToken(ctx, token))
	if err != nil {
		if commerce.IsTransport(err) {
			// Backend unreachable: keep the stored session, report what we
			// have cached.
			state, cached := c.Status(ctx, device)
			return state, cached, err
		}
		c.clearDevice(ctx, device)
		return StateUnauthenticated, nil, nil
	}

	if err := c.sessions.SaveUser(ctx, device, user); err != nil {
		c.logger.WithField("device", device).WithError(err).Warn("Failed to cache profile")
	}
	return StateAuthenticated, user, nil
}

// clearDevice drops credentials and checkout state. Storage errors are logged,
// never surfaced; the device still ends up signed out.
func (c *Controller) clearDevice(ctx context.Context, device string) {
	if err := c.sessions.Clear(ctx, device); err != nil {
		c.logger.WithField("device", device).WithError(err).Warn("Failed to clear session")
	}
	if err := c.checkout.Clear(ctx, device); err != nil {
		c.logger.WithField("device", device).WithError(err).Warn("Failed to clear checkout")
	}
}

// Login exchanges credentials for a token pair, stores it for the device and
// caches the fetched profile
func (c *Controller) Login(ctx context.Context, device, email, password string) (*commerce.User, error) {
	pair, err := c.api.TokenCreate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := c.sessions.Save(ctx, device, pair.Token, pair.RefreshToken); err != nil {
		return nil, err
	}

	user, err := c.api.Me(commerce.WithToken(ctx, pair.Token))
	if err != nil {
		// Token is stored; the profile fetch can be retried later.
		c.logger.WithField("device", device).WithError(err).Warn("Profile fetch after login failed")
		return nil, err
	}
	if err := c.sessions.SaveUser(ctx, device, user); err != nil {
		c.logger.WithField("device", device).WithError(err).Warn("Failed to cache profile")
	}

	c.logger.WithFields(logrus.Fields{
		"device": device,
		"email":  email,
	}).Info("User logged in")
	return user, nil
}

// Register creates a new account. It does not authenticate the device;
// callers follow up with an explicit Login.
func (c *Controller) Register(ctx context.Context, email, password, firstName, lastName string) (*commerce.User, error) {
	return c.api.AccountRegister(ctx, commerce.AccountRegisterInput{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Channel:   c.channel,
	})
}

// Logout clears the device's credentials and checkout state. It never fails.
func (c *Controller) Logout(ctx context.Context, device string) {
	c.clearDevice(ctx, device)
	c.logger.WithField("device", device).Info("User logged out")
}

// RefreshUser re-fetches the profile for a signed-in device. Failures leave
// the cached profile untouched.
func (c *Controller) RefreshUser(ctx context.Context, device string) (*commerce.User, error) {
	token, ok := c.sessions.Token(ctx, device)
	if !ok || !session.TokenIsValid(token) {
		return nil, ErrNotSignedIn
	}
	user, err := c.api.Me(commerce.WithToken(ctx, token))
	if err != nil {
		c.logger.WithField("device", device).WithError(err).Warn("Profile refresh failed")
		return nil, err
	}
	if err := c.sessions.SaveUser(ctx, device, user); err != nil {
		c.logger.WithField("device", device).WithError(err).Warn("Failed to cache profile")
	}
	return user, nil
}

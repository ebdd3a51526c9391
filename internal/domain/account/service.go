// internal/domain/account/service.go
package account

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/commerce"
	"github.com/your-org/storefront-gateway/internal/domain/auth"
	"github.com/your-org/storefront-gateway/internal/domain/session"
)

// API is the slice of the remote gateway the account service uses.
// *commerce.Client satisfies it.
type API interface {
	Me(ctx context.Context) (*commerce.User, error)
	AccountUpdate(ctx context.Context, input commerce.AccountInput) (*commerce.User, error)
	MyOrders(ctx context.Context, first int, after string) (*commerce.OrderPage, error)
	OrderByID(ctx context.Context, id string) (*commerce.Order, error)
}

// Service exposes the signed-in user's profile and order history. All reads
// go straight to the backend with the device's bearer token.
type Service struct {
	api      API
	sessions *session.Store
	logger   *logrus.Logger
}

// NewService creates the account read service
func NewService(api API, sessions *session.Store, logger *logrus.Logger) *Service {
	return &Service{api: api, sessions: sessions, logger: logger}
}

func (s *Service) authContext(ctx context.Context, device string) (context.Context, error) {
	token, ok := s.sessions.Token(ctx, device)
	if !ok || !session.TokenIsValid(token) {
		return nil, auth.ErrNotSignedIn
	}
	return commerce.WithToken(ctx, token), nil
}

// Profile fetches the signed-in user's profile
func (s *Service) Profile(ctx context.Context, device string) (*commerce.User, error) {
	authed, err := s.authContext(ctx, device)
	if err != nil {
		return nil, err
	}
	return s.api.Me(authed)
}

// UpdateProfile updates the signed-in user's name fields and refreshes the
// cached profile
func (s *Service) UpdateProfile(ctx context.Context, device string, input commerce.AccountInput) (*commerce.User, error) {
	authed, err := s.authContext(ctx, device)
	if err != nil {
		return nil, err
	}
	user, err := s.api.AccountUpdate(authed, input)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if err := s.sessions.SaveUser(ctx, device, user); err != nil {
			s.logger.WithField("device", device).WithError(err).Warn("Failed to cache updated profile")
		}
	}
	return user, nil
}

// Orders fetches one page of the signed-in user's order history
func (s *Service) Orders(ctx context.Context, device string, first int, after string) (*commerce.OrderPage, error) {
	authed, err := s.authContext(ctx, device)
	if err != nil {
		return nil, err
	}
	if first <= 0 {
		first = 20
	}
	return s.api.MyOrders(authed, first, after)
}

// Order fetches one order projection for the signed-in user
func (s *Service) Order(ctx context.Context, device, id string) (*commerce.Order, error) {
	authed, err := s.authContext(ctx, device)
	if err != nil {
		return nil, err
	}
	return s.api.OrderByID(authed, id)
}

// internal/domain/session/store.go
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/commerce"
)

// KV is the durable key-value storage the store persists into. The Redis
// connection wrapper satisfies it.
type KV interface {
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

// recordTTL bounds how long an idle device keeps its credential record. The
// access token inside expires far sooner; the TTL only garbage-collects
// abandoned devices.
const recordTTL = 30 * 24 * time.Hour

// Record is the persisted credential pair plus the cached profile
type Record struct {
	Token        string         `json:"token"`
	RefreshToken string         `json:"refresh_token"`
	User         *commerce.User `json:"user,omitempty"`
}

// Store persists one authentication session per device key. All operations
// are idempotent; storage is durable across reloads of the same device.
type Store struct {
	kv     KV
	logger *logrus.Logger
}

// NewStore creates a session store over the given storage
func NewStore(kv KV, logger *logrus.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

func sessionKey(device string) string {
	return fmt.Sprintf("session:%s", device)
}

// Save persists the token pair for a device, keeping any cached profile
func (s *Store) Save(ctx context.Context, device, token, refreshToken string) error {
	record, _ := s.load(ctx, device)
	record.Token = token
	record.RefreshToken = refreshToken
	return s.kv.SetJSON(ctx, sessionKey(device), record, recordTTL)
}

// Token returns the stored access token, if any
func (s *Store) Token(ctx context.Context, device string) (string, bool) {
	record, ok := s.load(ctx, device)
	if !ok || record.Token == "" {
		return "", false
	}
	return record.Token, true
}

// RefreshToken returns the stored refresh token, if any
func (s *Store) RefreshToken(ctx context.Context, device string) (string, bool) {
	record, ok := s.load(ctx, device)
	if !ok || record.RefreshToken == "" {
		return "", false
	}
	return record.RefreshToken, true
}

// Clear drops the credential record for a device
func (s *Store) Clear(ctx context.Context, device string) error {
	return s.kv.Del(ctx, sessionKey(device))
}

// IsValid reports whether the device holds a token whose decoded expiry is
// strictly in the future. A missing or undecodable token counts as absent.
func (s *Store) IsValid(ctx context.Context, device string) bool {
	token, ok := s.Token(ctx, device)
	if !ok {
		return false
	}
	return TokenIsValid(token)
}

// SaveUser caches the fetched profile alongside the token pair
func (s *Store) SaveUser(ctx context.Context, device string, user *commerce.User) error {
	record, _ := s.load(ctx, device)
	record.User = user
	return s.kv.SetJSON(ctx, sessionKey(device), record, recordTTL)
}

// User returns the cached profile, if any
func (s *Store) User(ctx context.Context, device string) (*commerce.User, bool) {
	record, ok := s.load(ctx, device)
	if !ok || record.User == nil {
		return nil, false
	}
	return record.User, true
}

func (s *Store) load(ctx context.Context, device string) (Record, bool) {
	var record Record
	found, err := s.kv.GetJSON(ctx, sessionKey(device), &record)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"device": device,
			"error":  err.Error(),
		}).Warn("Failed to load session record")
		return Record{}, false
	}
	return record, found
}

// TokenIsValid decodes the token without verifying its signature (the backend
// holds the signing key) and checks the exp claim against the current time.
// Decode failure or a missing claim is treated as invalid.
func TokenIsValid(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}
	return expiry.After(time.Now())
}

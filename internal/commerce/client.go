// internal/commerce/client.go
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/config"
)

type contextKey string

const (
	tokenContextKey  contextKey = "commerce_token"
	deviceContextKey contextKey = "commerce_device"
)

// WithToken returns a context whose commerce calls carry the given bearer token
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext extracts the bearer token attached by WithToken
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok && token != ""
}

// WithDevice returns a context tagged with the device key the call is made for
func WithDevice(ctx context.Context, device string) context.Context {
	if device == "" {
		return ctx
	}
	return context.WithValue(ctx, deviceContextKey, device)
}

// DeviceFromContext extracts the device key attached by WithDevice
func DeviceFromContext(ctx context.Context) (string, bool) {
	device, ok := ctx.Value(deviceContextKey).(string)
	return device, ok && device != ""
}

// AuthExpiredFunc is invoked when a response signals an expired or invalid
// credential. Session teardown and navigation concerns belong to the
// subscriber, not to this client.
type AuthExpiredFunc func(ctx context.Context)

// Client executes named operations against the remote commerce GraphQL
// endpoint. It performs no retries; callers decide whether to retry.
type Client struct {
	endpoint    string
	httpClient  *http.Client
	logger      *logrus.Logger
	authExpired AuthExpiredFunc
}

// NewClient creates a gateway client for the configured endpoint
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		endpoint: cfg.GetCommerceURL(),
		httpClient: &http.Client{
			Timeout: cfg.Commerce.RequestTimeout,
		},
		logger: logger,
	}
}

// NewClientWithEndpoint is the test-friendly constructor
func NewClientWithEndpoint(endpoint string, logger *logrus.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// OnAuthExpired registers the single subscriber notified on credential expiry
func (c *Client) OnAuthExpired(fn AuthExpiredFunc) {
	c.authExpired = fn
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// execute performs one operation and decodes the data payload into out.
// A non-empty top-level errors list fails the call with a *RequestError; an
// auth-expired signal additionally notifies the registered subscriber.
func (c *Client) execute(ctx context.Context, operation, document string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: document, Variables: variables})
	if err != nil {
		return fmt.Errorf("%w: encode request for %s: %v", ErrTransport, operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request for %s: %v", ErrTransport, operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"operation": operation,
			"error":     err.Error(),
		}).Warn("Commerce API request failed")
		return fmt.Errorf("%w: %s: %v", ErrTransport, operation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response for %s: %v", ErrTransport, operation, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s: unexpected status %d", ErrTransport, operation, resp.StatusCode)
	}

	var envelope graphqlEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: decode response for %s: %v", ErrTransport, operation, err)
	}

	if len(envelope.Errors) > 0 {
		reqErr := newRequestError(operation, envelope.Errors)
		c.logger.WithFields(logrus.Fields{
			"operation": operation,
			"field":     reqErr.Field,
			"code":      reqErr.Code,
		}).Warn("Commerce API returned errors")
		c.notifyIfAuthExpired(ctx, reqErr)
		return reqErr
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("%w: decode data for %s: %v", ErrTransport, operation, err)
		}
	}
	return nil
}

// payloadErrors checks the per-mutation errors list, which the backend uses
// for validation failures that still come back with HTTP 200 and no top-level
// errors array.
func (c *Client) payloadErrors(ctx context.Context, operation string, errs []GraphQLError) error {
	if len(errs) == 0 {
		return nil
	}
	reqErr := newRequestError(operation, errs)
	c.logger.WithFields(logrus.Fields{
		"operation": operation,
		"field":     reqErr.Field,
		"code":      reqErr.Code,
	}).Warn("Commerce API mutation rejected")
	c.notifyIfAuthExpired(ctx, reqErr)
	return reqErr
}

func (c *Client) notifyIfAuthExpired(ctx context.Context, err error) {
	if c.authExpired == nil || !IsAuthExpired(err) {
		return
	}
	c.logger.Info("Credential expired signal from commerce API")
	c.authExpired(ctx)
}

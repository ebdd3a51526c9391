// internal/domain/checkout/orchestrator.go
package checkout

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/commerce"
	"github.com/your-org/storefront-gateway/internal/config"
)

// Sessions is the slice of the credential store the orchestrator needs.
// *session.Store satisfies it.
type Sessions interface {
	Token(ctx context.Context, device string) (string, bool)
	IsValid(ctx context.Context, device string) bool
	User(ctx context.Context, device string) (*commerce.User, bool)
}

// Orchestrator drives the checkout flow steps against the active session:
// address submission, delivery selection, payment selection and order
// placement. It owns the step preconditions; the Store owns session state.
type Orchestrator struct {
	store    *Store
	sessions Sessions
	api      CommerceAPI
	cfg      *config.Config
	logger   *logrus.Logger
}

// NewOrchestrator creates a checkout flow orchestrator
func NewOrchestrator(store *Store, sessions Sessions, api CommerceAPI, cfg *config.Config, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		store:    store,
		sessions: sessions,
		api:      api,
		cfg:      cfg,
		logger:   logger,
	}
}

// authContext attaches the device's bearer token to ctx. Fails when the
// device holds no currently valid token.
func (o *Orchestrator) authContext(ctx context.Context, device string) (context.Context, error) {
	if !o.sessions.IsValid(ctx, device) {
		return nil, ErrNotAuthenticated
	}
	token, ok := o.sessions.Token(ctx, device)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return commerce.WithToken(ctx, token), nil
}

// activeCheckout returns the device's session or ErrNoCheckout
func (o *Orchestrator) activeCheckout(ctx context.Context, device string) (*commerce.Checkout, error) {
	current, ok := o.store.Checkout(ctx, device)
	if !ok {
		return nil, ErrNoCheckout
	}
	return current, nil
}

func validateAddress(address commerce.AddressInput) error {
	required := []struct {
		field string
		value string
	}{
		{"first_name", address.FirstName},
		{"last_name", address.LastName},
		{"street_address", address.StreetAddress1},
		{"city", address.City},
		{"postal_code", address.PostalCode},
		{"country", address.Country},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Message: "required"}
		}
	}
	return nil
}

// SubmitAddress runs the address step: attach the signed-in customer if the
// session has none, set the contact email from the cached profile, then set
// shipping and billing to the submitted address. Billing mirrors shipping.
func (o *Orchestrator) SubmitAddress(ctx context.Context, device string, address commerce.AddressInput) (*commerce.Checkout, error) {
	if err := validateAddress(address); err != nil {
		return nil, err
	}

	authed, err := o.authContext(ctx, device)
	if err != nil {
		return nil, err
	}
	user, ok := o.sessions.User(ctx, device)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	current, err := o.activeCheckout(ctx, device)
	if err != nil {
		return nil, err
	}

	st, release := o.store.acquire(ctx, device)
	defer release()

	st.begin()
	updated, err := o.submitAddressLocked(authed, device, st, current, user, address)
	st.finish(err)
	return updated, err
}

func (o *Orchestrator) submitAddressLocked(ctx context.Context, device string, st *deviceState, current *commerce.Checkout, user *commerce.User, address commerce.AddressInput) (*commerce.Checkout, error) {
	if current.User == nil {
		attached, err := o.api.CheckoutCustomerAttach(ctx, current.ID)
		if err != nil {
			return nil, err
		}
		current = attached
		o.store.replace(ctx, device, st, current)
	}

	if current.Email == "" && user.Email != "" {
		withEmail, err := o.api.CheckoutEmailUpdate(ctx, current.ID, user.Email)
		if err != nil {
			return nil, err
		}
		current = withEmail
		o.store.replace(ctx, device, st, current)
	}

	shipped, err := o.api.CheckoutShippingAddressUpdate(ctx, current.ID, address)
	if err != nil {
		return nil, err
	}
	o.store.replace(ctx, device, st, shipped)

	billed, err := o.api.CheckoutBillingAddressUpdate(ctx, shipped.ID, address)
	if err != nil {
		return nil, err
	}
	o.store.replace(ctx, device, st, billed)

	o.logger.WithFields(logrus.Fields{
		"device":      device,
		"checkout_id": billed.ID,
	}).Info("Checkout address submitted")
	return billed, nil
}

// ShippingMethods re-fetches the session and returns the delivery options the
// backend offers for the current address. An empty list is a valid answer.
func (o *Orchestrator) ShippingMethods(ctx context.Context, device string) ([]commerce.ShippingMethod, error) {
	current, err := o.activeCheckout(ctx, device)
	if err != nil {
		return nil, err
	}

	authed, err := o.authContext(ctx, device)
	if err != nil {
		return nil, err
	}

	fetched, err := o.api.CheckoutByID(authed, current.ID)
	if err != nil {
		return nil, err
	}

	st, release := o.store.acquire(ctx, device)
	o.store.replace(ctx, device, st, fetched)
	release()

	return fetched.AvailableShippingMethods, nil
}

// SelectShippingMethod sets the delivery option on the session
func (o *Orchestrator) SelectShippingMethod(ctx context.Context, device, methodID string) (*commerce.Checkout, error) {
	if strings.TrimSpace(methodID) == "" {
		return nil, &ValidationError{Field: "shipping_method_id", Message: "required"}
	}

	current, err := o.activeCheckout(ctx, device)
	if err != nil {
		return nil, err
	}
	authed, err := o.authContext(ctx, device)
	if err != nil {
		return nil, err
	}

	st, release := o.store.acquire(ctx, device)
	defer release()

	st.begin()
	updated, err := o.api.CheckoutDeliveryMethodUpdate(authed, current.ID, methodID)
	if err == nil {
		o.store.replace(ctx, device, st, updated)
	}
	st.finish(err)
	return updated, err
}

// SelectPaymentMethod validates and stores the local payment selection. Card
// selections require full card details; only the display hint is kept.
func (o *Orchestrator) SelectPaymentMethod(ctx context.Context, device, method string, card *CardDetails) (*PaymentMethod, error) {
	if _, err := o.activeCheckout(ctx, device); err != nil {
		return nil, err
	}

	selection := &PaymentMethod{Method: method}
	switch method {
	case MethodCard:
		if err := validateCard(card); err != nil {
			return nil, err
		}
		selection.CardLastDigits = lastDigits(card.Number)
		selection.CardholderName = strings.TrimSpace(card.HolderName)
		selection.Installments = card.Installments
	case MethodInstantTransfer, MethodDeferredVoucher:
		// no extra details
	default:
		return nil, &ValidationError{Field: "method", Message: "unknown payment method"}
	}

	o.store.SetPaymentMethod(ctx, device, selection)
	return selection, nil
}

// PlaceOrder creates the payment and completes the checkout, then clears the
// device's session. The returned reference identifies the placed order.
// Re-entering after completion yields ErrOrderPlaced, not a fresh attempt.
func (o *Orchestrator) PlaceOrder(ctx context.Context, device string) (*commerce.OrderRef, error) {
	current, err := o.activeCheckout(ctx, device)
	if err != nil {
		st := o.store.device(device)
		st.mu.Lock()
		placed := st.lastOrder != nil
		st.mu.Unlock()
		if placed {
			return nil, ErrOrderPlaced
		}
		return nil, err
	}
	method, ok := o.store.PaymentMethodFor(ctx, device)
	if !ok {
		return nil, &ValidationError{Field: "payment_method", Message: "no payment method selected"}
	}
	authed, err := o.authContext(ctx, device)
	if err != nil {
		return nil, err
	}

	st, release := o.store.acquire(ctx, device)
	defer release()

	st.begin()
	order, err := o.placeOrderLocked(authed, device, current, method)
	st.finish(err)
	if err != nil {
		return nil, err
	}

	// The session is consumed by the backend on completion.
	st.mu.Lock()
	st.checkout = nil
	st.payment = nil
	st.lastOrder = order
	st.mu.Unlock()
	if err := o.store.kv.Del(ctx, checkoutKey(device)); err != nil {
		o.logger.WithFields(logrus.Fields{
			"device": device,
			"error":  err.Error(),
		}).Warn("Failed to drop completed checkout record")
	}

	return order, nil
}

func (o *Orchestrator) placeOrderLocked(ctx context.Context, device string, current *commerce.Checkout, method *PaymentMethod) (*commerce.OrderRef, error) {
	if current.TotalPrice == nil {
		return nil, &ValidationError{Field: "total", Message: "checkout has no total"}
	}

	input := commerce.PaymentInput{
		Gateway: o.cfg.Commerce.PaymentGateway,
		Token:   paymentToken(method),
		Amount:  current.TotalPrice.Gross.Amount,
	}
	if _, err := o.api.CheckoutPaymentCreate(ctx, current.ID, input); err != nil {
		return nil, err
	}

	order, err := o.api.CheckoutComplete(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	o.logger.WithFields(logrus.Fields{
		"device":       device,
		"checkout_id":  current.ID,
		"order_number": order.Number,
	}).Info("Order placed")
	return order, nil
}

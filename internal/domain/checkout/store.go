// internal/domain/checkout/store.go
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/commerce"
	"github.com/your-org/storefront-gateway/internal/config"
)

// CommerceAPI is the slice of the remote gateway the checkout domain uses.
// *commerce.Client satisfies it.
type CommerceAPI interface {
	CheckoutCreate(ctx context.Context, input commerce.CheckoutCreateInput) (*commerce.Checkout, error)
	CheckoutByID(ctx context.Context, id string) (*commerce.Checkout, error)
	CheckoutLinesAdd(ctx context.Context, id string, lines []commerce.CheckoutLineInput) (*commerce.Checkout, error)
	CheckoutLinesUpdate(ctx context.Context, id string, lines []commerce.CheckoutLineUpdateInput) (*commerce.Checkout, error)
	CheckoutLinesDelete(ctx context.Context, id string, lineIDs []string) (*commerce.Checkout, error)
	CheckoutEmailUpdate(ctx context.Context, id, email string) (*commerce.Checkout, error)
	CheckoutCustomerAttach(ctx context.Context, id string) (*commerce.Checkout, error)
	CheckoutShippingAddressUpdate(ctx context.Context, id string, address commerce.AddressInput) (*commerce.Checkout, error)
	CheckoutBillingAddressUpdate(ctx context.Context, id string, address commerce.AddressInput) (*commerce.Checkout, error)
	CheckoutDeliveryMethodUpdate(ctx context.Context, id, deliveryMethodID string) (*commerce.Checkout, error)
	CheckoutAddPromoCode(ctx context.Context, id, promoCode string) (*commerce.Checkout, error)
	CheckoutRemovePromoCode(ctx context.Context, id, promoCode string) (*commerce.Checkout, error)
	CheckoutPaymentCreate(ctx context.Context, id string, input commerce.PaymentInput) (*commerce.Payment, error)
	CheckoutComplete(ctx context.Context, id string) (*commerce.OrderRef, error)
}

// KV is the durable key-value storage the store persists into
type KV interface {
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

// recordTTL garbage-collects abandoned carts
const recordTTL = 30 * 24 * time.Hour

// maxAddAttempts bounds the stale-session recovery in AddItem: one initial
// try plus exactly one recreate-and-retry.
const maxAddAttempts = 2

// State is a read-only snapshot of a device's checkout state
type State struct {
	Checkout      *commerce.Checkout `json:"checkout"`
	PaymentMethod *PaymentMethod     `json:"payment_method"`
	Loading       bool               `json:"loading"`
	Error         string             `json:"error,omitempty"`
}

// deviceState is the live per-device state. opMu serializes backend
// mutations for one session; mu guards field access for snapshots.
type deviceState struct {
	opMu sync.Mutex
	mu   sync.Mutex

	loaded    bool
	checkout  *commerce.Checkout
	payment   *PaymentMethod
	loading   bool
	lastErr   string
	lastOrder *commerce.OrderRef
}

// Store holds the active checkout session per device: the identifier, line
// items and totals mirrored from the backend, plus the local payment-method
// hint. Every mutation goes through the remote gateway and replaces local
// state wholesale from the response.
type Store struct {
	api    CommerceAPI
	kv     KV
	cfg    *config.Config
	logger *logrus.Logger

	mu      sync.Mutex
	devices map[string]*deviceState
}

// NewStore creates the checkout session store
func NewStore(api CommerceAPI, kv KV, cfg *config.Config, logger *logrus.Logger) *Store {
	return &Store{
		api:     api,
		kv:      kv,
		cfg:     cfg,
		logger:  logger,
		devices: make(map[string]*deviceState),
	}
}

func checkoutKey(device string) string {
	return fmt.Sprintf("checkout:%s", device)
}

func (s *Store) device(device string) *deviceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.devices[device]
	if !ok {
		st = &deviceState{}
		s.devices[device] = st
	}
	return st
}

// acquire locks the device for one mutation, rehydrating persisted state on
// first access. The returned release func must be called when done.
func (s *Store) acquire(ctx context.Context, device string) (*deviceState, func()) {
	st := s.device(device)
	st.opMu.Lock()
	s.rehydrate(ctx, device, st)
	return st, st.opMu.Unlock
}

// rehydrate loads the persisted record once per process lifetime of the
// device entry, migrating old schema versions before first read.
func (s *Store) rehydrate(ctx context.Context, device string, st *deviceState) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.loaded {
		return
	}
	st.loaded = true

	var record persistedRecord
	found, err := s.kv.GetJSON(ctx, checkoutKey(device), &record)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"device": device,
			"error":  err.Error(),
		}).Warn("Failed to load checkout record")
		return
	}
	if !found {
		return
	}

	record = migrate(record)

	// A session missing its identifier or backend token is corrupted.
	if record.Checkout != nil && (record.Checkout.ID == "" || record.Checkout.Token == "") {
		s.logger.WithField("device", device).Warn("Discarding corrupted checkout record")
		record.Checkout = nil
	}

	st.checkout = record.Checkout
	st.payment = record.PaymentMethod
}

// persist writes the durable slice of the state: session and payment hint
// only, never the loading or error slots.
func (s *Store) persist(ctx context.Context, device string, st *deviceState) {
	st.mu.Lock()
	record := persistedRecord{
		Version:       schemaVersion,
		Checkout:      st.checkout,
		PaymentMethod: st.payment,
	}
	st.mu.Unlock()

	if err := s.kv.SetJSON(ctx, checkoutKey(device), record, recordTTL); err != nil {
		s.logger.WithFields(logrus.Fields{
			"device": device,
			"error":  err.Error(),
		}).Warn("Failed to persist checkout record")
	}
}

func (st *deviceState) begin() {
	st.mu.Lock()
	st.loading = true
	st.lastErr = ""
	st.mu.Unlock()
}

func (st *deviceState) finish(err error) {
	st.mu.Lock()
	st.loading = false
	if err != nil {
		st.lastErr = err.Error()
	}
	st.mu.Unlock()
}

// Snapshot returns the current state for a device
func (s *Store) Snapshot(ctx context.Context, device string) State {
	st := s.device(device)
	s.rehydrate(ctx, device, st)
	st.mu.Lock()
	defer st.mu.Unlock()
	return State{
		Checkout:      st.checkout,
		PaymentMethod: st.payment,
		Loading:       st.loading,
		Error:         st.lastErr,
	}
}

// Checkout returns the active session for a device, if any
func (s *Store) Checkout(ctx context.Context, device string) (*commerce.Checkout, bool) {
	state := s.Snapshot(ctx, device)
	if state.Checkout == nil {
		return nil, false
	}
	return state.Checkout, true
}

// CreateCheckout creates an empty session for the default sales channel and
// replaces local state with the response. On failure any previous session is
// left untouched.
func (s *Store) CreateCheckout(ctx context.Context, device string) error {
	st, release := s.acquire(ctx, device)
	defer release()

	st.begin()
	err := s.createLocked(ctx, device, st)
	st.finish(err)
	return err
}

func (s *Store) createLocked(ctx context.Context, device string, st *deviceState) error {
	created, err := s.api.CheckoutCreate(ctx, commerce.CheckoutCreateInput{
		Channel: s.cfg.Commerce.Channel,
	})
	if err != nil {
		return err
	}
	st.mu.Lock()
	st.checkout = created
	st.mu.Unlock()
	s.persist(ctx, device, st)
	s.logger.WithFields(logrus.Fields{
		"device":      device,
		"checkout_id": created.ID,
	}).Info("Checkout session created")
	return nil
}

// AddItem adds a variant to the device's session, creating one first if none
// exists. If the backend reports the session identifier no longer resolves,
// the stale session is discarded, a new one is created and the add retried
// exactly once.
func (s *Store) AddItem(ctx context.Context, device, variantID string, quantity int) error {
	if quantity < 1 {
		return &ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
	}

	st, release := s.acquire(ctx, device)
	defer release()

	st.begin()
	err := s.addItemLocked(ctx, device, st, variantID, quantity)
	st.finish(err)
	return err
}

func (s *Store) addItemLocked(ctx context.Context, device string, st *deviceState, variantID string, quantity int) error {
	lines := []commerce.CheckoutLineInput{{VariantID: variantID, Quantity: quantity}}

	for attempt := 1; attempt <= maxAddAttempts; attempt++ {
		st.mu.Lock()
		current := st.checkout
		st.mu.Unlock()

		if current == nil {
			if err := s.createLocked(ctx, device, st); err != nil {
				return err
			}
			st.mu.Lock()
			current = st.checkout
			st.mu.Unlock()
		}

		updated, err := s.api.CheckoutLinesAdd(ctx, current.ID, lines)
		if err != nil {
			if commerce.IsStaleCheckout(err) && attempt < maxAddAttempts {
				s.logger.WithFields(logrus.Fields{
					"device":      device,
					"checkout_id": current.ID,
				}).Warn("Stale checkout session, recreating")
				st.mu.Lock()
				st.checkout = nil
				st.mu.Unlock()
				continue
			}
			return err
		}

		st.mu.Lock()
		st.checkout = updated
		st.mu.Unlock()
		s.persist(ctx, device, st)
		return nil
	}
	return nil
}

// UpdateItemQuantity changes a line's quantity. A quantity of zero or less
// delegates to removal. No-op when no session exists.
func (s *Store) UpdateItemQuantity(ctx context.Context, device, lineID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, device, lineID)
	}

	st, release := s.acquire(ctx, device)
	defer release()

	st.mu.Lock()
	current := st.checkout
	st.mu.Unlock()
	if current == nil {
		return nil
	}

	st.begin()
	updated, err := s.api.CheckoutLinesUpdate(ctx, current.ID, []commerce.CheckoutLineUpdateInput{
		{LineID: lineID, Quantity: quantity},
	})
	if err == nil {
		st.mu.Lock()
		st.checkout = updated
		st.mu.Unlock()
		s.persist(ctx, device, st)
	}
	st.finish(err)
	return err
}

// RemoveItem deletes a line from the session. No-op when no session exists.
func (s *Store) RemoveItem(ctx context.Context, device, lineID string) error {
	st, release := s.acquire(ctx, device)
	defer release()

	st.mu.Lock()
	current := st.checkout
	st.mu.Unlock()
	if current == nil {
		return nil
	}

	st.begin()
	updated, err := s.api.CheckoutLinesDelete(ctx, current.ID, []string{lineID})
	if err == nil {
		st.mu.Lock()
		st.checkout = updated
		st.mu.Unlock()
		s.persist(ctx, device, st)
	}
	st.finish(err)
	return err
}

// ApplyPromoCode applies a discount code to the active session
func (s *Store) ApplyPromoCode(ctx context.Context, device, promoCode string) error {
	st, release := s.acquire(ctx, device)
	defer release()

	st.mu.Lock()
	current := st.checkout
	st.mu.Unlock()
	if current == nil {
		return ErrNoCheckout
	}

	st.begin()
	updated, err := s.api.CheckoutAddPromoCode(ctx, current.ID, promoCode)
	if err == nil {
		st.mu.Lock()
		st.checkout = updated
		st.mu.Unlock()
		s.persist(ctx, device, st)
	}
	st.finish(err)
	return err
}

// RemovePromoCode removes a previously applied discount code
func (s *Store) RemovePromoCode(ctx context.Context, device, promoCode string) error {
	st, release := s.acquire(ctx, device)
	defer release()

	st.mu.Lock()
	current := st.checkout
	st.mu.Unlock()
	if current == nil {
		return ErrNoCheckout
	}

	st.begin()
	updated, err := s.api.CheckoutRemovePromoCode(ctx, current.ID, promoCode)
	if err == nil {
		st.mu.Lock()
		st.checkout = updated
		st.mu.Unlock()
		s.persist(ctx, device, st)
	}
	st.finish(err)
	return err
}

// Refresh re-fetches the session from the backend. A stale identifier clears
// local state rather than erroring.
func (s *Store) Refresh(ctx context.Context, device string) error {
	st, release := s.acquire(ctx, device)
	defer release()

	st.mu.Lock()
	current := st.checkout
	st.mu.Unlock()
	if current == nil {
		return nil
	}

	st.begin()
	fetched, err := s.api.CheckoutByID(ctx, current.ID)
	if err != nil {
		if commerce.IsStaleCheckout(err) {
			st.mu.Lock()
			st.checkout = nil
			st.mu.Unlock()
			s.persist(ctx, device, st)
			st.finish(nil)
			return nil
		}
		st.finish(err)
		return err
	}
	st.mu.Lock()
	st.checkout = fetched
	st.mu.Unlock()
	s.persist(ctx, device, st)
	st.finish(nil)
	return nil
}

// Clear resets session, payment hint, loading and error state, and drops the
// persisted record. Used after a completed order or logout.
func (s *Store) Clear(ctx context.Context, device string) error {
	st, release := s.acquire(ctx, device)
	defer release()

	st.mu.Lock()
	st.checkout = nil
	st.payment = nil
	st.loading = false
	st.lastErr = ""
	st.lastOrder = nil
	st.mu.Unlock()

	if err := s.kv.Del(ctx, checkoutKey(device)); err != nil {
		s.logger.WithFields(logrus.Fields{
			"device": device,
			"error":  err.Error(),
		}).Warn("Failed to drop checkout record")
	}
	return nil
}

// SetPaymentMethod stores the local payment-method hint. No network call.
func (s *Store) SetPaymentMethod(ctx context.Context, device string, payment *PaymentMethod) {
	st := s.device(device)
	s.rehydrate(ctx, device, st)
	st.mu.Lock()
	st.payment = payment
	st.mu.Unlock()
	s.persist(ctx, device, st)
}

// PaymentMethodFor returns the local payment-method hint, if any
func (s *Store) PaymentMethodFor(ctx context.Context, device string) (*PaymentMethod, bool) {
	st := s.device(device)
	s.rehydrate(ctx, device, st)
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.payment == nil {
		return nil, false
	}
	return st.payment, true
}

// replace swaps in an authoritative server response for the session. Only the
// orchestrator uses it; external packages go through the listed operations.
func (s *Store) replace(ctx context.Context, device string, st *deviceState, checkout *commerce.Checkout) {
	st.mu.Lock()
	st.checkout = checkout
	st.mu.Unlock()
	s.persist(ctx, device, st)
}

// internal/domain/checkout/mocks_test.go
package checkout

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/commerce"
	"github.com/your-org/storefront-gateway/internal/config"
)

type fakeKV struct {
	data map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeKV) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

// mockAPI implements CommerceAPI with per-method hooks. Unset hooks fail the
// test when called.
type mockAPI struct {
	t *testing.T

	createFunc          func(ctx context.Context, input commerce.CheckoutCreateInput) (*commerce.Checkout, error)
	byIDFunc            func(ctx context.Context, id string) (*commerce.Checkout, error)
	linesAddFunc        func(ctx context.Context, id string, lines []commerce.CheckoutLineInput) (*commerce.Checkout, error)
	linesUpdateFunc     func(ctx context.Context, id string, lines []commerce.CheckoutLineUpdateInput) (*commerce.Checkout, error)
	linesDeleteFunc     func(ctx context.Context, id string, lineIDs []string) (*commerce.Checkout, error)
	emailUpdateFunc     func(ctx context.Context, id, email string) (*commerce.Checkout, error)
	customerAttachFunc  func(ctx context.Context, id string) (*commerce.Checkout, error)
	shippingAddrFunc    func(ctx context.Context, id string, address commerce.AddressInput) (*commerce.Checkout, error)
	billingAddrFunc     func(ctx context.Context, id string, address commerce.AddressInput) (*commerce.Checkout, error)
	deliveryMethodFunc  func(ctx context.Context, id, methodID string) (*commerce.Checkout, error)
	addPromoCodeFunc    func(ctx context.Context, id, code string) (*commerce.Checkout, error)
	removePromoCodeFunc func(ctx context.Context, id, code string) (*commerce.Checkout, error)
	paymentCreateFunc   func(ctx context.Context, id string, input commerce.PaymentInput) (*commerce.Payment, error)
	completeFunc        func(ctx context.Context, id string) (*commerce.OrderRef, error)
}

func (m *mockAPI) fail(name string) {
	m.t.Helper()
	m.t.Fatalf("unexpected call to %s", name)
}

func (m *mockAPI) CheckoutCreate(ctx context.Context, input commerce.CheckoutCreateInput) (*commerce.Checkout, error) {
	if m.createFunc == nil {
		m.fail("CheckoutCreate")
	}
	return m.createFunc(ctx, input)
}

func (m *mockAPI) CheckoutByID(ctx context.Context, id string) (*commerce.Checkout, error) {
	if m.byIDFunc == nil {
		m.fail("CheckoutByID")
	}
	return m.byIDFunc(ctx, id)
}

func (m *mockAPI) CheckoutLinesAdd(ctx context.Context, id string, lines []commerce.CheckoutLineInput) (*commerce.Checkout, error) {
	if m.linesAddFunc == nil {
		m.fail("CheckoutLinesAdd")
	}
	return m.linesAddFunc(ctx, id, lines)
}

func (m *mockAPI) CheckoutLinesUpdate(ctx context.Context, id string, lines []commerce.CheckoutLineUpdateInput) (*commerce.Checkout, error) {
	if m.linesUpdateFunc == nil {
		m.fail("CheckoutLinesUpdate")
	}
	return m.linesUpdateFunc(ctx, id, lines)
}

func (m *mockAPI) CheckoutLinesDelete(ctx context.Context, id string, lineIDs []string) (*commerce.Checkout, error) {
	if m.linesDeleteFunc == nil {
		m.fail("CheckoutLinesDelete")
	}
	return m.linesDeleteFunc(ctx, id, lineIDs)
}

func (m *mockAPI) CheckoutEmailUpdate(ctx context.Context, id, email string) (*commerce.Checkout, error) {
	if m.emailUpdateFunc == nil {
		m.fail("CheckoutEmailUpdate")
	}
	return m.emailUpdateFunc(ctx, id, email)
}

func (m *mockAPI) CheckoutCustomerAttach(ctx context.Context, id string) (*commerce.Checkout, error) {
	if m.customerAttachFunc == nil {
		m.fail("CheckoutCustomerAttach")
	}
	return m.customerAttachFunc(ctx, id)
}

func (m *mockAPI) CheckoutShippingAddressUpdate(ctx context.Context, id string, address commerce.AddressInput) (*commerce.Checkout, error) {
	if m.shippingAddrFunc == nil {
		m.fail("CheckoutShippingAddressUpdate")
	}
	return m.shippingAddrFunc(ctx, id, address)
}

func (m *mockAPI) CheckoutBillingAddressUpdate(ctx context.Context, id string, address commerce.AddressInput) (*commerce.Checkout, error) {
	if m.billingAddrFunc == nil {
		m.fail("CheckoutBillingAddressUpdate")
	}
	return m.billingAddrFunc(ctx, id, address)
}

func (m *mockAPI) CheckoutDeliveryMethodUpdate(ctx context.Context, id, methodID string) (*commerce.Checkout, error) {
	if m.deliveryMethodFunc == nil {
		m.fail("CheckoutDeliveryMethodUpdate")
	}
	return m.deliveryMethodFunc(ctx, id, methodID)
}

func (m *mockAPI) CheckoutAddPromoCode(ctx context.Context, id, code string) (*commerce.Checkout, error) {
	if m.addPromoCodeFunc == nil {
		m.fail("CheckoutAddPromoCode")
	}
	return m.addPromoCodeFunc(ctx, id, code)
}

func (m *mockAPI) CheckoutRemovePromoCode(ctx context.Context, id, code string) (*commerce.Checkout, error) {
	if m.removePromoCodeFunc == nil {
		m.fail("CheckoutRemovePromoCode")
	}
	return m.removePromoCodeFunc(ctx, id, code)
}

func (m *mockAPI) CheckoutPaymentCreate(ctx context.Context, id string, input commerce.PaymentInput) (*commerce.Payment, error) {
	if m.paymentCreateFunc == nil {
		m.fail("CheckoutPaymentCreate")
	}
	return m.paymentCreateFunc(ctx, id, input)
}

func (m *mockAPI) CheckoutComplete(ctx context.Context, id string) (*commerce.OrderRef, error) {
	if m.completeFunc == nil {
		m.fail("CheckoutComplete")
	}
	return m.completeFunc(ctx, id)
}

// mockSessions implements Sessions with fixed answers
type mockSessions struct {
	token string
	valid bool
	user  *commerce.User
}

func (m *mockSessions) Token(ctx context.Context, device string) (string, bool) {
	return m.token, m.token != ""
}

func (m *mockSessions) IsValid(ctx context.Context, device string) bool {
	return m.valid
}

func (m *mockSessions) User(ctx context.Context, device string) (*commerce.User, bool) {
	return m.user, m.user != nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig() *config.Config {
	return &config.Config{
		Commerce: config.CommerceConfig{
			Channel:        "default-channel",
			PaymentGateway: "mirumee.payments.dummy",
		},
	}
}

func staleError() error {
	return &commerce.RequestError{
		Operation: "checkoutLinesAdd",
		Message:   "Couldn't resolve to a node: old-id",
		Code:      "NOT_FOUND",
	}
}

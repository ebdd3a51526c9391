// internal/domain/checkout/orchestrator_test.go
package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-gateway/internal/commerce"
)

func testAddress() commerce.AddressInput {
	return commerce.AddressInput{
		FirstName:      "Ana",
		LastName:       "Silva",
		StreetAddress1: "Rua das Flores 123",
		City:           "São Paulo",
		PostalCode:     "01310-100",
		Country:        "BR",
		Phone:          "+5511999999999",
	}
}

func signedInSessions() *mockSessions {
	return &mockSessions{
		token: "jwt-token",
		valid: true,
		user:  &commerce.User{ID: "VXNlcjox", Email: "ana@example.com"},
	}
}

func seededStore(t *testing.T, api *mockAPI, checkout *commerce.Checkout) *Store {
	t.Helper()
	kv := newFakeKV()
	require.NoError(t, kv.SetJSON(context.Background(), "checkout:device-1", persistedRecord{
		Version:  schemaVersion,
		Checkout: checkout,
	}, recordTTL))
	return NewStore(api, kv, testConfig(), testLogger())
}

func TestSubmitAddressAttachesCustomerAndMirrorsBilling(t *testing.T) {
	api := &mockAPI{t: t}
	var calls []string

	api.customerAttachFunc = func(ctx context.Context, id string) (*commerce.Checkout, error) {
		calls = append(calls, "attach")
		token, ok := commerce.TokenFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "jwt-token", token)
		chk := sessionWith(id)
		chk.User = &commerce.CheckoutUser{ID: "VXNlcjox", Email: "ana@example.com"}
		return chk, nil
	}
	api.emailUpdateFunc = func(ctx context.Context, id, email string) (*commerce.Checkout, error) {
		calls = append(calls, "email")
		assert.Equal(t, "ana@example.com", email)
		chk := sessionWith(id)
		chk.User = &commerce.CheckoutUser{ID: "VXNlcjox"}
		chk.Email = email
		return chk, nil
	}
	api.shippingAddrFunc = func(ctx context.Context, id string, address commerce.AddressInput) (*commerce.Checkout, error) {
		calls = append(calls, "shipping")
		assert.Equal(t, "Rua das Flores 123", address.StreetAddress1)
		chk := sessionWith(id)
		chk.ShippingAddress = &commerce.Address{StreetAddress1: address.StreetAddress1}
		return chk, nil
	}
	api.billingAddrFunc = func(ctx context.Context, id string, address commerce.AddressInput) (*commerce.Checkout, error) {
		calls = append(calls, "billing")
		assert.Equal(t, "Rua das Flores 123", address.StreetAddress1)
		chk := sessionWith(id)
		chk.ShippingAddress = &commerce.Address{StreetAddress1: address.StreetAddress1}
		chk.BillingAddress = &commerce.Address{StreetAddress1: address.StreetAddress1}
		return chk, nil
	}

	store := seededStore(t, api, sessionWith("chk-1"))
	orchestrator := NewOrchestrator(store, signedInSessions(), api, testConfig(), testLogger())

	updated, err := orchestrator.SubmitAddress(context.Background(), "device-1", testAddress())
	require.NoError(t, err)
	assert.Equal(t, []string{"attach", "email", "shipping", "billing"}, calls)
	assert.NotNil(t, updated.BillingAddress)
}

func TestSubmitAddressSkipsAttachWhenUserPresent(t *testing.T) {
	api := &mockAPI{t: t}
	api.shippingAddrFunc = func(ctx context.Context, id string, address commerce.AddressInput) (*commerce.Checkout, error) {
		chk := sessionWith(id)
		chk.User = &commerce.CheckoutUser{ID: "VXNlcjox"}
		chk.Email = "ana@example.com"
		return chk, nil
	}
	api.billingAddrFunc = func(ctx context.Context, id string, address commerce.AddressInput) (*commerce.Checkout, error) {
		chk := sessionWith(id)
		chk.User = &commerce.CheckoutUser{ID: "VXNlcjox"}
		chk.Email = "ana@example.com"
		return chk, nil
	}

	attached := sessionWith("chk-1")
	attached.User = &commerce.CheckoutUser{ID: "VXNlcjox"}
	attached.Email = "ana@example.com"

	store := seededStore(t, api, attached)
	orchestrator := NewOrchestrator(store, signedInSessions(), api, testConfig(), testLogger())

	// attach and email hooks are unset: calling them fails the test
	_, err := orchestrator.SubmitAddress(context.Background(), "device-1", testAddress())
	require.NoError(t, err)
}

func TestSubmitAddressRequiresAuthentication(t *testing.T) {
	api := &mockAPI{t: t}
	store := seededStore(t, api, sessionWith("chk-1"))
	orchestrator := NewOrchestrator(store, &mockSessions{valid: false}, api, testConfig(), testLogger())

	_, err := orchestrator.SubmitAddress(context.Background(), "device-1", testAddress())
	assert.True(t, errors.Is(err, ErrNotAuthenticated))
}

func TestSubmitAddressValidatesFields(t *testing.T) {
	api := &mockAPI{t: t}
	store := seededStore(t, api, sessionWith("chk-1"))
	orchestrator := NewOrchestrator(store, signedInSessions(), api, testConfig(), testLogger())

	address := testAddress()
	address.City = ""

	_, err := orchestrator.SubmitAddress(context.Background(), "device-1", address)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "city", validationErr.Field)
}

func TestSubmitAddressRequiresSession(t *testing.T) {
	api := &mockAPI{t: t}
	store := NewStore(api, newFakeKV(), testConfig(), testLogger())
	orchestrator := NewOrchestrator(store, signedInSessions(), api, testConfig(), testLogger())

	_, err := orchestrator.SubmitAddress(context.Background(), "device-1", testAddress())
	assert.True(t, errors.Is(err, ErrNoCheckout))
}

func TestShippingMethodsEmptyListIsValid(t *testing.T) {
	api := &mockAPI{t: t}
	api.byIDFunc = func(ctx context.Context, id string) (*commerce.Checkout, error) {
		return sessionWith(id), nil
	}

	store := seededStore(t, api, sessionWith("chk-1"))
	orchestrator := NewOrchestrator(store, signedInSessions(), api, testConfig(), testLogger())

	methods, err := orchestrator.ShippingMethods(context.Background(), "device-1")
	require.NoError(t, err)
	assert.Empty(t, methods)
}

func TestShippingMethodsReturnsBackendOffer(t *testing.T) {
	api := &mockAPI{t: t}
	api.byIDFunc = func(ctx context.Context, id string) (*commerce.Checkout, error) {
		chk := sessionWith(id)
		chk.AvailableShippingMethods = []commerce.ShippingMethod{
			{ID: "ship-1", Name: "Standard"},
			{ID: "ship-2", Name: "Express"},
		}
		return chk, nil
	}

	store := seededStore(t, api, sessionWith("chk-1"))
	orchestrator := NewOrchestrator(store, signedInSessions(), api, testConfig(), testLogger())

	methods, err := orchestrator.ShippingMethods(context.Background(), "device-1")
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Equal(t, "Express", methods[1].Name)
}

func TestSelectShippingMethod(t *testing.T) {
	api := &mockAPI{t: t}
	api.deliveryMethodFunc = func(ctx context.Context, id, methodID string) (*commerce.Checkout, error) {
		assert.Equal(t, "ship-2", methodID)
		chk := sessionWith(id)
		chk.ShippingMethod = &commerce.ShippingMethod{ID: methodID, Name: "Express"}
		return chk, nil
	}

	store := seededStore(t, api, sessionWith("chk-1"))
	orchestrator := NewOrchestrator(store, signedInSessions(), api, testConfig(), testLogger())

	updated, err := orchestrator.SelectShippingMethod(context.Background(), "device-1", "ship-2")
	require.NoError(t, err)
	assert.Equal(t, "ship-2", updated.ShippingMethod.ID)

	// Selection survives in the store as well.
	current, ok := store.Checkout(context.Background(), "device-1")
	require.True(t, ok)
	assert.Equal(t, "ship-2", current.ShippingMethod.ID)
}

func TestSelectPaymentMethodCardKeepsOnlyHint(t *testing.T) {
	api := &mockAPI{t: t}
	store := seededStore(t, api, sessionWith("chk-1"))
	orchestrator := NewOrchestrator(store, signedInSessions(), api, testConfig(), testLogger())

	selection, err := orchestrator.SelectPaymentMethod(context.Background(), "device-1", MethodCard, validCard())
	require.NoError(t, err)
	assert.Equal(t, "4242", selection.CardLastDigits)
	assert.Equal(t, "Ana Silva", selection.CardholderName)
	assert.Equal(t, 3, selection.Installments)

	stored, ok := store.PaymentMethodFor(context.Background(), "device-1")
	require.True(t, ok)
	assert.Equal(t, MethodCard, stored.Method)
}

func TestSelectPaymentMethodCardRequiresDetails(t *testing.T) {
	api := &mockAPI{t: t}
	store := seededStore(t, api, sessionWith("chk-1"))
	orchestrator := NewOrchestrator(store, signedInSessions(), api, testConfig(), testLogger())

	_, err := orchestrator.SelectPaymentMethod(context.Background(), "device-1", MethodCard, nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestSelectPaymentMethodUnknownMethod(t *testing.T) {
	api := &mockAPI{t: t}
	store := seededStore(t, api, sessionWith("chk-1"))
	orchestrator := NewOrchestrator(store, signedInSessions(), api, testConfig(), testLogger())

	_, err := orchestrator.SelectPaymentMethod(context.Background(), "device-1", "wire", nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestPlaceOrderCreatesPaymentThenCompletes(t *testing.T) {
	api := &mockAPI{t: t}
	var capturedPayment commerce.PaymentInput
	api.paymentCreateFunc = func(ctx context.Context, id string, input commerce.PaymentInput) (*commerce.Payment, error) {
		capturedPayment = input
		return &commerce.Payment{ID: "pay-1", Gateway: input.Gateway}, nil
	}
	api.completeFunc = func(ctx context.Context, id string) (*commerce.OrderRef, error) {
		assert.Equal(t, "chk-1", id)
		return &commerce.OrderRef{ID: "T3JkZXI6MQ==", Number: "1042"}, nil
	}

	chk := sessionWith("chk-1", commerce.CheckoutLine{ID: "line-1", Quantity: 1})
	chk.TotalPrice = &commerce.TaxedMoney{Gross: commerce.Money{
		Amount:   decimal.RequireFromString("149.90"),
		Currency: "BRL",
	}}

	store := seededStore(t, api, chk)
	store.SetPaymentMethod(context.Background(), "device-1", &PaymentMethod{
		Method:         MethodCard,
		CardLastDigits: "4242",
		Installments:   2,
	})

	orchestrator := NewOrchestrator(store, signedInSessions(), api, testConfig(), testLogger())

	order, err := orchestrator.PlaceOrder(context.Background(), "device-1")
	require.NoError(t, err)
	assert.Equal(t, "1042", order.Number)

	assert.Equal(t, "mirumee.payments.dummy", capturedPayment.Gateway)
	assert.True(t, capturedPayment.Amount.Equal(decimal.RequireFromString("149.90")))
	assert.True(t, strings.HasPrefix(capturedPayment.Token, "dummy-card-4242-2x-"), "token %q", capturedPayment.Token)

	// Session and payment hint are consumed by the completed order.
	_, ok := store.Checkout(context.Background(), "device-1")
	assert.False(t, ok)
	_, ok = store.PaymentMethodFor(context.Background(), "device-1")
	assert.False(t, ok)
}

func TestPlaceOrderReentryAfterCompletion(t *testing.T) {
	api := &mockAPI{t: t}
	api.paymentCreateFunc = func(ctx context.Context, id string, input commerce.PaymentInput) (*commerce.Payment, error) {
		return &commerce.Payment{ID: "pay-1"}, nil
	}
	completions := 0
	api.completeFunc = func(ctx context.Context, id string) (*commerce.OrderRef, error) {
		completions++
		return &commerce.OrderRef{ID: "T3JkZXI6MQ==", Number: "1042"}, nil
	}

	chk := sessionWith("chk-1")
	chk.TotalPrice = &commerce.TaxedMoney{Gross: commerce.Money{Amount: decimal.NewFromInt(10)}}

	store := seededStore(t, api, chk)
	store.SetPaymentMethod(context.Background(), "device-1", &PaymentMethod{Method: MethodInstantTransfer})
	orchestrator := NewOrchestrator(store, signedInSessions(), api, testConfig(), testLogger())

	_, err := orchestrator.PlaceOrder(context.Background(), "device-1")
	require.NoError(t, err)

	_, err = orchestrator.PlaceOrder(context.Background(), "device-1")
	assert.True(t, errors.Is(err, ErrOrderPlaced))
	assert.Equal(t, 1, completions)
}

func TestPlaceOrderRequiresPaymentMethod(t *testing.T) {
	api := &mockAPI{t: t}
	chk := sessionWith("chk-1")
	chk.TotalPrice = &commerce.TaxedMoney{Gross: commerce.Money{Amount: decimal.NewFromInt(10)}}

	store := seededStore(t, api, chk)
	orchestrator := NewOrchestrator(store, signedInSessions(), api, testConfig(), testLogger())

	_, err := orchestrator.PlaceOrder(context.Background(), "device-1")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestPlaceOrderCompleteFailureKeepsSession(t *testing.T) {
	api := &mockAPI{t: t}
	api.paymentCreateFunc = func(ctx context.Context, id string, input commerce.PaymentInput) (*commerce.Payment, error) {
		return &commerce.Payment{ID: "pay-1"}, nil
	}
	api.completeFunc = func(ctx context.Context, id string) (*commerce.OrderRef, error) {
		return nil, &commerce.RequestError{
			Operation: "checkoutComplete",
			Field:     "shippingMethod",
			Message:   "Shipping method is not set",
			Code:      "SHIPPING_METHOD_NOT_SET",
		}
	}

	chk := sessionWith("chk-1")
	chk.TotalPrice = &commerce.TaxedMoney{Gross: commerce.Money{Amount: decimal.NewFromInt(10)}}

	store := seededStore(t, api, chk)
	store.SetPaymentMethod(context.Background(), "device-1", &PaymentMethod{Method: MethodInstantTransfer})
	orchestrator := NewOrchestrator(store, signedInSessions(), api, testConfig(), testLogger())

	_, err := orchestrator.PlaceOrder(context.Background(), "device-1")
	require.Error(t, err)

	// The device can fix the problem and retry.
	_, ok := store.Checkout(context.Background(), "device-1")
	assert.True(t, ok)
}

// internal/domain/checkout/store_test.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-gateway/internal/commerce"
)

func sessionWith(id string, lines ...commerce.CheckoutLine) *commerce.Checkout {
	return &commerce.Checkout{ID: id, Token: "tok-" + id, Lines: lines}
}

func TestAddItemCreatesSessionFirst(t *testing.T) {
	api := &mockAPI{t: t}
	api.createFunc = func(ctx context.Context, input commerce.CheckoutCreateInput) (*commerce.Checkout, error) {
		assert.Equal(t, "default-channel", input.Channel)
		return sessionWith("chk-1"), nil
	}
	api.linesAddFunc = func(ctx context.Context, id string, lines []commerce.CheckoutLineInput) (*commerce.Checkout, error) {
		assert.Equal(t, "chk-1", id)
		require.Len(t, lines, 1)
		assert.Equal(t, "variant-1", lines[0].VariantID)
		assert.Equal(t, 2, lines[0].Quantity)
		return sessionWith("chk-1", commerce.CheckoutLine{ID: "line-1", Quantity: 2}), nil
	}

	store := NewStore(api, newFakeKV(), testConfig(), testLogger())
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, "device-1", "variant-1", 2))

	current, ok := store.Checkout(ctx, "device-1")
	require.True(t, ok)
	require.Len(t, current.Lines, 1)
	assert.Equal(t, "line-1", current.Lines[0].ID)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	store := NewStore(&mockAPI{t: t}, newFakeKV(), testConfig(), testLogger())

	err := store.AddItem(context.Background(), "device-1", "variant-1", 0)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestAddItemReplacesStateWholesale(t *testing.T) {
	api := &mockAPI{t: t}
	api.createFunc = func(ctx context.Context, input commerce.CheckoutCreateInput) (*commerce.Checkout, error) {
		return sessionWith("chk-1"), nil
	}
	calls := 0
	api.linesAddFunc = func(ctx context.Context, id string, lines []commerce.CheckoutLineInput) (*commerce.Checkout, error) {
		calls++
		// The server may merge lines however it likes; local state must
		// mirror exactly what comes back.
		return sessionWith("chk-1", commerce.CheckoutLine{ID: fmt.Sprintf("line-%d", calls), Quantity: calls}), nil
	}

	store := NewStore(api, newFakeKV(), testConfig(), testLogger())
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, "device-1", "variant-1", 1))
	require.NoError(t, store.AddItem(ctx, "device-1", "variant-2", 1))

	current, ok := store.Checkout(ctx, "device-1")
	require.True(t, ok)
	require.Len(t, current.Lines, 1)
	assert.Equal(t, "line-2", current.Lines[0].ID)
}

func TestAddItemRecreatesStaleSessionOnce(t *testing.T) {
	kv := newFakeKV()
	api := &mockAPI{t: t}

	creates := 0
	api.createFunc = func(ctx context.Context, input commerce.CheckoutCreateInput) (*commerce.Checkout, error) {
		creates++
		return sessionWith(fmt.Sprintf("chk-%d", creates)), nil
	}
	addCalls := 0
	api.linesAddFunc = func(ctx context.Context, id string, lines []commerce.CheckoutLineInput) (*commerce.Checkout, error) {
		addCalls++
		if id == "chk-stale" {
			return nil, staleError()
		}
		return sessionWith(id, commerce.CheckoutLine{ID: "line-1", Quantity: 1}), nil
	}

	store := NewStore(api, kv, testConfig(), testLogger())
	ctx := context.Background()

	// Seed a persisted session whose identifier the backend no longer knows.
	require.NoError(t, kv.SetJSON(ctx, "checkout:device-1", persistedRecord{
		Version:  schemaVersion,
		Checkout: sessionWith("chk-stale"),
	}, recordTTL))

	require.NoError(t, store.AddItem(ctx, "device-1", "variant-1", 1))

	assert.Equal(t, 2, addCalls)
	assert.Equal(t, 1, creates)

	current, ok := store.Checkout(ctx, "device-1")
	require.True(t, ok)
	assert.Equal(t, "chk-1", current.ID)
}

func TestAddItemStaleRetryIsBounded(t *testing.T) {
	api := &mockAPI{t: t}
	creates := 0
	api.createFunc = func(ctx context.Context, input commerce.CheckoutCreateInput) (*commerce.Checkout, error) {
		creates++
		return sessionWith("chk-stale"), nil
	}
	addCalls := 0
	api.linesAddFunc = func(ctx context.Context, id string, lines []commerce.CheckoutLineInput) (*commerce.Checkout, error) {
		addCalls++
		return nil, staleError()
	}

	store := NewStore(api, newFakeKV(), testConfig(), testLogger())

	err := store.AddItem(context.Background(), "device-1", "variant-1", 1)
	require.Error(t, err)
	assert.True(t, commerce.IsStaleCheckout(err))
	assert.Equal(t, 2, addCalls)
}

func TestAddItemNonStaleErrorDoesNotRetry(t *testing.T) {
	api := &mockAPI{t: t}
	api.createFunc = func(ctx context.Context, input commerce.CheckoutCreateInput) (*commerce.Checkout, error) {
		return sessionWith("chk-1"), nil
	}
	addCalls := 0
	api.linesAddFunc = func(ctx context.Context, id string, lines []commerce.CheckoutLineInput) (*commerce.Checkout, error) {
		addCalls++
		return nil, &commerce.RequestError{
			Operation: "checkoutLinesAdd",
			Field:     "quantity",
			Message:   "Insufficient stock",
			Code:      "INSUFFICIENT_STOCK",
		}
	}

	store := NewStore(api, newFakeKV(), testConfig(), testLogger())

	err := store.AddItem(context.Background(), "device-1", "variant-1", 1)
	require.Error(t, err)
	assert.Equal(t, 1, addCalls)

	// Failure is recorded in the error slot but the session survives.
	state := store.Snapshot(context.Background(), "device-1")
	assert.NotNil(t, state.Checkout)
	assert.Contains(t, state.Error, "Insufficient stock")
	assert.False(t, state.Loading)
}

func TestUpdateItemQuantityZeroDelegatesToRemove(t *testing.T) {
	api := &mockAPI{t: t}
	api.createFunc = func(ctx context.Context, input commerce.CheckoutCreateInput) (*commerce.Checkout, error) {
		return sessionWith("chk-1"), nil
	}
	api.linesAddFunc = func(ctx context.Context, id string, lines []commerce.CheckoutLineInput) (*commerce.Checkout, error) {
		return sessionWith("chk-1", commerce.CheckoutLine{ID: "line-1", Quantity: 1}), nil
	}
	removed := false
	api.linesDeleteFunc = func(ctx context.Context, id string, lineIDs []string) (*commerce.Checkout, error) {
		removed = true
		assert.Equal(t, []string{"line-1"}, lineIDs)
		return sessionWith("chk-1"), nil
	}

	store := NewStore(api, newFakeKV(), testConfig(), testLogger())
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, "device-1", "variant-1", 1))
	require.NoError(t, store.UpdateItemQuantity(ctx, "device-1", "line-1", 0))
	assert.True(t, removed)
}

func TestUpdateAndRemoveWithoutSessionAreNoOps(t *testing.T) {
	// No API hooks set: any network call fails the test.
	store := NewStore(&mockAPI{t: t}, newFakeKV(), testConfig(), testLogger())
	ctx := context.Background()

	require.NoError(t, store.UpdateItemQuantity(ctx, "device-1", "line-1", 3))
	require.NoError(t, store.RemoveItem(ctx, "device-1", "line-1"))
}

func TestApplyPromoCodeRequiresSession(t *testing.T) {
	store := NewStore(&mockAPI{t: t}, newFakeKV(), testConfig(), testLogger())

	err := store.ApplyPromoCode(context.Background(), "device-1", "WELCOME10")
	assert.True(t, errors.Is(err, ErrNoCheckout))
}

func TestClearResetsEverything(t *testing.T) {
	kv := newFakeKV()
	api := &mockAPI{t: t}
	api.createFunc = func(ctx context.Context, input commerce.CheckoutCreateInput) (*commerce.Checkout, error) {
		return sessionWith("chk-1"), nil
	}
	api.linesAddFunc = func(ctx context.Context, id string, lines []commerce.CheckoutLineInput) (*commerce.Checkout, error) {
		return sessionWith("chk-1", commerce.CheckoutLine{ID: "line-1", Quantity: 1}), nil
	}

	store := NewStore(api, kv, testConfig(), testLogger())
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, "device-1", "variant-1", 1))
	store.SetPaymentMethod(ctx, "device-1", &PaymentMethod{Method: MethodInstantTransfer})

	require.NoError(t, store.Clear(ctx, "device-1"))

	state := store.Snapshot(ctx, "device-1")
	assert.Nil(t, state.Checkout)
	assert.Nil(t, state.PaymentMethod)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)

	_, persisted := kv.data["checkout:device-1"]
	assert.False(t, persisted)
}

func TestRehydrateFromPersistedRecord(t *testing.T) {
	kv := newFakeKV()
	ctx := context.Background()
	require.NoError(t, kv.SetJSON(ctx, "checkout:device-1", persistedRecord{
		Version:       schemaVersion,
		Checkout:      sessionWith("chk-1", commerce.CheckoutLine{ID: "line-1", Quantity: 2}),
		PaymentMethod: &PaymentMethod{Method: MethodCard, CardLastDigits: "4242"},
	}, recordTTL))

	store := NewStore(&mockAPI{t: t}, kv, testConfig(), testLogger())

	current, ok := store.Checkout(ctx, "device-1")
	require.True(t, ok)
	assert.Equal(t, "chk-1", current.ID)

	method, ok := store.PaymentMethodFor(ctx, "device-1")
	require.True(t, ok)
	assert.Equal(t, "4242", method.CardLastDigits)
}

func TestRehydrateDiscardsCorruptedSession(t *testing.T) {
	kv := newFakeKV()
	ctx := context.Background()
	require.NoError(t, kv.SetJSON(ctx, "checkout:device-1", persistedRecord{
		Version:  schemaVersion,
		Checkout: &commerce.Checkout{ID: "chk-1"}, // missing token
	}, recordTTL))

	store := NewStore(&mockAPI{t: t}, kv, testConfig(), testLogger())

	_, ok := store.Checkout(ctx, "device-1")
	assert.False(t, ok)
}

func TestRefreshDropsStaleSession(t *testing.T) {
	kv := newFakeKV()
	api := &mockAPI{t: t}
	api.byIDFunc = func(ctx context.Context, id string) (*commerce.Checkout, error) {
		return nil, &commerce.RequestError{
			Operation: "checkout",
			Message:   "Couldn't resolve to a node: chk-1",
			Code:      "NOT_FOUND",
		}
	}

	ctx := context.Background()
	require.NoError(t, kv.SetJSON(ctx, "checkout:device-1", persistedRecord{
		Version:  schemaVersion,
		Checkout: sessionWith("chk-1"),
	}, recordTTL))

	store := NewStore(api, kv, testConfig(), testLogger())

	require.NoError(t, store.Refresh(ctx, "device-1"))

	_, ok := store.Checkout(ctx, "device-1")
	assert.False(t, ok)
}

func TestMigrateV0WipesSession(t *testing.T) {
	record := migrate(persistedRecord{
		Version:       0,
		Checkout:      sessionWith("chk-old"),
		PaymentMethod: &PaymentMethod{Method: MethodCard},
	})

	assert.Equal(t, schemaVersion, record.Version)
	assert.Nil(t, record.Checkout)
	assert.Nil(t, record.PaymentMethod)
}

func TestMigrateV1ResetsPaymentHint(t *testing.T) {
	record := migrate(persistedRecord{
		Version:       1,
		Checkout:      sessionWith("chk-1"),
		PaymentMethod: &PaymentMethod{Method: MethodCard},
	})

	assert.Equal(t, schemaVersion, record.Version)
	assert.NotNil(t, record.Checkout)
	assert.Nil(t, record.PaymentMethod)
}

func TestMigrateCurrentVersionIsUntouched(t *testing.T) {
	record := migrate(persistedRecord{
		Version:       schemaVersion,
		Checkout:      sessionWith("chk-1"),
		PaymentMethod: &PaymentMethod{Method: MethodDeferredVoucher},
	})

	assert.Equal(t, schemaVersion, record.Version)
	assert.NotNil(t, record.Checkout)
	assert.NotNil(t, record.PaymentMethod)
}

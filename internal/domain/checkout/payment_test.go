// internal/domain/checkout/payment_test.go
package checkout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCard() *CardDetails {
	return &CardDetails{
		Number:       "4242 4242 4242 4242",
		HolderName:   "Ana Silva",
		Expiry:       "12/30",
		SecurityCode: "123",
		Installments: 3,
	}
}

func TestValidateCardAcceptsCompleteDetails(t *testing.T) {
	require.NoError(t, validateCard(validCard()))
}

func TestValidateCardRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CardDetails)
		field  string
	}{
		{
			name:   "missing holder name",
			mutate: func(c *CardDetails) { c.HolderName = "  " },
			field:  "holder_name",
		},
		{
			name:   "missing expiry",
			mutate: func(c *CardDetails) { c.Expiry = "" },
			field:  "expiry",
		},
		{
			name:   "missing security code",
			mutate: func(c *CardDetails) { c.SecurityCode = "" },
			field:  "security_code",
		},
		{
			name:   "short number",
			mutate: func(c *CardDetails) { c.Number = "4242 4242" },
			field:  "number",
		},
		{
			name:   "zero installments",
			mutate: func(c *CardDetails) { c.Installments = 0 },
			field:  "installments",
		},
		{
			name:   "too many installments",
			mutate: func(c *CardDetails) { c.Installments = 13 },
			field:  "installments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			tt.mutate(card)

			err := validateCard(card)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestValidateCardNil(t *testing.T) {
	err := validateCard(nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestPaymentTokenShapes(t *testing.T) {
	tests := []struct {
		name   string
		method *PaymentMethod
		prefix string
	}{
		{
			name:   "card",
			method: &PaymentMethod{Method: MethodCard, CardLastDigits: "4242", Installments: 3},
			prefix: "dummy-card-4242-3x-",
		},
		{
			name:   "card defaults to single installment",
			method: &PaymentMethod{Method: MethodCard, CardLastDigits: "4242"},
			prefix: "dummy-card-4242-1x-",
		},
		{
			name:   "instant transfer",
			method: &PaymentMethod{Method: MethodInstantTransfer},
			prefix: "dummy-pix-payment-",
		},
		{
			name:   "deferred voucher",
			method: &PaymentMethod{Method: MethodDeferredVoucher},
			prefix: "dummy-boleto-payment-",
		},
		{
			name:   "unknown method falls back",
			method: &PaymentMethod{Method: "wire"},
			prefix: "dummy-token-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := paymentToken(tt.method)
			assert.True(t, strings.HasPrefix(token, tt.prefix), "token %q should start with %q", token, tt.prefix)
		})
	}
}

func TestLastDigits(t *testing.T) {
	assert.Equal(t, "4242", lastDigits("4242 4242 4242 4242"))
	assert.Equal(t, "1881", lastDigits("4012-8888-8888-1881"))
	assert.Equal(t, "123", lastDigits("123"))
}

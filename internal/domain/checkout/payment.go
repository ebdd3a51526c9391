// internal/domain/checkout/payment.go
package checkout

import (
	"fmt"
	"strings"
	"time"
)

// Supported payment methods. The backend runs a single dummy gateway; the
// method only shapes the synthesized token and the stored hint.
const (
	MethodCard            = "card"
	MethodInstantTransfer = "instant-transfer"
	MethodDeferredVoucher = "deferred-voucher"
)

// PaymentMethod is the locally stored payment selection. Raw card data never
// persists; only the display hint survives.
type PaymentMethod struct {
	Method         string `json:"method"`
	CardLastDigits string `json:"card_last_digits,omitempty"`
	CardholderName string `json:"cardholder_name,omitempty"`
	Installments   int    `json:"installments,omitempty"`
}

// CardDetails is the transient card form input for the card method
type CardDetails struct {
	Number       string `json:"number"`
	HolderName   string `json:"holder_name"`
	Expiry       string `json:"expiry"`
	SecurityCode string `json:"security_code"`
	Installments int    `json:"installments"`
}

// digits strips everything but decimal digits from a card number
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validateCard checks the card form fields. It gates step advancement only;
// the dummy gateway accepts any token.
func validateCard(card *CardDetails) error {
	if card == nil {
		return &ValidationError{Field: "card", Message: "card details are required"}
	}
	if strings.TrimSpace(card.HolderName) == "" {
		return &ValidationError{Field: "holder_name", Message: "cardholder name is required"}
	}
	if strings.TrimSpace(card.Expiry) == "" {
		return &ValidationError{Field: "expiry", Message: "expiry is required"}
	}
	if strings.TrimSpace(card.SecurityCode) == "" {
		return &ValidationError{Field: "security_code", Message: "security code is required"}
	}
	if len(digits(card.Number)) < 13 {
		return &ValidationError{Field: "number", Message: "card number is incomplete"}
	}
	if card.Installments < 1 || card.Installments > 12 {
		return &ValidationError{Field: "installments", Message: "installments must be between 1 and 12"}
	}
	return nil
}

// paymentToken synthesizes the gateway token for the selected method. The
// dummy gateway ignores the content; the shape only aids log correlation.
func paymentToken(method *PaymentMethod) string {
	now := time.Now().UnixMilli()
	switch method.Method {
	case MethodCard:
		installments := method.Installments
		if installments < 1 {
			installments = 1
		}
		return fmt.Sprintf("dummy-card-%s-%dx-%d", method.CardLastDigits, installments, now)
	case MethodInstantTransfer:
		return fmt.Sprintf("dummy-pix-payment-%d", now)
	case MethodDeferredVoucher:
		return fmt.Sprintf("dummy-boleto-payment-%d", now)
	default:
		return fmt.Sprintf("dummy-token-%d", now)
	}
}

// lastDigits returns the trailing four digits of a card number
func lastDigits(number string) string {
	d := digits(number)
	if len(d) <= 4 {
		return d
	}
	return d[len(d)-4:]
}

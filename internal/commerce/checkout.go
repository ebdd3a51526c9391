// internal/commerce/checkout.go
package commerce

import (
	"context"
	"fmt"
)

type checkoutPayload struct {
	Checkout *Checkout      `json:"checkout"`
	Errors   []GraphQLError `json:"errors"`
}

// CheckoutCreateInput is the checkoutCreate mutation input
type CheckoutCreateInput struct {
	Channel      string              `json:"channel"`
	Lines        []CheckoutLineInput `json:"lines"`
	LanguageCode string              `json:"languageCode,omitempty"`
}

// CheckoutCreate creates an empty checkout session for the given channel
func (c *Client) CheckoutCreate(ctx context.Context, input CheckoutCreateInput) (*Checkout, error) {
	if input.Lines == nil {
		input.Lines = []CheckoutLineInput{}
	}
	var data struct {
		CheckoutCreate checkoutPayload `json:"checkoutCreate"`
	}
	if err := c.execute(ctx, "checkoutCreate", checkoutCreateOp, map[string]any{"input": input}, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "checkoutCreate", data.CheckoutCreate.Errors); err != nil {
		return nil, err
	}
	if data.CheckoutCreate.Checkout == nil {
		return nil, fmt.Errorf("%w: checkoutCreate: empty checkout payload", ErrTransport)
	}
	return data.CheckoutCreate.Checkout, nil
}

// CheckoutByID fetches the current server-side state of a checkout
func (c *Client) CheckoutByID(ctx context.Context, id string) (*Checkout, error) {
	var data struct {
		Checkout *Checkout `json:"checkout"`
	}
	if err := c.execute(ctx, "checkout", checkoutByIDOp, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	if data.Checkout == nil {
		return nil, &RequestError{
			Operation: "checkout",
			Message:   fmt.Sprintf("Couldn't resolve to a node: %s", id),
			Code:      "NOT_FOUND",
		}
	}
	return data.Checkout, nil
}

// CheckoutLinesAdd appends lines to a checkout and returns the authoritative
// server state
func (c *Client) CheckoutLinesAdd(ctx context.Context, id string, lines []CheckoutLineInput) (*Checkout, error) {
	var data struct {
		CheckoutLinesAdd checkoutPayload `json:"checkoutLinesAdd"`
	}
	vars := map[string]any{"id": id, "lines": lines}
	if err := c.execute(ctx, "checkoutLinesAdd", checkoutLinesAddOp, vars, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "checkoutLinesAdd", data.CheckoutLinesAdd.Errors); err != nil {
		return nil, err
	}
	return data.CheckoutLinesAdd.Checkout, nil
}

// CheckoutLinesUpdate changes line quantities
func (c *Client) CheckoutLinesUpdate(ctx context.Context, id string, lines []CheckoutLineUpdateInput) (*Checkout, error) {
	var data struct {
		CheckoutLinesUpdate checkoutPayload `json:"checkoutLinesUpdate"`
	}
	vars := map[string]any{"id": id, "lines": lines}
	if err := c.execute(ctx, "checkoutLinesUpdate", checkoutLinesUpdateOp, vars, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "checkoutLinesUpdate", data.CheckoutLinesUpdate.Errors); err != nil {
		return nil, err
	}
	return data.CheckoutLinesUpdate.Checkout, nil
}

// CheckoutLinesDelete removes lines from a checkout
func (c *Client) CheckoutLinesDelete(ctx context.Context, id string, lineIDs []string) (*Checkout, error) {
	var data struct {
		CheckoutLinesDelete checkoutPayload `json:"checkoutLinesDelete"`
	}
	vars := map[string]any{"id": id, "linesIds": lineIDs}
	if err := c.execute(ctx, "checkoutLinesDelete", checkoutLinesDeleteOp, vars, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "checkoutLinesDelete", data.CheckoutLinesDelete.Errors); err != nil {
		return nil, err
	}
	return data.CheckoutLinesDelete.Checkout, nil
}

// CheckoutEmailUpdate sets the contact email on a checkout
func (c *Client) CheckoutEmailUpdate(ctx context.Context, id, email string) (*Checkout, error) {
	var data struct {
		CheckoutEmailUpdate checkoutPayload `json:"checkoutEmailUpdate"`
	}
	vars := map[string]any{"id": id, "email": email}
	if err := c.execute(ctx, "checkoutEmailUpdate", checkoutEmailUpdateOp, vars, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "checkoutEmailUpdate", data.CheckoutEmailUpdate.Errors); err != nil {
		return nil, err
	}
	return data.CheckoutEmailUpdate.Checkout, nil
}

// CheckoutCustomerAttach associates the authenticated user (from the bearer
// token on ctx) with the checkout
func (c *Client) CheckoutCustomerAttach(ctx context.Context, id string) (*Checkout, error) {
	var data struct {
		CheckoutCustomerAttach checkoutPayload `json:"checkoutCustomerAttach"`
	}
	if err := c.execute(ctx, "checkoutCustomerAttach", checkoutCustomerAttachOp, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "checkoutCustomerAttach", data.CheckoutCustomerAttach.Errors); err != nil {
		return nil, err
	}
	return data.CheckoutCustomerAttach.Checkout, nil
}

// CheckoutShippingAddressUpdate sets the shipping address
func (c *Client) CheckoutShippingAddressUpdate(ctx context.Context, id string, address AddressInput) (*Checkout, error) {
	var data struct {
		CheckoutShippingAddressUpdate checkoutPayload `json:"checkoutShippingAddressUpdate"`
	}
	vars := map[string]any{"id": id, "shippingAddress": address}
	if err := c.execute(ctx, "checkoutShippingAddressUpdate", checkoutShippingAddressUpdateOp, vars, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "checkoutShippingAddressUpdate", data.CheckoutShippingAddressUpdate.Errors); err != nil {
		return nil, err
	}
	return data.CheckoutShippingAddressUpdate.Checkout, nil
}

// CheckoutBillingAddressUpdate sets the billing address
func (c *Client) CheckoutBillingAddressUpdate(ctx context.Context, id string, address AddressInput) (*Checkout, error) {
	var data struct {
		CheckoutBillingAddressUpdate checkoutPayload `json:"checkoutBillingAddressUpdate"`
	}
	vars := map[string]any{"id": id, "billingAddress": address}
	if err := c.execute(ctx, "checkoutBillingAddressUpdate", checkoutBillingAddressUpdateOp, vars, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "checkoutBillingAddressUpdate", data.CheckoutBillingAddressUpdate.Errors); err != nil {
		return nil, err
	}
	return data.CheckoutBillingAddressUpdate.Checkout, nil
}

// CheckoutDeliveryMethodUpdate selects a delivery option
func (c *Client) CheckoutDeliveryMethodUpdate(ctx context.Context, id, deliveryMethodID string) (*Checkout, error) {
	var data struct {
		CheckoutDeliveryMethodUpdate checkoutPayload `json:"checkoutDeliveryMethodUpdate"`
	}
	vars := map[string]any{"id": id, "deliveryMethodId": deliveryMethodID}
	if err := c.execute(ctx, "checkoutDeliveryMethodUpdate", checkoutDeliveryMethodUpdateOp, vars, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "checkoutDeliveryMethodUpdate", data.CheckoutDeliveryMethodUpdate.Errors); err != nil {
		return nil, err
	}
	return data.CheckoutDeliveryMethodUpdate.Checkout, nil
}

// CheckoutAddPromoCode applies a discount code to the checkout
func (c *Client) CheckoutAddPromoCode(ctx context.Context, id, promoCode string) (*Checkout, error) {
	var data struct {
		CheckoutAddPromoCode checkoutPayload `json:"checkoutAddPromoCode"`
	}
	vars := map[string]any{"id": id, "promoCode": promoCode}
	if err := c.execute(ctx, "checkoutAddPromoCode", checkoutAddPromoCodeOp, vars, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "checkoutAddPromoCode", data.CheckoutAddPromoCode.Errors); err != nil {
		return nil, err
	}
	return data.CheckoutAddPromoCode.Checkout, nil
}

// CheckoutRemovePromoCode removes a previously applied discount code
func (c *Client) CheckoutRemovePromoCode(ctx context.Context, id, promoCode string) (*Checkout, error) {
	var data struct {
		CheckoutRemovePromoCode checkoutPayload `json:"checkoutRemovePromoCode"`
	}
	vars := map[string]any{"id": id, "promoCode": promoCode}
	if err := c.execute(ctx, "checkoutRemovePromoCode", checkoutRemovePromoCodeOp, vars, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "checkoutRemovePromoCode", data.CheckoutRemovePromoCode.Errors); err != nil {
		return nil, err
	}
	return data.CheckoutRemovePromoCode.Checkout, nil
}

// CheckoutPaymentCreate creates a payment against the checkout
func (c *Client) CheckoutPaymentCreate(ctx context.Context, id string, input PaymentInput) (*Payment, error) {
	var data struct {
		CheckoutPaymentCreate struct {
			Payment *Payment       `json:"payment"`
			Errors  []GraphQLError `json:"errors"`
		} `json:"checkoutPaymentCreate"`
	}
	vars := map[string]any{"id": id, "input": input}
	if err := c.execute(ctx, "checkoutPaymentCreate", checkoutPaymentCreateOp, vars, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "checkoutPaymentCreate", data.CheckoutPaymentCreate.Errors); err != nil {
		return nil, err
	}
	return data.CheckoutPaymentCreate.Payment, nil
}

// CheckoutComplete places the order and returns its identification
func (c *Client) CheckoutComplete(ctx context.Context, id string) (*OrderRef, error) {
	var data struct {
		CheckoutComplete struct {
			Order  *OrderRef      `json:"order"`
			Errors []GraphQLError `json:"errors"`
		} `json:"checkoutComplete"`
	}
	if err := c.execute(ctx, "checkoutComplete", checkoutCompleteOp, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "checkoutComplete", data.CheckoutComplete.Errors); err != nil {
		return nil, err
	}
	if data.CheckoutComplete.Order == nil {
		return nil, fmt.Errorf("%w: checkoutComplete: empty order payload", ErrTransport)
	}
	return data.CheckoutComplete.Order, nil
}

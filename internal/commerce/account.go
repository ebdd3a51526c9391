// internal/commerce/account.go
package commerce

import (
	"context"
	"fmt"
)

// TokenCreate exchanges credentials for a token pair
func (c *Client) TokenCreate(ctx context.Context, email, password string) (*TokenPair, error) {
	var data struct {
		TokenCreate struct {
			Token        string         `json:"token"`
			RefreshToken string         `json:"refreshToken"`
			Errors       []GraphQLError `json:"errors"`
		} `json:"tokenCreate"`
	}
	vars := map[string]any{"email": email, "password": password}
	if err := c.execute(ctx, "tokenCreate", tokenCreateOp, vars, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "tokenCreate", data.TokenCreate.Errors); err != nil {
		return nil, err
	}
	if data.TokenCreate.Token == "" {
		return nil, fmt.Errorf("%w: tokenCreate: empty token payload", ErrTransport)
	}
	return &TokenPair{
		Token:        data.TokenCreate.Token,
		RefreshToken: data.TokenCreate.RefreshToken,
	}, nil
}

// TokenRefresh exchanges a refresh token for a fresh access token
func (c *Client) TokenRefresh(ctx context.Context, refreshToken string) (string, error) {
	var data struct {
		TokenRefresh struct {
			Token  string         `json:"token"`
			Errors []GraphQLError `json:"errors"`
		} `json:"tokenRefresh"`
	}
	vars := map[string]any{"refreshToken": refreshToken}
	if err := c.execute(ctx, "tokenRefresh", tokenRefreshOp, vars, &data); err != nil {
		return "", err
	}
	if err := c.payloadErrors(ctx, "tokenRefresh", data.TokenRefresh.Errors); err != nil {
		return "", err
	}
	return data.TokenRefresh.Token, nil
}

// AccountRegister creates a new account. It does not authenticate: success
// still requires an explicit login.
func (c *Client) AccountRegister(ctx context.Context, input AccountRegisterInput) (*User, error) {
	var data struct {
		AccountRegister struct {
			User   *User          `json:"user"`
			Errors []GraphQLError `json:"errors"`
		} `json:"accountRegister"`
	}
	if err := c.execute(ctx, "accountRegister", accountRegisterOp, map[string]any{"input": input}, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "accountRegister", data.AccountRegister.Errors); err != nil {
		return nil, err
	}
	if data.AccountRegister.User == nil {
		return nil, fmt.Errorf("%w: accountRegister: empty user payload", ErrTransport)
	}
	return data.AccountRegister.User, nil
}

// AccountUpdate updates the authenticated user's profile
func (c *Client) AccountUpdate(ctx context.Context, input AccountInput) (*User, error) {
	var data struct {
		AccountUpdate struct {
			User   *User          `json:"user"`
			Errors []GraphQLError `json:"errors"`
		} `json:"accountUpdate"`
	}
	if err := c.execute(ctx, "accountUpdate", accountUpdateOp, map[string]any{"input": input}, &data); err != nil {
		return nil, err
	}
	if err := c.payloadErrors(ctx, "accountUpdate", data.AccountUpdate.Errors); err != nil {
		return nil, err
	}
	return data.AccountUpdate.User, nil
}

// Me fetches the profile of the authenticated user. A nil user with no error
// entries means the token no longer identifies anyone.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var data struct {
		Me *User `json:"me"`
	}
	if err := c.execute(ctx, "me", meOp, nil, &data); err != nil {
		return nil, err
	}
	if data.Me == nil {
		return nil, &RequestError{Operation: "me", Message: "No user found for token", Code: "UNAUTHENTICATED"}
	}
	return data.Me, nil
}

type orderEdge struct {
	Node Order `json:"node"`
}

// MyOrders fetches one page of the authenticated user's order history
func (c *Client) MyOrders(ctx context.Context, first int, after string) (*OrderPage, error) {
	var data struct {
		Me *struct {
			ID     string `json:"id"`
			Orders struct {
				PageInfo PageInfo    `json:"pageInfo"`
				Edges    []orderEdge `json:"edges"`
			} `json:"orders"`
		} `json:"me"`
	}
	vars := map[string]any{"first": first}
	if after != "" {
		vars["after"] = after
	}
	if err := c.execute(ctx, "myOrders", myOrdersOp, vars, &data); err != nil {
		return nil, err
	}
	if data.Me == nil {
		return nil, &RequestError{Operation: "myOrders", Message: "No user found for token", Code: "UNAUTHENTICATED"}
	}
	page := &OrderPage{PageInfo: data.Me.Orders.PageInfo}
	for _, edge := range data.Me.Orders.Edges {
		page.Orders = append(page.Orders, edge.Node)
	}
	return page, nil
}

// OrderByID fetches a single order projection
func (c *Client) OrderByID(ctx context.Context, id string) (*Order, error) {
	var data struct {
		Order *Order `json:"order"`
	}
	if err := c.execute(ctx, "order", orderByIDOp, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	if data.Order == nil {
		return nil, &RequestError{
			Operation: "order",
			Message:   fmt.Sprintf("Couldn't resolve to a node: %s", id),
			Code:      "NOT_FOUND",
		}
	}
	return data.Order, nil
}

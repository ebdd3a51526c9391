// internal/commerce/types.go
package commerce

import (
	"github.com/shopspring/decimal"
)

// Money is a server-derived amount with its currency. The storefront never
// computes authoritative money values; it only carries what the backend said.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// TaxedMoney wraps the gross component of a backend-priced amount
type TaxedMoney struct {
	Gross Money `json:"gross"`
}

// Image is a product or variant thumbnail
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// ProductVariant is a purchasable variant reference inside a line or listing
type ProductVariant struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	SKU               string   `json:"sku,omitempty"`
	QuantityAvailable int      `json:"quantityAvailable,omitempty"`
	Product           *Product `json:"product,omitempty"`
	Pricing           *Pricing `json:"pricing,omitempty"`
}

// Pricing carries the variant price as priced by the backend
type Pricing struct {
	Price *TaxedMoney `json:"price,omitempty"`
}

// PriceRange is the product-level price spread across variants
type PriceRange struct {
	Start *TaxedMoney `json:"start,omitempty"`
	Stop  *TaxedMoney `json:"stop,omitempty"`
}

// ProductPricing carries product-level pricing
type ProductPricing struct {
	PriceRange *PriceRange `json:"priceRange,omitempty"`
}

// Product is a read-only catalog projection
type Product struct {
	ID          string           `json:"id,omitempty"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug,omitempty"`
	Description string           `json:"description,omitempty"`
	Category    *Category        `json:"category,omitempty"`
	Thumbnail   *Image           `json:"thumbnail,omitempty"`
	Pricing     *ProductPricing  `json:"pricing,omitempty"`
	Variants    []ProductVariant `json:"variants,omitempty"`
}

// Category is a read-only catalog projection
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug,omitempty"`
	ProductCount int    `json:"productCount,omitempty"`
}

// CheckoutLine is one variant-and-quantity entry within a checkout
type CheckoutLine struct {
	ID         string          `json:"id"`
	Quantity   int             `json:"quantity"`
	Variant    *ProductVariant `json:"variant,omitempty"`
	TotalPrice *TaxedMoney     `json:"totalPrice,omitempty"`
}

// Address mirrors a backend address
type Address struct {
	ID             string   `json:"id,omitempty"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	StreetAddress1 string   `json:"streetAddress1"`
	StreetAddress2 string   `json:"streetAddress2,omitempty"`
	City           string   `json:"city"`
	PostalCode     string   `json:"postalCode"`
	Country        *Country `json:"country,omitempty"`
	Phone          string   `json:"phone,omitempty"`
}

// Country is the backend country representation on an address
type Country struct {
	Code    string `json:"code"`
	Country string `json:"country,omitempty"`
}

// AddressInput is the mutation input shape for addresses
type AddressInput struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	StreetAddress1 string `json:"streetAddress1"`
	StreetAddress2 string `json:"streetAddress2,omitempty"`
	City           string `json:"city"`
	CityArea       string `json:"cityArea,omitempty"`
	CountryArea    string `json:"countryArea,omitempty"`
	PostalCode     string `json:"postalCode"`
	Country        string `json:"country"`
	Phone          string `json:"phone,omitempty"`
}

// ShippingMethod is a backend-offered delivery option
type ShippingMethod struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price *Money `json:"price,omitempty"`
}

// PaymentGateway identifies a backend payment-processing integration
type PaymentGateway struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Payment is the backend record created by checkoutPaymentCreate
type Payment struct {
	ID      string `json:"id"`
	Gateway string `json:"gateway"`
	Total   *Money `json:"total,omitempty"`
}

// PaymentInput is the mutation input for checkoutPaymentCreate
type PaymentInput struct {
	Gateway string          `json:"gateway"`
	Token   string          `json:"token"`
	Amount  decimal.Decimal `json:"amount"`
}

// CheckoutUser is the user reference attached to a checkout
type CheckoutUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Checkout is the backend-tracked cart-in-progress. Totals are derived
// server-side and treated as read-only here.
type Checkout struct {
	ID                       string           `json:"id"`
	Token                    string           `json:"token"`
	Email                    string           `json:"email,omitempty"`
	Lines                    []CheckoutLine   `json:"lines"`
	TotalPrice               *TaxedMoney      `json:"totalPrice,omitempty"`
	SubtotalPrice            *TaxedMoney      `json:"subtotalPrice,omitempty"`
	ShippingPrice            *TaxedMoney      `json:"shippingPrice,omitempty"`
	User                     *CheckoutUser    `json:"user,omitempty"`
	ShippingAddress          *Address         `json:"shippingAddress,omitempty"`
	BillingAddress           *Address         `json:"billingAddress,omitempty"`
	ShippingMethod           *ShippingMethod  `json:"shippingMethod,omitempty"`
	AvailableShippingMethods []ShippingMethod `json:"availableShippingMethods,omitempty"`
	AvailablePaymentGateways []PaymentGateway `json:"availablePaymentGateways,omitempty"`
	Discount                 *Money           `json:"discount,omitempty"`
	DiscountName             string           `json:"discountName,omitempty"`
}

// CheckoutLineInput adds a variant to a checkout
type CheckoutLineInput struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutLineUpdateInput changes the quantity of an existing line
type CheckoutLineUpdateInput struct {
	LineID   string `json:"lineId"`
	Quantity int    `json:"quantity"`
}

// TokenPair is the credential pair issued by tokenCreate
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// User mirrors the backend account entity
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Addresses []Address `json:"addresses,omitempty"`
}

// AccountRegisterInput is the registration mutation input
type AccountRegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	Channel     string `json:"channel"`
}

// AccountInput is the profile update mutation input
type AccountInput struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// OrderLine is one entry within a placed order
type OrderLine struct {
	ID          string          `json:"id"`
	ProductName string          `json:"productName"`
	VariantName string          `json:"variantName,omitempty"`
	Quantity    int             `json:"quantity"`
	TotalPrice  *TaxedMoney     `json:"totalPrice,omitempty"`
	Thumbnail   *Image          `json:"thumbnail,omitempty"`
	Variant     *ProductVariant `json:"variant,omitempty"`
}

// Order is a read-only projection of a placed order
type Order struct {
	ID              string      `json:"id"`
	Number          string      `json:"number"`
	Created         string      `json:"created,omitempty"`
	Status          string      `json:"status,omitempty"`
	Total           *TaxedMoney `json:"total,omitempty"`
	Subtotal        *TaxedMoney `json:"subtotal,omitempty"`
	ShippingPrice   *TaxedMoney `json:"shippingPrice,omitempty"`
	Lines           []OrderLine `json:"lines,omitempty"`
	ShippingAddress *Address    `json:"shippingAddress,omitempty"`
}

// OrderRef is the minimal order identification returned by checkoutComplete
type OrderRef struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

// PageInfo carries relay-style pagination state
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor,omitempty"`
}

// ProductPage is one page of the catalog listing
type ProductPage struct {
	Products []Product `json:"products"`
	PageInfo PageInfo  `json:"pageInfo"`
}

// OrderPage is one page of a user's order history
type OrderPage struct {
	Orders   []Order  `json:"orders"`
	PageInfo PageInfo `json:"pageInfo"`
}

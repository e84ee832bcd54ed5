// Package order models checkout input and the orders the remote API returns.
package order

import (
	"strings"
	"time"

	"github.com/medistore/storefront/internal/domain/cart"
	"github.com/medistore/storefront/internal/domain/shared"
)

// PaymentMethod is the only supported payment method: cash on delivery
const PaymentMethod = "COD"

// DefaultCountry is applied when the shopper leaves the country empty
const DefaultCountry = "Bangladesh"

// Status is the lifecycle state of an order
type Status string

const (
	StatusPlaced     Status = "PLACED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// SellerSettableStatuses lists the statuses a seller may move an order to
var SellerSettableStatuses = []Status{StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// IsSellerSettable reports whether a seller may set this status
func (s Status) IsSellerSettable() bool {
	for _, allowed := range SellerSettableStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// ShippingDetails is the checkout form
type ShippingDetails struct {
	Name         string `json:"shippingName" validate:"required,min=2"`
	Phone        string `json:"shippingPhone" validate:"required,min=7"`
	AddressLine1 string `json:"shippingAddressLine1" validate:"required,min=5"`
	AddressLine2 string `json:"shippingAddressLine2,omitempty"`
	City         string `json:"shippingCity" validate:"required,min=2"`
	PostalCode   string `json:"shippingPostalCode,omitempty"`
	Country      string `json:"shippingCountry,omitempty"`
}

var validate = shared.NewValidator()

// Normalized trims every field and applies the default country
func (d ShippingDetails) Normalized() ShippingDetails {
	out := ShippingDetails{
		Name:         strings.TrimSpace(d.Name),
		Phone:        strings.TrimSpace(d.Phone),
		AddressLine1: strings.TrimSpace(d.AddressLine1),
		AddressLine2: strings.TrimSpace(d.AddressLine2),
		City:         strings.TrimSpace(d.City),
		PostalCode:   strings.TrimSpace(d.PostalCode),
		Country:      strings.TrimSpace(d.Country),
	}
	if out.Country == "" {
		out.Country = DefaultCountry
	}
	return out
}

// Validate checks the required fields
func (d ShippingDetails) Validate() error {
	return validate.Struct(d)
}

// CheckoutRequest is the body sent to the remote checkout endpoint
type CheckoutRequest struct {
	ShippingDetails
	PaymentMethod string `json:"paymentMethod"`
}

// Item is one line of a placed order
type Item struct {
	ID         string           `json:"id"`
	MedicineID string           `json:"medicineId"`
	Name       string           `json:"name,omitempty"`
	Quantity   int64            `json:"quantity"`
	UnitPrice  cart.LooseNumber `json:"unitPrice"`
}

// Order is a placed order as returned by the remote API
type Order struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId,omitempty"`
	Status          Status           `json:"status"`
	TotalAmount     cart.LooseNumber `json:"totalAmount"`
	PaymentMethod   string           `json:"paymentMethod,omitempty"`
	ShippingName    string           `json:"shippingName,omitempty"`
	ShippingPhone   string           `json:"shippingPhone,omitempty"`
	ShippingAddress string           `json:"shippingAddressLine1,omitempty"`
	ShippingCity    string           `json:"shippingCity,omitempty"`
	ShippingCountry string           `json:"shippingCountry,omitempty"`
	Items           []Item           `json:"items,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// Confirmation is returned after a successful checkout
type Confirmation struct {
	Order   *Order `json:"order,omitempty"`
	Message string `json:"message,omitempty"`
}

package cart

import (
	"github.com/shopspring/decimal"

	"github.com/medistore/storefront/internal/domain/shared/valueobject"
)

// DefaultShippingFee is the flat delivery charge in the default currency
var DefaultShippingFee = decimal.NewFromInt(120)

// Summary holds the totals derived from the visible lines
type Summary struct {
	ItemCount   int64             `json:"itemCount"`
	Subtotal    valueobject.Money `json:"subtotal"`
	Discount    valueobject.Money `json:"discount"`
	ShippingFee valueobject.Money `json:"shippingFee"`
	GrandTotal  valueobject.Money `json:"grandTotal"`
}

// Pricing carries the inputs to Summarize that are not part of the line set
type Pricing struct {
	Currency    valueobject.Currency
	ShippingFee decimal.Decimal
}

// DefaultPricing returns the storefront's pricing (BDT, flat 120 shipping)
func DefaultPricing() Pricing {
	return Pricing{
		Currency:    valueobject.DefaultCurrency,
		ShippingFee: DefaultShippingFee,
	}
}

// Summarize derives the totals. Shipping applies only when a line is visible;
// the discount is always zero.
func Summarize(set LineSet, p Pricing) Summary {
	currency := p.Currency
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	subtotal := decimal.Zero
	var count int64
	for _, it := range set.items {
		subtotal = subtotal.Add(it.LineTotal())
		count += it.Quantity
	}

	discount := decimal.Zero
	shipping := decimal.Zero
	if !set.IsEmpty() {
		shipping = p.ShippingFee
	}

	return Summary{
		ItemCount:   count,
		Subtotal:    valueobject.MustMoney(subtotal, currency),
		Discount:    valueobject.MustMoney(discount, currency),
		ShippingFee: valueobject.MustMoney(shipping, currency),
		GrandTotal:  valueobject.MustMoney(subtotal.Sub(discount).Add(shipping), currency),
	}
}

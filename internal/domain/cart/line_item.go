// Package cart holds the client-visible cart model: normalized line items,
// the ordered line set and the derived summary.
package cart

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultName is shown when the remote cart line has no catalog snapshot name
	DefaultName = "Unknown Product"
	// DefaultImageURL is shown when the catalog item has no image
	DefaultImageURL = "/placeholder.png"
)

// LineItem is one visible cart line
type LineItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"imageUrl"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Stock     int64           `json:"stock"`
	Quantity  int64           `json:"quantity"`
}

// LineTotal returns UnitPrice × Quantity
func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// AtStockCeiling reports whether an increment would exceed the known stock
func (l LineItem) AtStockCeiling() bool {
	return (l.Stock > 0 && l.Quantity >= l.Stock) || l.Quantity == math.MaxInt64
}

// RawLineItem is a cart line as the remote API returns it. Numeric fields are
// loose because the remote sends prices as strings and may send nulls.
type RawLineItem struct {
	ID         string          `json:"id"`
	Quantity   LooseNumber     `json:"quantity"`
	IsSelected bool            `json:"isSelected"`
	Medicine   *RawCatalogItem `json:"medicine"`
}

// RawCatalogItem is the catalog snapshot nested in a remote cart line
type RawCatalogItem struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    LooseNumber `json:"price"`
	Stock    LooseNumber `json:"stock"`
	ImageURL *string     `json:"imageUrl"`
	IsActive bool        `json:"isActive"`
}

// LooseNumber accepts a JSON number, a numeric string or null
type LooseNumber struct {
	raw   string
	valid bool
}

// NewLooseNumber builds a LooseNumber from its textual form
func NewLooseNumber(s string) LooseNumber {
	return LooseNumber{raw: s, valid: true}
}

// UnmarshalJSON implements json.Unmarshaler
func (n *LooseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = LooseNumber{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = LooseNumber{raw: strings.TrimSpace(s), valid: true}
		return nil
	}
	*n = LooseNumber{raw: string(data), valid: true}
	return nil
}

// MarshalJSON implements json.Marshaler
func (n LooseNumber) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.raw)
}

// IsNull reports whether the value was absent or null
func (n LooseNumber) IsNull() bool {
	return !n.valid
}

// Decimal parses the value; ok is false for null or unparsable input.
// decimal rejects NaN and Infinity, so a parsed value is always finite.
func (n LooseNumber) Decimal() (d decimal.Decimal, ok bool) {
	if !n.valid || n.raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(n.raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// NonNegativeDecimal coerces to a non-negative finite amount, 0 when unusable
func (n LooseNumber) NonNegativeDecimal() decimal.Decimal {
	d, ok := n.Decimal()
	if !ok || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// Int64 truncates the value to an integer; ok is false for null, unparsable
// or out-of-range input
func (n LooseNumber) Int64() (int64, bool) {
	d, ok := n.Decimal()
	if !ok {
		return 0, false
	}
	d = d.Truncate(0)
	if d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
		return 0, false
	}
	return d.IntPart(), true
}

// NonNegativeInt coerces to a non-negative integer (truncated), 0 when unusable
func (n LooseNumber) NonNegativeInt() int64 {
	i, ok := n.Int64()
	if !ok || i < 0 {
		return 0
	}
	return i
}

// Normalize converts a remote line into a visible line. ok is false when the
// line must not be displayed (coerced quantity ≤ 0).
func Normalize(raw RawLineItem) (LineItem, bool) {
	item := LineItem{
		ID:       raw.ID,
		Name:     DefaultName,
		ImageURL: DefaultImageURL,
		Quantity: 1,
	}

	if !raw.Quantity.IsNull() {
		q, ok := raw.Quantity.Int64()
		if !ok {
			return item, false
		}
		item.Quantity = q
	}

	if m := raw.Medicine; m != nil {
		item.ProductID = m.ID
		if m.Name != "" {
			item.Name = m.Name
		}
		if m.ImageURL != nil && *m.ImageURL != "" {
			item.ImageURL = *m.ImageURL
		}
		item.UnitPrice = m.Price.NonNegativeDecimal()
		item.Stock = m.Stock.NonNegativeInt()
	}

	return item, item.Quantity > 0
}

// NormalizeAll converts a remote cart into the visible line set, preserving
// order and dropping lines that must not be displayed
func NormalizeAll(raw []RawLineItem) []LineItem {
	items := make([]LineItem, 0, len(raw))
	for _, r := range raw {
		if item, ok := Normalize(r); ok {
			items = append(items, item)
		}
	}
	return items
}

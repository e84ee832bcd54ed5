package order

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() ShippingDetails {
	return ShippingDetails{
		Name:         "Osman Goni",
		Phone:        "01700000000",
		AddressLine1: "House 12, Road 5",
		City:         "Dhaka",
	}
}

func TestShippingDetails_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ShippingDetails)
		wantField string
	}{
		{name: "valid", mutate: func(*ShippingDetails) {}},
		{name: "missing name", mutate: func(d *ShippingDetails) { d.Name = "" }, wantField: "shippingName"},
		{name: "short phone", mutate: func(d *ShippingDetails) { d.Phone = "123" }, wantField: "shippingPhone"},
		{name: "short address", mutate: func(d *ShippingDetails) { d.AddressLine1 = "x" }, wantField: "shippingAddressLine1"},
		{name: "missing city", mutate: func(d *ShippingDetails) { d.City = "" }, wantField: "shippingCity"},
		{name: "optional fields empty", mutate: func(d *ShippingDetails) { d.AddressLine2, d.PostalCode, d.Country = "", "", "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(&d)
			err := d.Normalized().Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.wantField, verrs[0].Field())
		})
	}
}

func TestShippingDetails_Normalized(t *testing.T) {
	d := validDetails()
	d.Name = "  Osman  "
	n := d.Normalized()
	assert.Equal(t, "Osman", n.Name)
	assert.Equal(t, DefaultCountry, n.Country)

	d.Country = "Nepal"
	assert.Equal(t, "Nepal", d.Normalized().Country)
}

func TestStatus_IsSellerSettable(t *testing.T) {
	assert.True(t, StatusShipped.IsSellerSettable())
	assert.True(t, StatusCancelled.IsSellerSettable())
	assert.False(t, StatusPlaced.IsSellerSettable())
	assert.False(t, Status("LOST").IsSellerSettable())
}

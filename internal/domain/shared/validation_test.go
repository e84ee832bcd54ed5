package shared

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator_ReportsJSONNames(t *testing.T) {
	type payload struct {
		City  string `json:"shippingCity,omitempty" validate:"required"`
		Plain string `validate:"required"`
	}

	err := NewValidator().Struct(payload{})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "shippingCity", verrs[0].Field())
	assert.Equal(t, "Plain", verrs[1].Field())
}

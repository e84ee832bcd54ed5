package catalog

import "github.com/medistore/storefront/internal/domain/shared"

// ErrInvalidPrice is returned when a medicine price is not a non-negative number
var ErrInvalidPrice = shared.NewDomainError("INVALID_INPUT", "Price must be a non-negative number")

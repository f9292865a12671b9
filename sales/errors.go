package sales

import (
	"errors"

	"aquapos/store"
)

// Order failures callers can branch on with errors.Is. Anything else
// surfacing from PlaceOrder is a storage fault.
var (
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidOrderDate = errors.New("order date must be YYYY-MM-DD or an ISO datetime, not in the future")

	// ErrInsufficientStock aliases the store sentinel so callers only need
	// this package to classify order failures.
	ErrInsufficientStock = store.ErrInsufficientStock

	ErrInsufficientBottleStock = errors.New("insufficient bottle stock")
)

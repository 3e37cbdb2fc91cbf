package shop

import (
	"math"

	"github.com/go-faster/errors"
)

// Precondition failures. Handlers map them to user-facing notices.
var (
	ErrCatalogUnavailable   = errors.New("could not load the product catalog")
	ErrNotLoaded            = errors.New("shop is not loaded")
	ErrProductNotFound      = errors.New("product not found")
	ErrOutOfStock           = errors.New("product is out of stock")
	ErrCartLineNotFound     = errors.New("product is not in the cart")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrConfirmationRequired = errors.New("confirmation required to clear the cart")
	ErrInvalidStockChange   = errors.New("stock cannot be negative")
	ErrQuantityOutOfRange   = errors.New("quantity out of range")
)

// FetchError reports a failed read of the static catalog source. It matches both
// ErrCatalogUnavailable and the underlying cause.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return ErrCatalogUnavailable.Error() + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrCatalogUnavailable, e.Err}
}

// addQuantity returns n+delta, or ErrQuantityOutOfRange when the sum overflows int.
func addQuantity(n, delta int) (int, error) {
	if (delta > 0 && n > math.MaxInt-delta) || (delta < 0 && n < math.MinInt-delta) {
		return 0, ErrQuantityOutOfRange
	}
	return n + delta, nil
}

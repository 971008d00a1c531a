package inventory

import "errors"

var (
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrProductNotFound   = errors.New("product not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidContact    = errors.New("contact must be exactly 10 digits")
	ErrInvalidQuantity   = errors.New("quantity must be non-negative")
	ErrInvalidPrice      = errors.New("price must be non-negative")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyCompleted  = errors.New("order already completed")

	// ErrStorageUnavailable wraps driver failures that are not mapped to a
	// domain kind. The session terminates cleanly when it surfaces.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Recoverable reports whether the operator can retry after seeing err,
// as opposed to losing the store entirely.
func Recoverable(err error) bool {
	return err != nil && !errors.Is(err, ErrStorageUnavailable)
}

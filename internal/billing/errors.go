package billing

import "errors"

var (
	// ErrCustomerNotFound rejects a bill whose customer could not be resolved.
	// Nothing has been written when it is returned.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrStoreUnavailable wraps persistence failures. Rows written before the
	// failure are kept.
	ErrStoreUnavailable = errors.New("bill store unavailable")
)

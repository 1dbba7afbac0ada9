package domain

import "errors"

// Error kinds shared by every port. Adapters wrap these with fmt.Errorf("%w: ...")
// so callers can classify failures with errors.Is.
var (
	// ErrConnection indicates the chain node is unreachable or a subscription was dropped.
	ErrConnection = errors.New("chain provider connection error")

	// ErrHTTP indicates a data query returned a non-success status.
	ErrHTTP = errors.New("data query http error")

	// ErrParse indicates a malformed response body or registry document.
	ErrParse = errors.New("parse error")

	// ErrStorage indicates the registry store is missing, unreadable or unwritable.
	ErrStorage = errors.New("registry storage error")

	// ErrDelivery indicates an alert transport failure. It is the only recoverable kind.
	ErrDelivery = errors.New("alert delivery error")
)

// IsFatal reports whether err must stop a detector.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrDelivery)
}

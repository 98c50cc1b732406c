package loopjet

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrAPIKeyMissing means no API key is configured. Checked before any
	// network I/O; callers must surface the settings path to the user.
	ErrAPIKeyMissing = errors.New("loopjet: API key not configured")

	// ErrServiceUnavailable wraps transport-level failures (connection
	// refused, DNS, timeout). Distinct from HTTP-level failures.
	ErrServiceUnavailable = errors.New("loopjet: service unreachable")

	// ErrInvalidResponse means the service answered 2xx with a body that
	// does not match the documented contract.
	ErrInvalidResponse = errors.New("loopjet: invalid response body")

	// ErrInvalidResource means an unknown resource kind was requested
	ErrInvalidResource = errors.New("loopjet: invalid resource kind")
)

// CreditsError is the structured 402 failure. The remote detail object
// carries the account balance, the credits the operation needs, and the gap.
type CreditsError struct {
	Message   string
	Balance   decimal.Decimal
	Required  decimal.Decimal
	Shortfall decimal.Decimal
}

// Error renders a user-actionable message containing all three numbers
func (e *CreditsError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "You need more credits to generate estimates."
	}
	return fmt.Sprintf(
		"Insufficient Loopjet credits: %s (balance: %s, required: %s, shortfall: %s). Please purchase more credits in your Loopjet account.",
		msg, e.Balance.String(), e.Required.String(), e.Shortfall.String(),
	)
}

// ValidationError is the structured 400 failure with the human-readable
// message extracted from the (possibly nested) detail object.
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("Cannot generate quotation: %s", e.Message)
}

// RequestError covers every other non-success HTTP status. Body holds the
// parsed detail when the response was JSON, otherwise the raw text.
type RequestError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *RequestError) Error() string {
	return fmt.Sprintf("Loopjet API error (HTTP %d): %s", e.StatusCode, e.Body)
}

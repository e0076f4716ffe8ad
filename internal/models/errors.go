package models

import "errors"

// Domain errors returned by services. Handlers translate them into HTTP
// status codes; callers check them with errors.Is.
var (
	// ErrNotFound covers both a missing entity and a caller that does not
	// own it. The two cases are deliberately indistinguishable so that
	// probing requests cannot learn whether a card exists.
	ErrNotFound = errors.New("not found")

	// ErrInvalidOperation means a state-gated precondition failed, e.g.
	// topping up a blocked card or transferring to the same card.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInsufficientFunds means the source card balance is short of the
	// requested transfer amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidArgument means a malformed amount or an unrecognized
	// status literal.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidTransfer names which side of a transfer failed to resolve.
	ErrInvalidTransfer = errors.New("invalid transfer")

	// ErrDecryption means a stored card number could not be recovered.
	// It is fatal for the affected record's display only.
	ErrDecryption = errors.New("decryption failed")

	// ErrDuplicatePan is surfaced by the repository when an insert hits the
	// unique constraint on the encrypted card number. Card creation retries
	// with a freshly generated number.
	ErrDuplicatePan = errors.New("duplicate card number")
)

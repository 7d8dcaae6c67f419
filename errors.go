package pinvault

import "errors"

var (
	// ErrUserAlreadyExists is returned when creating an account whose
	// username is already present in the store.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned when updating a record whose username is
	// not present in the store.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountLocked is returned by Authenticate for a locked record.
	// The attempt is not counted.
	ErrAccountLocked = errors.New("account locked")
	// ErrPINMismatch is returned when the entered PIN does not match the
	// stored PIN. The accompanying AuthResult carries the attempt counts.
	ErrPINMismatch = errors.New("pin mismatch")
	// ErrInvalidLength is returned by ChangePIN when the new PIN's length
	// differs from the current PIN's length.
	ErrInvalidLength = errors.New("new pin length does not match current pin")
	// ErrWeakPIN is returned by ChangePIN when the new PIN fails the
	// quality policy.
	ErrWeakPIN = errors.New("new pin rejected by quality policy")
	// ErrInvalidPIN is returned by ChangePIN when the new PIN contains
	// anything other than decimal digits. A non-digit PIN could carry the
	// record field separator and corrupt the stored line.
	ErrInvalidPIN = errors.New("pin must contain only decimal digits")
	// ErrMalformedRecord marks a stored line that cannot be decoded.
	// Load recovers by skipping the line.
	ErrMalformedRecord = errors.New("malformed account record")
	// ErrUnstorableRecord is returned by Add and Update when the record's
	// encoded form contains the line delimiter byte and would therefore be
	// torn apart by the next load. The wire format is frozen, so such
	// records are refused instead of written.
	ErrUnstorableRecord = errors.New("record encoding collides with the line delimiter")
	// ErrInvalidUsername is returned at account creation for an empty
	// username, one containing the field separator, or one over the
	// configured length cap.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrInvalidAmount is returned for a non-positive withdrawal amount or
	// a negative starting balance.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientFunds is returned when a withdrawal exceeds the
	// balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSessionReceiptsDisabled is returned by the session receipt
	// operations when Config.Session.Enabled is false.
	ErrSessionReceiptsDisabled = errors.New("session receipts disabled")
	// ErrEngineNotReady is returned when an Engine was not built through
	// Builder.Build.
	ErrEngineNotReady = errors.New("engine not initialized")
)

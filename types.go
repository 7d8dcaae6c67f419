package pinvault

// AccountRecord is one user's persisted state. Records are passed and
// returned by value: callers hold copies and persist changes through the
// store, never through shared references.
type AccountRecord struct {
	// Username is the unique key. Non-empty, free of the field separator,
	// immutable after creation.
	Username string

	// PIN is the plaintext decimal digit string. Its length is fixed at
	// creation (4 or 6) and only the PIN-change operation may replace it.
	PIN string

	// Balance is non-negative, with two-decimal cent precision at rest.
	Balance float64

	// WrongAttempts counts consecutive failed authentications, reset to
	// zero on success or PIN change.
	WrongAttempts int

	// Locked is terminal: once set it is cleared only by direct store
	// manipulation outside this package.
	Locked bool
}

// AuthResult is returned by [Engine.Authenticate] and [Engine.ChangePIN].
// Record reflects the persisted state after the call, including attempt and
// lock mutations from a failed attempt.
type AuthResult struct {
	Record AccountRecord

	// Attempts is the wrong-attempt counter recorded on the account after
	// this call.
	Attempts int

	// Remaining is the number of attempts left before lockout, floored at
	// zero.
	Remaining int
}

// CreateAccountRequest is the input for [Engine.CreateAccount].
type CreateAccountRequest struct {
	Username string

	// PINLength must be 4 or 6; zero selects Config.Pin.DefaultLength.
	PINLength int

	// StartingBalance must be non-negative. It is rounded to cents.
	StartingBalance float64
}

// CreateAccountResult is returned by [Engine.CreateAccount]. GeneratedPIN is
// surfaced here exactly once; no other operation re-displays a PIN.
type CreateAccountResult struct {
	Record       AccountRecord
	GeneratedPIN string
}

// AccountSummary is the administrative listing view. It deliberately has no
// PIN field.
type AccountSummary struct {
	Username string
	Balance  float64
	Locked   bool
}

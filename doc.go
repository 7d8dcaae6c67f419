// Package pinvault provides a PIN-based account manager with quality-checked
// PIN issuance, a wrong-attempt lockout state machine, and flat-file
// persistence.
//
// # Architecture boundaries
//
// pinvault is the public surface. It exposes [Engine], [Builder], [Config],
// [Store], and value types (AccountRecord, AuthResult, AccountSummary). PIN
// policy and generation live in the pin sub-package, session receipts in the
// token sub-package, and the at-rest byte transform under internal/.
//
// # Persistence model
//
// The store is a newline-delimited flat file with one encoded record per
// line. Every mutation rewrites the whole file; the store assumes a single
// exclusive owner for the lifetime of the process. The at-rest transform is
// a reversible encoding with no cryptographic value — PINs are plaintext in
// memory and recoverable from disk by design of the original format.
//
// # What this package must NOT do
//
//   - Expose a stored PIN through any administrative surface.
//   - Write a locked account whose wrong-attempt counter is below the
//     lockout threshold.
//   - Let a balance go negative through any operation it owns.
package pinvault

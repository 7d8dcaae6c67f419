// Package pin implements PIN quality policy and PIN generation.
//
// # Policy
//
// A PIN is weak when any of the three predicates holds: the digits form a
// strictly ascending or strictly descending sequence ([IsSequential]), the
// digits contain a run of three or more equal values or are all identical
// ([HasTooManyRepeats]), or the value appears on the fixed denylist of
// well-known PINs ([IsDenylisted]).
//
// # Generation
//
// [Generator] draws uniform digits from an injected entropy source and
// resamples until the candidate passes the policy. The source defaults to
// crypto/rand; tests substitute a deterministic reader.
//
// # Architecture boundaries
//
// This package owns PIN quality only. Lockout, persistence, and PIN-change
// rules are enforced by the Engine.
//
// # What this package must NOT do
//
//   - Store, persist, or log generated PINs.
//   - Import any other pinvault package.
package pin

// Package token implements short-lived session receipts.
//
// A receipt is an HS256-signed JWT minted after a successful PIN
// authentication. The interactive session layer validates it on every menu
// iteration and forces logout once it expires. Receipts never authorize
// account mutations on their own: balance-affecting operations always
// re-authenticate against the stored PIN.
//
// # What this package must NOT do
//
//   - Carry the PIN or any derived form of it in claims.
//   - Import any other pinvault package.
package token

// Package catalog implements a product-catalog backend with a price field
// that is confidential to anonymous callers.
//
// Access control:
//   - TokenService issues and verifies HS256 JWTs carrying the user identity.
//   - A single auth resolver (middleware/authware) produces a request-scoped
//     AuthContext. Mandatory routes reject on any resolution failure; optional
//     routes proceed anonymous, using the context only to gate visibility of
//     the price field.
//
// Price confidentiality:
//   - PriceCipher encrypts the decimal price before it is persisted and
//     decrypts it on read for authenticated callers. Anonymous responses omit
//     the price key entirely. Decryption failures are recovered per field:
//     logged, the field dropped, the request still succeeds.
//
// Persistence sits on Bun over SQLite; the store provides per-statement
// atomicity only, concurrent updates are last-write-wins.
package catalog

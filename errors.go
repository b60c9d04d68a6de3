package catalog

import (
	"github.com/goliatone/go-errors"
)

const (
	// TextCodeInvalidCreds identifies failed credential checks
	TextCodeInvalidCreds = "INVALID_CREDENTIALS"
	// TextCodeTokenInvalid identifies any unusable bearer token
	TextCodeTokenInvalid = "TOKEN_INVALID"
	// TextCodeDuplicateUser identifies registration conflicts
	TextCodeDuplicateUser = "DUPLICATE_USER"
	// TextCodeNotAuthorized identifies rejected protected requests
	TextCodeNotAuthorized = "NOT_AUTHORIZED"
	// TextCodePriceUnreadable identifies ciphertext that could not be decrypted
	TextCodePriceUnreadable = "PRICE_UNREADABLE"
	// TextCodeEmptyPassword identifies empty password input
	TextCodeEmptyPassword = "EMPTY_PASSWORD"
)

// ErrMismatchedHashAndPassword is returned for both unknown email and wrong
// password so responses carry no account enumeration signal.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeInvalidCreds)

// ErrTokenInvalid covers malformed, badly signed, and expired tokens alike.
// The reason is intentionally not surfaced to clients.
var ErrTokenInvalid = errors.New("invalid or expired token", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenInvalid)

// ErrNotAuthorized rejects protected routes for any resolution failure
var ErrNotAuthorized = errors.New("not authorized to access this resource", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeNotAuthorized)

// ErrDuplicateUser is returned when username or email is already registered
var ErrDuplicateUser = errors.New("username or email already registered", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest).
	WithTextCode(TextCodeDuplicateUser)

// ErrUserNotFound is returned for unresolved user ids
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound)

// ErrProductNotFound is returned for unresolved product ids
var ErrProductNotFound = errors.New("product not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound)

// ErrPriceUnreadable marks ciphertext that could not be decrypted. It is
// recovered per field: logged, the price dropped from the payload, the
// request still succeeds.
var ErrPriceUnreadable = errors.New("price ciphertext unreadable", errors.CategoryOperation).
	WithTextCode(TextCodePriceUnreadable)

// ErrNoEmptyString rejects empty passwords before hashing
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest).
	WithTextCode(TextCodeEmptyPassword)

package totp

import "errors"

// Errors returned by the token engine, URI codec and authenticator.
var (
	// ErrInvalidSecret indicates the secret is unset, not valid base32, or
	// decodes to zero bytes.
	ErrInvalidSecret = errors.New("totp: invalid secret")
	// ErrInvalidPeriod indicates a period of zero seconds.
	ErrInvalidPeriod = errors.New("totp: period must be greater than zero")
	// ErrMalformedURI indicates a string that is not a usable otpauth://totp/ URI.
	ErrMalformedURI = errors.New("totp: malformed uri")
	// ErrDigestTooShort indicates the truncation offset taken from the digest
	// points past its end, which happens with digests shorter than 19 bytes.
	ErrDigestTooShort = errors.New("totp: digest too short for dynamic truncation")
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("totp: invalid configuration")
	// ErrInvalidCode indicates the provided code was rejected.
	ErrInvalidCode = errors.New("totp: invalid code")
	// ErrNilAuthenticator indicates a nil authenticator was used.
	ErrNilAuthenticator = errors.New("totp: authenticator is nil")
)

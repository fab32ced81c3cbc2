package totp

import (
	"encoding/base32"
	"fmt"
	"strings"
)

var secretEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// EncodeSecret returns the unpadded upper-case base32 form of b.
func EncodeSecret(b []byte) string {
	return secretEncoding.EncodeToString(b)
}

// DecodeSecret decodes a base32 secret. Lower case letters and trailing
// padding are accepted.
func DecodeSecret(s string) ([]byte, error) {
	return secretEncoding.DecodeString(strings.ToUpper(strings.TrimRight(s, "=")))
}

// decodeKey decodes s and rejects secrets that yield no key material.
func decodeKey(s string) ([]byte, error) {
	if s == "" {
		return nil, ErrInvalidSecret
	}
	b, err := DecodeSecret(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: secret decodes to zero bytes", ErrInvalidSecret)
	}
	return b, nil
}

package totp

import (
	"fmt"
	"strings"

	"github.com/pquerna/otp"

	"github.com/jeremyhahn/go-totp/pkg/hmacalg"
)

// Defaults applied by NewConfig and assumed by the URI codec when a query
// parameter is absent.
const (
	DefaultPeriod     uint32 = 30
	DefaultDigits     uint32 = 6
	DefaultExtraGap   uint32 = 1
	DefaultSecretBits uint32 = 80

	// SteamDigits is the code length used when Digits is zero.
	SteamDigits = 5

	// MaxDigits is the longest code that can be computed. A truncated value
	// has at most 10 decimal digits.
	MaxDigits uint32 = 10
)

// DefaultAlgorithm is the otpauth default, HMAC-SHA1.
var DefaultAlgorithm = hmacalg.SHA1

// OutputType selects the alphabet a code is written in.
type OutputType int

const (
	// OutputStandard writes RFC 6238 decimal codes.
	OutputStandard OutputType = iota
	// OutputSteam writes codes in the Steam Guard alphabet.
	OutputSteam
)

// String returns the name of the output type.
func (o OutputType) String() string {
	switch o {
	case OutputStandard:
		return "standard"
	case OutputSteam:
		return "steam"
	default:
		return fmt.Sprintf("OutputType(%d)", int(o))
	}
}

// ParseOutputType accepts "standard" (or "rfc") and "steam", ignoring case.
func ParseOutputType(s string) (OutputType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "rfc":
		return OutputStandard, nil
	case "steam":
		return OutputSteam, nil
	default:
		return OutputStandard, fmt.Errorf("%w: unknown output type %q", ErrInvalidConfig, s)
	}
}

// Config describes one TOTP token: its shared secret, how codes are derived
// from it and how it is presented in an otpauth URI.
//
// A Config is a plain value owned by the caller. The engine reads it for the
// duration of a call and never keeps a reference, so a Config that is
// mutated concurrently with a call needs external synchronisation.
type Config struct {
	// Secret is the base32-encoded shared secret. Empty means unset.
	Secret string
	// Label is the account label shown by authenticator apps.
	Label string
	// Issuer names the provider. Nil means absent, which is distinct from
	// a present but empty issuer.
	Issuer *string
	// Period is the time step in seconds. Must be greater than zero.
	Period uint32
	// Digits is the code length, at most MaxDigits. Zero selects a 5
	// character Steam code.
	Digits uint32
	// Algorithm names the HMAC variant. The zero value is SHA1.
	Algorithm hmacalg.Name
	// OutputType selects decimal or Steam output.
	OutputType OutputType
	// ExtraGap is the number of prior periods also accepted by validation.
	ExtraGap uint32
}

// NewConfig returns a Config populated with the defaults.
func NewConfig() *Config {
	return &Config{
		Period:     DefaultPeriod,
		Digits:     DefaultDigits,
		Algorithm:  DefaultAlgorithm,
		OutputType: OutputStandard,
		ExtraGap:   DefaultExtraGap,
	}
}

// SecretBytes decodes the secret. The caller owns the returned slice and
// should clear it when done.
func (c *Config) SecretBytes() ([]byte, error) {
	if c == nil || c.Secret == "" {
		return nil, fmt.Errorf("%w: secret is not set", ErrInvalidSecret)
	}
	return decodeKey(c.Secret)
}

// HasValidSecret reports whether the secret decodes to at least one byte.
func (c *Config) HasValidSecret() bool {
	b, err := c.SecretBytes()
	clear(b)
	return err == nil
}

// SetIssuer sets the issuer. An empty string is kept as a present, empty issuer.
func (c *Config) SetIssuer(issuer string) {
	c.Issuer = &issuer
}

// IssuerOrEmpty returns the issuer, or "" when it is absent.
func (c *Config) IssuerOrEmpty() string {
	if c.Issuer == nil {
		return ""
	}
	return *c.Issuer
}

// Length returns the number of characters in a generated code.
func (c *Config) Length() int {
	if c.Digits == 0 {
		return SteamDigits
	}
	return int(c.Digits)
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	if c.Issuer != nil {
		issuer := *c.Issuer
		cp.Issuer = &issuer
	}
	return &cp
}

// GenerateNewSecret replaces the secret with a random one of at least
// minimumBits bits.
func (c *Config) GenerateNewSecret(minimumBits uint32) error {
	secret, err := GenerateSecret(minimumBits)
	if err != nil {
		return err
	}
	c.Secret = secret
	return nil
}

// GenerateNewSecretDefault replaces the secret with a random 80 bit one.
func (c *Config) GenerateNewSecretDefault() error {
	return c.GenerateNewSecret(DefaultSecretBits)
}

// Key converts the configuration to a github.com/pquerna/otp key so it can be
// handed to code built on that package.
func (c *Config) Key() (*otp.Key, error) {
	uri, err := c.URI()
	if err != nil {
		return nil, err
	}
	return otp.NewKeyFromURL(uri)
}

// validate checks that tokens can be computed from c with provider p.
func (c *Config) validate(p hmacalg.Provider) error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if !c.HasValidSecret() {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrInvalidSecret)
	}
	if c.Period == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrInvalidPeriod)
	}
	if err := c.checkDigits(); err != nil {
		return err
	}
	if !p.Supports(c.Algorithm) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, hmacalg.ErrUnsupportedAlgorithm, c.Algorithm.String())
	}
	if c.OutputType != OutputStandard && c.OutputType != OutputSteam {
		return fmt.Errorf("%w: unknown output type %d", ErrInvalidConfig, int(c.OutputType))
	}
	return nil
}

// checkDigits bounds the code length before any buffer is sized from it.
func (c *Config) checkDigits() error {
	if c != nil && c.Digits > MaxDigits {
		return fmt.Errorf("%w: digits %d exceeds %d", ErrInvalidConfig, c.Digits, MaxDigits)
	}
	return nil
}

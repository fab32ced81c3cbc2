package totp

import (
	"context"
	"fmt"
	"strings"
)

// Authenticator validates codes for a single, fixed configuration.
// It is safe for concurrent use.
type Authenticator struct {
	cfg    *Config
	engine *Engine
}

// NewAuthenticator creates a new authenticator from cfg.
// The configuration is validated and an error wrapping ErrInvalidConfig is
// returned if no code could be computed from it. cfg is copied; later
// changes to it do not affect the authenticator.
func NewAuthenticator(cfg Config, opts ...Option) (*Authenticator, error) {
	engine := NewEngine(opts...)

	cp := cfg.Clone()
	if err := cp.validate(engine.provider); err != nil {
		return nil, err
	}

	return &Authenticator{cfg: cp, engine: engine}, nil
}

// Authenticate validates code against the current time, accepting the
// configured number of prior periods.
func (a *Authenticator) Authenticate(ctx context.Context, code string) error {
	if a == nil {
		return ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}

	valid, err := a.engine.ValidateNow(ctx, a.cfg, code)
	if err != nil {
		return fmt.Errorf("%w: validation failed: %w", ErrInvalidCode, err)
	}
	if !valid {
		return ErrInvalidCode
	}
	return nil
}

// Generate returns the code for the current time.
func (a *Authenticator) Generate(ctx context.Context) (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}

	code, err := a.engine.TokenNow(ctx, a.cfg)
	if err != nil {
		return "", fmt.Errorf("totp: failed to generate code: %w", err)
	}
	return code, nil
}

// GenerateAt returns the code for a Unix timestamp in seconds.
func (a *Authenticator) GenerateAt(timestamp int64) (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}
	return a.engine.Token(a.cfg, timestamp)
}

// ProvisioningURI returns the otpauth:// URI for the configuration.
// This URI can be encoded as a QR code and scanned by authenticator apps.
func (a *Authenticator) ProvisioningURI() (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}
	return a.cfg.URI()
}

// Config returns a copy of the authenticator's configuration.
func (a *Authenticator) Config() *Config {
	if a == nil {
		return nil
	}
	return a.cfg.Clone()
}

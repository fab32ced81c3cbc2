package totp

import (
	"context"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeremyhahn/go-totp/pkg/clock"
	"github.com/jeremyhahn/go-totp/pkg/hmacalg"
)

// Engine computes and validates codes for a Config.
// It holds no per-token state and is safe for concurrent use.
type Engine struct {
	clock    clock.Source
	provider hmacalg.Provider
	logger   zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used by TokenNow and ValidateNow.
func WithClock(src clock.Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.clock = src
		}
	}
}

// WithProvider sets the HMAC provider.
func WithProvider(p hmacalg.Provider) Option {
	return func(e *Engine) {
		if p != nil {
			e.provider = p
		}
	}
}

// WithLogger sets the logger. Secrets and codes are never logged.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine returns an engine using the system clock, the default HMAC
// registry and a no-op logger unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock:    clock.New(),
		provider: hmacalg.Default,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Counter returns the time step containing timestamp, floor(timestamp/period),
// as the unsigned value fed to the HMAC.
func (e *Engine) Counter(cfg *Config, timestamp int64) (uint64, error) {
	if cfg == nil {
		return 0, ErrInvalidConfig
	}
	if cfg.Period == 0 {
		return 0, ErrInvalidPeriod
	}
	return counterAt(timestamp, cfg.Period), nil
}

func counterAt(timestamp int64, period uint32) uint64 {
	p := int64(period)
	c := timestamp / p
	if timestamp%p != 0 && timestamp < 0 {
		c--
	}
	return uint64(c)
}

// TokenForCounter returns the code for an explicit counter value.
func (e *Engine) TokenForCounter(cfg *Config, counter uint64) (string, error) {
	if err := cfg.checkDigits(); err != nil {
		return "", err
	}
	key, err := cfg.SecretBytes()
	if err != nil {
		return "", err
	}
	defer clear(key)

	return e.generate(cfg, key, counter)
}

// Token returns the code for a Unix timestamp in seconds.
func (e *Engine) Token(cfg *Config, timestamp int64) (string, error) {
	if err := cfg.checkDigits(); err != nil {
		return "", err
	}
	key, err := cfg.SecretBytes()
	if err != nil {
		return "", err
	}
	defer clear(key)

	counter, err := e.Counter(cfg, timestamp)
	if err != nil {
		return "", err
	}
	return e.generate(cfg, key, counter)
}

// TokenAt returns the code for t.
func (e *Engine) TokenAt(cfg *Config, t time.Time) (string, error) {
	return e.Token(cfg, t.Unix())
}

// TokenNow asks the clock for the current time and returns the code for it.
// A canceled context is reported as the context error.
func (e *Engine) TokenNow(ctx context.Context, cfg *Config) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	now, err := e.clock.Now(ctx)
	if err != nil {
		return "", err
	}
	return e.TokenAt(cfg, now)
}

// Validate reports whether token matches the code at timestamp or at any of
// the cfg.ExtraGap preceding periods. An empty token is rejected without
// error; an unusable secret is an error.
//
// Every candidate is computed and compared, so the time taken does not
// depend on which period matched. A candidate whose digest is too short to
// truncate counts as a mismatch; ErrDigestTooShort is returned only when no
// candidate could be computed.
func (e *Engine) Validate(cfg *Config, token string, timestamp int64) (bool, error) {
	if token == "" {
		return false, nil
	}
	if err := cfg.checkDigits(); err != nil {
		return false, err
	}

	key, err := cfg.SecretBytes()
	if err != nil {
		return false, err
	}
	defer clear(key)

	counter, err := e.Counter(cfg, timestamp)
	if err != nil {
		return false, err
	}

	match, computed := 0, 0
	input := []byte(token)
	for i := uint64(0); i <= uint64(cfg.ExtraGap); i++ {
		expected, err := e.generate(cfg, key, counter-i)
		if errors.Is(err, ErrDigestTooShort) {
			continue
		}
		if err != nil {
			return false, err
		}
		computed++
		match |= subtle.ConstantTimeCompare([]byte(expected), input)
	}
	if computed == 0 {
		return false, ErrDigestTooShort
	}

	e.logger.Debug().
		Str("algorithm", cfg.Algorithm.Short()).
		Uint32("period", cfg.Period).
		Uint32("extra_gap", cfg.ExtraGap).
		Bool("valid", match == 1).
		Msg("totp: token validated")

	return match == 1, nil
}

// ValidateAt is Validate for t.
func (e *Engine) ValidateAt(cfg *Config, token string, t time.Time) (bool, error) {
	return e.Validate(cfg, token, t.Unix())
}

// ValidateNow asks the clock for the current time and validates token
// against it. A canceled context is reported as the context error.
func (e *Engine) ValidateNow(ctx context.Context, cfg *Config, token string) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	now, err := e.clock.Now(ctx)
	if err != nil {
		return false, err
	}
	return e.ValidateAt(cfg, token, now)
}

func (e *Engine) generate(cfg *Config, key []byte, counter uint64) (string, error) {
	mac, err := e.provider.New(cfg.Algorithm, key)
	if err != nil {
		return "", err
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)
	mac.Write(msg[:])

	sum := mac.Sum(nil)
	defer clear(sum)

	value, err := truncate(sum)
	if err != nil {
		return "", err
	}
	return encode(value, cfg.Digits, cfg.OutputType), nil
}

// Token returns the code for timestamp using the default engine.
func Token(cfg *Config, timestamp int64) (string, error) {
	return defaultEngine.Token(cfg, timestamp)
}

// Validate validates token at timestamp using the default engine.
func Validate(cfg *Config, token string, timestamp int64) (bool, error) {
	return defaultEngine.Validate(cfg, token, timestamp)
}

// TokenAt returns the code for t using the default engine.
func TokenAt(cfg *Config, t time.Time) (string, error) {
	return defaultEngine.TokenAt(cfg, t)
}

// ValidateAt validates token at t using the default engine.
func ValidateAt(cfg *Config, token string, t time.Time) (bool, error) {
	return defaultEngine.ValidateAt(cfg, token, t)
}

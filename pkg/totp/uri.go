package totp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jeremyhahn/go-totp/pkg/hmacalg"
)

// URIPrefix is the scheme and type every TOTP URI starts with.
const URIPrefix = "otpauth://totp/"

// URI returns the otpauth representation of c:
//
//	otpauth://totp/<label>?secret=<secret>[&issuer=..][&period=..][&algorithm=..][&digits=..]
//
// Parameters equal to their default are omitted and the issuer is omitted
// when empty. OutputType and ExtraGap have no URI form.
func (c *Config) URI() (string, error) {
	if !c.HasValidSecret() {
		return "", ErrInvalidSecret
	}
	if c.Period == 0 {
		return "", ErrInvalidPeriod
	}

	var b strings.Builder
	b.WriteString(URIPrefix)
	b.WriteString(url.PathEscape(c.Label))
	b.WriteString("?secret=")
	b.WriteString(url.QueryEscape(c.Secret))

	if issuer := c.IssuerOrEmpty(); issuer != "" {
		b.WriteString("&issuer=")
		b.WriteString(url.QueryEscape(issuer))
	}
	if c.Period != DefaultPeriod {
		b.WriteString("&period=")
		b.WriteString(strconv.FormatUint(uint64(c.Period), 10))
	}
	if !c.Algorithm.Equal(DefaultAlgorithm) {
		b.WriteString("&algorithm=")
		b.WriteString(url.QueryEscape(c.Algorithm.Short()))
	}
	if c.Digits != DefaultDigits {
		b.WriteString("&digits=")
		b.WriteString(strconv.FormatUint(uint64(c.Digits), 10))
	}

	return b.String(), nil
}

// TryParseURI replaces the URI-carried fields of c (secret, label, issuer,
// period, algorithm, digits) with those parsed from uri and reports whether
// it succeeded. On failure c is left unmodified. Algorithms are resolved
// against hmacalg.Default.
func (c *Config) TryParseURI(uri string) bool {
	return c.tryParseURI(uri, hmacalg.Default) == nil
}

// ParseURI returns a new Config with the defaults overridden by the values
// in uri. The error wraps ErrMalformedURI, ErrInvalidSecret or
// hmacalg.ErrUnsupportedAlgorithm.
func ParseURI(uri string) (*Config, error) {
	c := NewConfig()
	if err := c.tryParseURI(uri, hmacalg.Default); err != nil {
		return nil, err
	}
	return c, nil
}

// TryParseURI is Config.TryParseURI with algorithms resolved against the
// engine's provider.
func (e *Engine) TryParseURI(cfg *Config, uri string) bool {
	if err := cfg.tryParseURI(uri, e.provider); err != nil {
		e.logger.Debug().Err(err).Msg("totp: uri rejected")
		return false
	}
	return true
}

// uriFields holds parsed values until every parameter has been accepted.
type uriFields struct {
	secret    string
	label     string
	issuer    *string
	period    uint32
	algorithm hmacalg.Name
	digits    uint32
}

func (c *Config) tryParseURI(uri string, p hmacalg.Provider) error {
	if c == nil {
		return ErrInvalidConfig
	}
	f, err := parseURI(uri, p)
	if err != nil {
		return err
	}

	c.Secret = f.secret
	c.Label = f.label
	c.Issuer = f.issuer
	c.Period = f.period
	c.Algorithm = f.algorithm
	c.Digits = f.digits
	return nil
}

func parseURI(uri string, p hmacalg.Provider) (uriFields, error) {
	if uri == "" || !strings.HasPrefix(uri, URIPrefix) {
		return uriFields{}, fmt.Errorf("%w: missing %q prefix", ErrMalformedURI, URIPrefix)
	}

	u, err := url.Parse(uri)
	if err != nil {
		return uriFields{}, fmt.Errorf("%w: %v", ErrMalformedURI, err)
	}
	query, err := parseQuery(u.RawQuery)
	if err != nil {
		return uriFields{}, err
	}

	f := uriFields{
		period:    DefaultPeriod,
		algorithm: DefaultAlgorithm,
		digits:    DefaultDigits,
	}

	f.secret = query.Get("secret")
	key, err := decodeKey(f.secret)
	clear(key)
	if err != nil {
		return uriFields{}, err
	}

	f.label = strings.TrimPrefix(u.Path, "/")

	if v, ok := query["issuer"]; ok && len(v) > 0 {
		issuer := v[0]
		f.issuer = &issuer
	}

	if s := query.Get("period"); s != "" {
		period, err := strconv.ParseUint(s, 10, 32)
		if err != nil || period == 0 {
			return uriFields{}, fmt.Errorf("%w: period %q is not a positive integer", ErrMalformedURI, s)
		}
		f.period = uint32(period)
	}

	if s := query.Get("algorithm"); s != "" {
		name, err := hmacalg.Resolve(p, s)
		if err != nil {
			return uriFields{}, err
		}
		f.algorithm = name
	}

	if s := query.Get("digits"); s != "" {
		digits, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return uriFields{}, fmt.Errorf("%w: digits %q is not a non-negative integer", ErrMalformedURI, s)
		}
		f.digits = uint32(digits)
	}

	return f, nil
}

// parseQuery splits raw on '&' only. A ';' is ordinary data, unlike
// url.ParseQuery which rejects it. Keys without '=' get an empty value.
func parseQuery(raw string) (url.Values, error) {
	query := url.Values{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedURI, err)
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedURI, err)
		}
		query.Add(key, value)
	}
	return query, nil
}

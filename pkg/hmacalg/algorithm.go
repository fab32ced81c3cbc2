package hmacalg

import "strings"

// Prefix is the standardized prefix carried by every canonical name.
const Prefix = "HMAC"

// Name identifies a keyed-hash algorithm by its canonical name.
// Names are immutable values; compare them with Equal.
type Name struct {
	name string
}

// Predefined algorithm names.
var (
	// MD5 is HMAC-MD5.
	MD5 = Name{name: "HMACMD5"}
	// SHA1 is HMAC-SHA1, the otpauth default.
	SHA1 = Name{name: "HMACSHA1"}
	// SHA256 is HMAC-SHA256.
	SHA256 = Name{name: "HMACSHA256"}
	// SHA384 is HMAC-SHA384.
	SHA384 = Name{name: "HMACSHA384"}
	// SHA512 is HMAC-SHA512.
	SHA512 = Name{name: "HMACSHA512"}
	// SM3 is HMAC-SM3 (GB/T 32905-2016).
	SM3 = Name{name: "HMACSM3"}
)

// New wraps an arbitrary name. The name is not checked against any provider,
// which lets callers carry algorithms this package does not know. Equal and
// Key ignore case and the HMAC prefix, so New("sha1") is Equal to SHA1.
// An empty name yields the zero Name, which is equivalent to SHA1.
func New(name string) Name {
	return Name{name: name}
}

// String returns the canonical name, e.g. "HMACSHA256".
func (n Name) String() string {
	if n.name == "" {
		return SHA1.name
	}
	return n.name
}

// Short returns the name used in otpauth URIs, e.g. "SHA256".
func (n Name) Short() string {
	s := n.String()
	if len(s) > len(Prefix) && strings.EqualFold(s[:len(Prefix)], Prefix) {
		return s[len(Prefix):]
	}
	return s
}

// Equal reports whether n and other name the same algorithm.
func (n Name) Equal(other Name) bool {
	return n.Key() == other.Key()
}

// IsDefault reports whether n is the otpauth default (SHA1).
func (n Name) IsDefault() bool {
	return n.Equal(SHA1)
}

// Key returns a value suitable for use as a map key. Names that are Equal
// have the same key.
func (n Name) Key() string {
	return canonical(n.String())
}

// canonical upper-cases s and adds the prefix when it is missing.
func canonical(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || strings.HasPrefix(s, Prefix) {
		return s
	}
	return Prefix + s
}

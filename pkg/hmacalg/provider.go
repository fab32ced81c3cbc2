package hmacalg

import (
	"crypto/hmac"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"sort"
	"sync"

	"github.com/pquerna/otp"
	"github.com/tjfoc/gmsm/sm3"
)

// ErrUnsupportedAlgorithm indicates the provider cannot compute the named algorithm.
var ErrUnsupportedAlgorithm = errors.New("hmacalg: unsupported algorithm")

// Provider computes keyed digests for named algorithms.
type Provider interface {
	// New returns an HMAC keyed with key for the named algorithm.
	New(name Name, key []byte) (hash.Hash, error)
	// Supports reports whether the named algorithm is computable.
	Supports(name Name) bool
}

// Registry is a Provider backed by a table of digest constructors.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	digests map[string]func() hash.Hash
	names   map[string]Name
}

// Default is the registry used when no provider is configured.
var Default = NewRegistry()

// NewRegistry returns a registry pre-populated with MD5, SHA1, SHA256, SHA384,
// SHA512 and SM3.
func NewRegistry() *Registry {
	r := &Registry{
		digests: make(map[string]func() hash.Hash),
		names:   make(map[string]Name),
	}
	r.Register(MD5, otp.AlgorithmMD5.Hash)
	r.Register(SHA1, otp.AlgorithmSHA1.Hash)
	r.Register(SHA256, otp.AlgorithmSHA256.Hash)
	r.Register(SHA384, sha512.New384)
	r.Register(SHA512, otp.AlgorithmSHA512.Hash)
	r.Register(SM3, sm3.New)
	return r
}

// Register adds or replaces the digest constructor for name.
func (r *Registry) Register(name Name, digest func() hash.Hash) {
	key := canonical(name.String())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.digests[key] = digest
	r.names[key] = name
}

// New returns an HMAC keyed with key for the named algorithm.
func (r *Registry) New(name Name, key []byte) (hash.Hash, error) {
	r.mu.RLock()
	digest, ok := r.digests[canonical(name.String())]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name.String())
	}
	return hmac.New(digest, key), nil
}

// Supports reports whether name has been registered.
func (r *Registry) Supports(name Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.digests[canonical(name.String())]
	return ok
}

// Lookup resolves a short ("sha256") or canonical ("HMACSHA256") name,
// ignoring case, to the registered Name.
func (r *Registry) Lookup(s string) (Name, error) {
	key := canonical(s)

	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.names[key]
	if !ok {
		return Name{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
	}
	return name, nil
}

// DigestSize returns the digest length in bytes of the named algorithm.
func (r *Registry) DigestSize(name Name) (int, error) {
	r.mu.RLock()
	digest, ok := r.digests[canonical(name.String())]
	r.mu.RUnlock()

	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name.String())
	}
	return digest().Size(), nil
}

// Names returns the registered names sorted by canonical name.
func (r *Registry) Names() []Name {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]Name, 0, len(r.names))
	for _, n := range r.names {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i].String() < names[j].String()
	})
	return names
}

// Parse resolves s against the Default registry.
func Parse(s string) (Name, error) {
	return Default.Lookup(s)
}

// Resolve maps a short or canonical name, ignoring case, to a Name that p
// can compute.
func Resolve(p Provider, s string) (Name, error) {
	if r, ok := p.(*Registry); ok {
		return r.Lookup(s)
	}
	key := canonical(s)
	if key == "" {
		return Name{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
	}
	name := New(key)
	if !p.Supports(name) {
		return Name{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
	}
	return name, nil
}

var _ Provider = (*Registry)(nil)

package totp

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
)

// pooledSecretSize covers secrets up to 512 bits without allocating.
const pooledSecretSize = 64

var secretBuffers = sync.Pool{
	New: func() any {
		b := make([]byte, pooledSecretSize)
		return &b
	},
}

// GenerateSecret returns a base32-encoded random secret of at least
// minimumBits bits, drawn from crypto/rand. A request for zero bits still
// yields a one byte secret.
func GenerateSecret(minimumBits uint32) (string, error) {
	return GenerateSecretFrom(rand.Reader, minimumBits)
}

// GenerateSecretFrom is GenerateSecret with an explicit random source.
func GenerateSecretFrom(r io.Reader, minimumBits uint32) (string, error) {
	n := int((uint64(minimumBits) + 7) / 8)
	if n == 0 {
		n = 1
	}

	var buf []byte
	if n <= pooledSecretSize {
		p := secretBuffers.Get().(*[]byte)
		defer func() {
			clear(*p)
			secretBuffers.Put(p)
		}()
		buf = (*p)[:n]
	} else {
		buf = make([]byte, n)
		defer clear(buf)
	}

	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("totp: failed to generate random secret: %w", err)
	}
	return EncodeSecret(buf), nil
}

package auth

import "errors"

// MinKeyLength is the smallest HS256 key accepted, in bytes.
const MinKeyLength = 32

var (
	ErrEmptySecret = errors.New("auth: signing secret is empty")
	ErrWeakSecret  = errors.New("auth: signing secret shorter than 32 bytes")
)

// SigningKey is the shared HMAC secret. It is built once at startup and
// handed to every Issuer and Verifier; the zero value is not usable.
type SigningKey struct {
	material []byte
}

// NewSigningKey derives the key from the configured passphrase.
func NewSigningKey(passphrase string) (SigningKey, error) {
	if passphrase == "" {
		return SigningKey{}, ErrEmptySecret
	}
	if len(passphrase) < MinKeyLength {
		return SigningKey{}, ErrWeakSecret
	}
	return SigningKey{material: []byte(passphrase)}, nil
}

// MustSigningKey is NewSigningKey that panics, for tests and fixed secrets.
func MustSigningKey(passphrase string) SigningKey {
	key, err := NewSigningKey(passphrase)
	if err != nil {
		panic(err)
	}
	return key
}

// bytes returns a copy so callers cannot mutate the shared material.
func (k SigningKey) bytes() []byte {
	out := make([]byte, len(k.material))
	copy(out, k.material)
	return out
}

func (k SigningKey) valid() bool {
	return len(k.material) >= MinKeyLength
}

package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// signatureEncoding rejects non-zero trailing bits so that every change to the
// signature segment is observable.
var signatureEncoding = base64.RawURLEncoding.Strict()

// Verifier checks tokens against the shared key without any I/O.
// It is safe for concurrent use.
type Verifier struct {
	key    SigningKey
	policy IdentityPolicy
	now    func() time.Time
}

// VerifierOption customises a Verifier.
type VerifierOption func(*Verifier)

// WithVerifierClock overrides the clock used for the expiry check.
func WithVerifierClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) {
		if now != nil {
			v.now = now
		}
	}
}

// NewVerifier builds a verifier bound to key and an identity policy.
func NewVerifier(key SigningKey, policy IdentityPolicy, opts ...VerifierOption) (*Verifier, error) {
	if !key.valid() {
		return nil, ErrWeakSecret
	}
	if _, err := ParsePolicy(string(policy), ""); err != nil || policy == "" {
		return nil, fmt.Errorf("auth: invalid identity policy %q", string(policy))
	}
	v := &Verifier{key: key, policy: policy, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Policy returns the identity policy the verifier applies.
func (v *Verifier) Policy() IdentityPolicy {
	return v.policy
}

// Verify validates the token and resolves the caller under the verifier's policy.
func (v *Verifier) Verify(token string) (Identity, error) {
	claims, err := v.Parse(token)
	if err != nil {
		return Identity{}, err
	}
	return v.policy.Resolve(ExtractIdentity(claims))
}

// Parse validates signature and expiry and returns the raw claims.
// Errors wrap one of ErrMalformed, ErrInvalidSignature or ErrExpired.
func (v *Verifier) Parse(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformed, len(parts))
	}
	for _, seg := range parts[:2] {
		if _, err := base64.RawURLEncoding.DecodeString(seg); err != nil || seg == "" {
			return nil, fmt.Errorf("%w: undecodable segment", ErrMalformed)
		}
	}
	if _, err := signatureEncoding.DecodeString(parts[2]); err != nil {
		return nil, fmt.Errorf("%w: undecodable signature", ErrInvalidSignature)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithJSONNumber(),
		jwt.WithTimeFunc(v.now),
	)

	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(token, claims, v.keyFunc)
	if err != nil {
		return nil, classify(err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("%w: token not valid", ErrMalformed)
	}
	return claims, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method != jwt.SigningMethodHS256 {
		return nil, errors.New("unexpected signing method")
	}
	return v.key.bytes(), nil
}

// classify maps jwt parser errors onto the auth failure kinds. The parser
// verifies the signature before claims, so a forged expired token reports
// an invalid signature.
func classify(err error) error {
	var kind error
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		kind = ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		kind = ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		kind = ErrExpired
	default:
		kind = ErrMalformed
	}
	return fmt.Errorf("%w: %v", kind, err)
}

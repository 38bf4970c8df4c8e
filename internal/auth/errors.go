package auth

import "errors"

// Verification failure kinds. The gate answers all of them with the same 401;
// they stay distinct for logs, metrics and tests.
var (
	ErrMissingCredential    = errors.New("missing bearer credential")
	ErrMalformed            = errors.New("malformed token")
	ErrInvalidSignature     = errors.New("invalid token signature")
	ErrExpired              = errors.New("token expired")
	ErrIdentityUnresolvable = errors.New("token carries no usable identity")
)

// Kind returns a stable tag for err, or "unknown" when it is not an auth failure.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrIdentityUnresolvable):
		return "identity_unresolvable"
	default:
		return "unknown"
	}
}

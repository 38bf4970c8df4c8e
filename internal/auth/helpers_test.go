package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

var testKey = MustSigningKey(testSecret)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func int64Ptr(v int64) *int64 {
	return &v
}

func newTestIssuer(t *testing.T, now time.Time) *Issuer {
	t.Helper()
	issuer, err := NewIssuer(testKey, time.Hour, WithIssuerClock(fixedClock(now)))
	require.NoError(t, err)
	return issuer
}

func newTestVerifier(t *testing.T, policy IdentityPolicy, now time.Time) *Verifier {
	t.Helper()
	verifier, err := NewVerifier(testKey, policy, WithVerifierClock(fixedClock(now)))
	require.NoError(t, err)
	return verifier
}

// signRaw signs arbitrary claims, bypassing the Issuer.
func signRaw(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

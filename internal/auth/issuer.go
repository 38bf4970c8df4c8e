package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an access token.
const DefaultTokenTTL = time.Hour

var ErrEmptySubject = errors.New("auth: token subject is empty")

// Claims describes the JWT payload exchanged between services.
// UserID is optional and may arrive as a JSON number or string.
type Claims struct {
	UserID any `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

// Token is an issued, signed credential together with the values encoded in it.
type Token struct {
	Value     string
	Subject   string
	UserID    *int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer signs access tokens with the shared key.
type Issuer struct {
	key SigningKey
	ttl time.Duration
	now func() time.Time
}

// IssuerOption customises an Issuer.
type IssuerOption func(*Issuer)

// WithIssuerClock overrides the clock used for iat/exp.
func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer builds an issuer. A non-positive ttl falls back to DefaultTokenTTL.
func NewIssuer(key SigningKey, ttl time.Duration, opts ...IssuerOption) (*Issuer, error) {
	if !key.valid() {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	i := &Issuer{key: key, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue builds and signs a token for subject, embedding userID when given.
func (i *Issuer) Issue(subject string, userID *int64) (Token, error) {
	if strings.TrimSpace(subject) == "" {
		return Token{}, ErrEmptySubject
	}

	// Timestamps are encoded with second precision; keep the returned
	// values identical to what ends up in the token.
	issuedAt := i.now().Truncate(jwt.TimePrecision)
	expiresAt := issuedAt.Add(i.ttl)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	var embedded *int64
	if userID != nil {
		id := *userID
		claims.UserID = id
		embedded = &id
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key.bytes())
	if err != nil {
		return Token{}, err
	}
	return Token{
		Value:     signed,
		Subject:   subject,
		UserID:    embedded,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

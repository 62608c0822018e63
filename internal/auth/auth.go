// Package auth mints and verifies session tokens and carries the
// authenticated principal through a request context.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSession      = errors.New("not logged in")
	ErrInvalidSession = errors.New("invalid session")
)

// Principal is the logged-in user a request acts for.
type Principal struct {
	UserID    uint
	// ExpiresAt is the exp claim of the token the principal came from.
	ExpiresAt time.Time
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by WithPrincipal.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok && p.UserID != 0
}

type sessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Issuer signs HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer whose tokens live for ttl.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock replaces time.Now for issuing and verifying.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Issue returns a signed token for userID.
func (i *Issuer) Issue(userID uint) (string, error) {
	if userID == 0 {
		return "", fmt.Errorf("user id must be positive")
	}
	now := i.now()
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks signature and expiry and returns the principal.
func (i *Issuer) Verify(token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrNoSession
	}
	var claims sessionClaims
	keyFunc := func(*jwt.Token) (any, error) { return i.secret, nil }
	_, err := jwt.ParseWithClaims(token, &claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.UserID == 0 {
		return Principal{}, fmt.Errorf("%w: missing user_id", ErrInvalidSession)
	}
	p := Principal{UserID: claims.UserID}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

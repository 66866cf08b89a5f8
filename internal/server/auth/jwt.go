// Package auth issues and validates stateless session tokens.
//
// Tokens are HS256 JWTs. Validation is a pure function of the token, the
// shared secret and the current time: no store is consulted, so a token stays
// valid until it expires even if the account disappears or the player logs
// out. Rotating the secret is the only way to invalidate outstanding tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: registered claims plus the account identity
// and display handle bound at issuance.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
}

// Issuer mints and validates session tokens with a shared secret.
type Issuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// Option customises an Issuer.
type Option func(*Issuer)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer returns an Issuer. A non-positive validity falls back to
// common.TokenValidity.
func NewIssuer(secret []byte, validity time.Duration, opts ...Option) *Issuer {
	if validity <= 0 {
		validity = common.TokenValidity
	}
	i := &Issuer{secret: secret, validity: validity, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue returns a signed token for the account valid for the issuer's
// validity window starting now. Claims carry whole seconds, so the expiry is
// rounded up and the token lives at least the full window.
func (i *Issuer) Issue(accountID, username string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(now.Add(i.validity))),
		},
		AccountID: accountID,
		Username:  username,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

func ceilSecond(t time.Time) time.Time {
	if tr := t.Truncate(time.Second); !tr.Equal(t) {
		return tr.Add(time.Second)
	}
	return t
}

// Validate checks signature and expiry and returns the embedded claims.
// It fails with common.ErrTokenExpired once the expiry instant has passed and
// with common.ErrInvalidSignature for anything that was not signed by this
// secret with HS256, including malformed input.
func (i *Issuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidSignature, err)
	}

	if !token.Valid || claims.AccountID == "" {
		return nil, common.ErrInvalidSignature
	}

	return claims, nil
}

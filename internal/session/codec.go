// Package session issues and verifies the signed token that represents
// "the household is authenticated". Validity is purely a function of the
// token's signature and expiry claim; there is no server-side session store,
// so a token cannot be revoked before its natural expiry.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any token that cannot be
// accepted: missing, malformed, badly signed, or expired. Callers get one
// uniform failure and no signature-verification internals.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the verified content of a session token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenCodec abstracts signed-token handling so the session contract is
// independent of the concrete token format.
type TokenCodec interface {
	Sign(subject string, ttl time.Duration) (string, error)
	Verify(token string) (*Claims, error)
}

// jwtCodec signs and verifies HS256 JWTs.
type jwtCodec struct {
	secret []byte
	now    func() time.Time
}

// NewJWTCodec creates a TokenCodec backed by HS256 JWTs signed with secret.
func NewJWTCodec(secret string) TokenCodec {
	return &jwtCodec{secret: []byte(secret), now: time.Now}
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

func (c *jwtCodec) Sign(subject string, ttl time.Duration) (string, error) {
	now := c.now()
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "hearth-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *jwtCodec) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))

	if err != nil || !token.Valid || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

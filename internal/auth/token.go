// Package auth issues and verifies the bearer tokens that carry a user's
// phone number between requests.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload. The phone number is the sole application
// claim; everything else is standard JWT bookkeeping.
type Claims struct {
	PhoneNumber string `json:"phone_number"`
	jwt.RegisteredClaims
}

// ErrInvalidToken is returned for any token that fails verification,
// regardless of the underlying reason.
var ErrInvalidToken = errors.New("invalid token")

// Issue signs a token carrying the phone number, valid for ttl.
func Issue(phoneNumber, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		PhoneNumber: phoneNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Verify parses the token, checks its signature and expiry, and returns the
// claims.
func Verify(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.PhoneNumber == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

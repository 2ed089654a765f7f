package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("signing secret is empty")
)

func NewJWT(method jwt.SigningMethod, secret []byte, claims jwt.MapClaims, expiry time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}

	if expiry > 0 {
		claims["exp"] = time.Now().Add(expiry).Unix()
	}
	claims["iat"] = time.Now().Unix()

	return jwt.NewWithClaims(method, claims).SignedString(secret)
}

// DecodeJWT verifies an HMAC-signed token and returns its claims.
// An empty secret verifies nothing.
func DecodeJWT(token string, secret []byte) (jwt.MapClaims, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, ErrEmptySecret.Error())
	}

	parsedToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func StringClaim(claims jwt.MapClaims, key string) *string {
	value, ok := claims[key].(string)
	if !ok {
		return nil
	}
	return &value
}

// StringsClaim reads a claim that may hold either a list of strings or a single string.
func StringsClaim(claims jwt.MapClaims, key string) []string {
	switch value := claims[key].(type) {
	case string:
		return []string{value}
	case []interface{}:
		out := make([]string, 0, len(value))
		for _, v := range value {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

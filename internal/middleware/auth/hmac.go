package auth

import (
	"context"
	"fmt"
	"time"

	"novelhub/internal/shared"

	"github.com/golang-jwt/jwt/v5"
)

type hmacClaims struct {
	sessionClaims
	jwt.RegisteredClaims
}

// HMACVerifier verifies HS256 session tokens signed with a shared secret.
type HMACVerifier struct {
	secret []byte
	issuer string
}

// NewHMACVerifier creates a verifier. An empty issuer disables the issuer check.
func NewHMACVerifier(secret, issuer string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *HMACVerifier) Verify(_ context.Context, raw string) (*shared.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &hmacClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.principal(claims.Subject), nil
}

// Sign issues a session token for p. Used by the dev token command and tests.
func (v *HMACVerifier) Sign(p shared.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := hmacClaims{
		sessionClaims: sessionClaims{
			Email:     p.Email,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			ImageURL:  p.ImageURL,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Subject,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Package auth verifies session tokens issued by the identity provider and turns
// them into a shared.Principal.
package auth

import (
	"context"
	"errors"

	"novelhub/internal/shared"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid session token")

// TokenVerifier checks a raw bearer token and returns the caller it identifies.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*shared.Principal, error)
}

// sessionClaims are the profile claims carried by a session token.
type sessionClaims struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`

	// standard OIDC names, used when the provider's own names are absent
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

func (c sessionClaims) principal(subject string) *shared.Principal {
	p := &shared.Principal{
		Subject:   subject,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		ImageURL:  c.ImageURL,
	}
	if p.FirstName == "" {
		p.FirstName = c.GivenName
	}
	if p.LastName == "" {
		p.LastName = c.FamilyName
	}
	if p.ImageURL == "" {
		p.ImageURL = c.Picture
	}
	return p
}

// Chain tries each verifier in order and returns the first principal accepted.
type Chain []TokenVerifier

func (c Chain) Verify(ctx context.Context, raw string) (*shared.Principal, error) {
	for _, v := range c {
		if p, err := v.Verify(ctx, raw); err == nil {
			return p, nil
		}
	}
	return nil, ErrInvalidToken
}

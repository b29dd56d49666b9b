package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity claims carried by every access token. The token is
// treated as a capability: holders of a valid token are trusted for the id,
// email and role inside it without a round trip to the credential store.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated identity.
	Email string `json:"email,omitempty"`

	// Role of the authenticated identity ("user", "editor", "admin").
	Role string `json:"role,omitempty"`
}

// NewIdentityClaims builds minimally-correct claims for an identity.
//
// Tokens deliberately carry no expiry: decode success only proves the claims
// were issued by this process at some past time. Revocation and expiry are
// known gaps of the current token contract.
func NewIdentityClaims(subject, email, role, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
			ID:       NewJTI(),
		},
		Email: email,
		Role:  role,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

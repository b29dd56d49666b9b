package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretSize is the smallest shared secret we accept for HS256. Anything
// shorter than the hash output weakens the HMAC.
const MinSecretSize = 32

// HS256Signer implements the Signer interface using HMAC-SHA256 with a
// process-wide shared secret configured at startup.
type HS256Signer struct {
	secret []byte
	alg    string
}

func newHS256Signer(secret []byte) (*HS256Signer, error) {
	s := &HS256Signer{
		secret: secret,
		alg:    jwt.SigningMethodHS256.Alg(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *HS256Signer) Alg() string { return s.alg }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate does a quick sanity check on the configured secret.
func (s *HS256Signer) Validate() error {
	if len(s.secret) < MinSecretSize {
		return errors.New("jwtx: HS256 secret shorter than 32 bytes")
	}
	return nil
}

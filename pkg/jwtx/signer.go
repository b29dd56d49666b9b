package jwtx

// Signer is our interface for anything that can sign identity tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// NewSignerHS256 creates an HS256 signer over a process-wide shared secret.
func NewSignerHS256(secret []byte) (Signer, error) {
	return newHS256Signer(secret)
}

package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrack/uptrack/pkg/jwtx"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestHS256RoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	claims := jwtx.NewIdentityClaims("01J9ZTESTUSER", "alice@example.com", "user", "uptrack", now)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := jwtx.NewCommonHS256(testSecret, "uptrack")
	got, err := verifier.Verify(token)
	require.NoError(t, err)

	require.Equal(t, "01J9ZTESTUSER", got.Subject)
	require.Equal(t, "alice@example.com", got.Email)
	require.Equal(t, "user", got.Role)
	require.Equal(t, now.Unix(), got.IssuedAt.Unix())
}

func TestHS256RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	claims := jwtx.NewIdentityClaims("u1", "a@b.com", "user", "uptrack", time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	other := jwtx.NewCommonHS256([]byte("ffffffffffffffffffffffffffffffff"), "uptrack")
	_, err = other.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestHS256RejectsTamperedToken(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	claims := jwtx.NewIdentityClaims("u1", "a@b.com", "user", "uptrack", time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := jwtx.NewCommonHS256(testSecret, "uptrack")

	t.Run("garbage input", func(t *testing.T) {
		_, err := verifier.Verify("not.a.token")
		require.Error(t, err)
	})

	t.Run("flipped payload byte", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		parts[1] = "A" + parts[1][1:]
		_, err := verifier.Verify(strings.Join(parts, "."))
		require.Error(t, err)
	})
}

func TestHS256IssuerMismatch(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	claims := jwtx.NewIdentityClaims("u1", "a@b.com", "admin", "someone-else", time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := jwtx.NewCommonHS256(testSecret, "uptrack")
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestHS256RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewSignerHS256([]byte("too-short"))
	require.Error(t, err)
}

package cryptox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrack/uptrack/pkg/cryptox"
)

func TestMain(m *testing.M) {
	// Each test run gets a throwaway pepper so hashes never leak between runs.
	dir, err := os.MkdirTemp("", "cryptox-pepper")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashAndVerify(t *testing.T) {
	hash, err := cryptox.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, cryptox.VerifyPassword("correct horse battery staple", hash))
	require.ErrorIs(t, cryptox.VerifyPassword("wrong password", hash), cryptox.ErrMismatch)
}

func TestHashesAreSalted(t *testing.T) {
	a, err := cryptox.HashPassword("same-password")
	require.NoError(t, err)
	b, err := cryptox.HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	require.Error(t, cryptox.VerifyPassword("pw", "not-a-hash"))
	require.Error(t, cryptox.VerifyPassword("pw", "$bcrypt$v=19$m=1,t=1,p=1$aaaa$bbbb"))
}

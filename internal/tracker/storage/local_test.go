package storage_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrack/uptrack/internal/tracker/storage"
)

func TestLocal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("save and release round trip", func(t *testing.T) {
		l, err := storage.NewLocal(t.TempDir())
		require.NoError(t, err)

		location, written, err := l.Save(ctx, "sales.csv", strings.NewReader("a,b,c\n1,2,3\n"))
		require.NoError(t, err)
		require.Equal(t, int64(12), written)

		data, err := os.ReadFile(location)
		require.NoError(t, err)
		require.Equal(t, "a,b,c\n1,2,3\n", string(data))

		require.NoError(t, l.Release(ctx, location))
		_, err = os.Stat(location)
		require.ErrorIs(t, err, os.ErrNotExist)

		// releasing again is fine
		require.NoError(t, l.Release(ctx, location))
	})

	t.Run("client path components are stripped", func(t *testing.T) {
		dir := t.TempDir()
		l, err := storage.NewLocal(dir)
		require.NoError(t, err)

		location, _, err := l.Save(ctx, "../../etc/passwd", strings.NewReader("x"))
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(location, dir))
		require.True(t, strings.HasSuffix(location, "_passwd"))
	})

	t.Run("release refuses locations outside the root", func(t *testing.T) {
		l, err := storage.NewLocal(t.TempDir())
		require.NoError(t, err)

		victim := t.TempDir() + "/keep.txt"
		require.NoError(t, os.WriteFile(victim, []byte("keep"), 0o640))

		require.ErrorIs(t, l.Release(ctx, victim), storage.ErrOutsideRoot)
		_, err = os.Stat(victim)
		require.NoError(t, err)
	})
}

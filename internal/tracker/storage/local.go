package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/uptrack/uptrack/pkg/idx"
)

// ErrOutsideRoot is returned when a location does not resolve inside the
// storage root. It guards against path traversal through stored locations.
var ErrOutsideRoot = errors.New("storage: location outside root")

// Local stores files on the local filesystem under a single root directory.
// Saved files are prefixed with a ULID so colliding client file names never
// overwrite each other.
type Local struct {
	root string
}

func NewLocal(root string) (*Local, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, err
	}
	return &Local{root: abs}, nil
}

func (l *Local) Save(ctx context.Context, fileName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	name := idx.New().String() + "_" + sanitizeFileName(fileName)
	path := filepath.Join(l.root, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", 0, err
	}

	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, err
	}
	return path, written, nil
}

func (l *Local) Release(ctx context.Context, location string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	abs, err := filepath.Abs(location)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(abs, l.root+string(os.PathSeparator)) {
		return fmt.Errorf("%w: %s", ErrOutsideRoot, location)
	}

	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// sanitizeFileName strips any path components and characters that have no
// business in a stored file name.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}

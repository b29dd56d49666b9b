package store

import (
	"context"
	"errors"
	"time"

	"github.com/uptrack/uptrack/internal/tracker/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrUnavailable wraps transient infrastructure faults (timeouts, busy
	// database). Callers may retry with backoff; the service layer already
	// retries once before surfacing it.
	ErrUnavailable = errors.New("store: unavailable")
)

// UserPatch is a partial update for an identity. Nil fields are untouched.
type UserPatch struct {
	Name   *string
	Role   *domain.Role
	Status *domain.Status
}

// UploadTotals is the system-wide rollup over all upload records.
type UploadTotals struct {
	Count   int64
	Records int64
	SizeMB  float64
}

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Uploads() Uploads

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle multi-step writes (e.g. delete an upload
	// record and decrement its owner's counter together).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new identity (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is already registered.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns an identity by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login. Email must already be normalized
	// to lower case by the caller.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns all identities in creation order.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdateUser applies a partial profile update and bumps updated_at.
	UpdateUser(ctx context.Context, id string, patch UserPatch) error

	// UpdateLastLogin stamps the last successful login time.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// AdjustUploadCount atomically adds delta to the upload counter. The
	// counter never goes negative: an underflow is clamped to zero and
	// reported via clamped so the caller can log the inconsistency.
	AdjustUploadCount(ctx context.Context, id string, delta int64) (clamped bool, err error)

	// DeleteUser removes an identity. Owned upload records are not cascaded.
	DeleteUser(ctx context.Context, id string) error

	// CountUsersByStatus partitions all identities by status.
	CountUsersByStatus(ctx context.Context) (map[domain.Status]int64, error)
}

type Uploads interface {
	// CreateUpload inserts a new upload record. Owner existence is the
	// service's concern; owner_id is a plain back-reference.
	CreateUpload(ctx context.Context, u domain.Upload) error

	// GetUploadByID returns an upload record by id.
	GetUploadByID(ctx context.Context, id string) (domain.Upload, error)

	// ListUploadsByOwner returns one owner's records, newest uploaded first.
	ListUploadsByOwner(ctx context.Context, ownerID string) ([]domain.Upload, error)

	// ListUploads returns every record, newest uploaded first. Admin scope
	// is enforced by the caller.
	ListUploads(ctx context.Context) ([]domain.Upload, error)

	// UpdateUploadStatus sets the status field. Transition legality is the
	// service's concern.
	UpdateUploadStatus(ctx context.Context, id string, status domain.UploadStatus) error

	// DeleteUpload removes a record by id.
	DeleteUpload(ctx context.Context, id string) error

	// StatsForOwner computes the per-owner rollup in SQL.
	StatsForOwner(ctx context.Context, ownerID string) (domain.UserStats, error)

	// Totals computes the system-wide rollup in SQL.
	Totals(ctx context.Context) (UploadTotals, error)
}

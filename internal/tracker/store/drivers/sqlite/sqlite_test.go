package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrack/uptrack/internal/tracker/domain"
	"github.com/uptrack/uptrack/internal/tracker/store"
	"github.com/uptrack/uptrack/internal/tracker/store/drivers/sqlite"
	"github.com/uptrack/uptrack/pkg/idx"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestUser(t *testing.T, s *sqlite.Store, email string) domain.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	u := domain.User{
		ID:           idx.New().String(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "argon2:dummy",
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
		JoinedAt:     now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func newTestUpload(t *testing.T, s *sqlite.Store, ownerID string, at time.Time) domain.Upload {
	t.Helper()

	u := domain.Upload{
		ID:              idx.NewAt(at).String(),
		OwnerID:         ownerID,
		FileName:        "sales.csv",
		FileSizeMB:      1.25,
		RecordCount:     100,
		StorageLocation: "/tmp/uploads/" + idx.New().String(),
		Status:          domain.UploadCompleted,
		UploadedAt:      at,
	}
	require.NoError(t, s.Uploads().CreateUpload(context.Background(), u))
	return u
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		s := newTestStore(t)
		created := newTestUser(t, s, "round@example.com")

		got, err := s.Users().GetUserByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, created.Email, got.Email)
		require.Equal(t, domain.RoleUser, got.Role)
		require.Equal(t, domain.StatusActive, got.Status)
		require.Nil(t, got.LastLoginAt)
		require.Zero(t, got.UploadCount)

		byEmail, err := s.Users().GetUserByEmail(ctx, "round@example.com")
		require.NoError(t, err)
		require.Equal(t, created.ID, byEmail.ID)
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.Users().GetUserByID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Users().GetUserByEmail(ctx, "nope@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email maps to ErrAlreadyExists", func(t *testing.T) {
		s := newTestStore(t)
		u := newTestUser(t, s, "dupe@example.com")

		u.ID = idx.New().String()
		err := s.Users().CreateUser(ctx, u)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("partial update touches only set fields", func(t *testing.T) {
		s := newTestStore(t)
		u := newTestUser(t, s, "patch@example.com")

		name := "Renamed"
		require.NoError(t, s.Users().UpdateUser(ctx, u.ID, store.UserPatch{Name: &name}))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "Renamed", got.Name)
		require.Equal(t, domain.RoleUser, got.Role)
		require.Equal(t, domain.StatusActive, got.Status)

		role := domain.RoleAdmin
		status := domain.StatusSuspended
		require.NoError(t, s.Users().UpdateUser(ctx, u.ID, store.UserPatch{Role: &role, Status: &status}))

		got, err = s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "Renamed", got.Name)
		require.Equal(t, domain.RoleAdmin, got.Role)
		require.Equal(t, domain.StatusSuspended, got.Status)
	})

	t.Run("update of missing user maps to ErrNotFound", func(t *testing.T) {
		s := newTestStore(t)

		name := "ghost"
		err := s.Users().UpdateUser(ctx, "nope", store.UserPatch{Name: &name})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("last login stamp", func(t *testing.T) {
		s := newTestStore(t)
		u := newTestUser(t, s, "login@example.com")

		at := time.Now().UTC().Truncate(time.Second)
		require.NoError(t, s.Users().UpdateLastLogin(ctx, u.ID, at))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastLoginAt)
		require.True(t, got.LastLoginAt.Equal(at))
	})

	t.Run("delete", func(t *testing.T) {
		s := newTestStore(t)
		u := newTestUser(t, s, "gone@example.com")

		require.NoError(t, s.Users().DeleteUser(ctx, u.ID))
		_, err := s.Users().GetUserByID(ctx, u.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, s.Users().DeleteUser(ctx, u.ID), store.ErrNotFound)
	})

	t.Run("counts by status", func(t *testing.T) {
		s := newTestStore(t)
		newTestUser(t, s, "a@example.com")
		newTestUser(t, s, "b@example.com")
		u := newTestUser(t, s, "c@example.com")

		status := domain.StatusPending
		require.NoError(t, s.Users().UpdateUser(ctx, u.ID, store.UserPatch{Status: &status}))

		counts, err := s.Users().CountUsersByStatus(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(2), counts[domain.StatusActive])
		require.Equal(t, int64(1), counts[domain.StatusPending])
	})
}

func TestAdjustUploadCount(t *testing.T) {
	ctx := context.Background()

	t.Run("increments and decrements", func(t *testing.T) {
		s := newTestStore(t)
		u := newTestUser(t, s, "count@example.com")

		clamped, err := s.Users().AdjustUploadCount(ctx, u.ID, 1)
		require.NoError(t, err)
		require.False(t, clamped)

		clamped, err = s.Users().AdjustUploadCount(ctx, u.ID, 1)
		require.NoError(t, err)
		require.False(t, clamped)

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, int64(2), got.UploadCount)

		clamped, err = s.Users().AdjustUploadCount(ctx, u.ID, -1)
		require.NoError(t, err)
		require.False(t, clamped)

		got, err = s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, int64(1), got.UploadCount)
	})

	t.Run("underflow clamps to zero and reports it", func(t *testing.T) {
		s := newTestStore(t)
		u := newTestUser(t, s, "clamp@example.com")

		clamped, err := s.Users().AdjustUploadCount(ctx, u.ID, -1)
		require.NoError(t, err)
		require.True(t, clamped)

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Zero(t, got.UploadCount)
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.Users().AdjustUploadCount(ctx, "nope", 1)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUploadsRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		s := newTestStore(t)
		owner := newTestUser(t, s, "owner@example.com")
		created := newTestUpload(t, s, owner.ID, time.Now().UTC().Truncate(time.Second))

		got, err := s.Uploads().GetUploadByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, owner.ID, got.OwnerID)
		require.Equal(t, "sales.csv", got.FileName)
		require.Equal(t, 1.25, got.FileSizeMB)
		require.Equal(t, domain.UploadCompleted, got.Status)
	})

	t.Run("owner history is newest first", func(t *testing.T) {
		s := newTestStore(t)
		owner := newTestUser(t, s, "history@example.com")
		other := newTestUser(t, s, "other@example.com")

		base := time.Now().UTC().Truncate(time.Second)
		oldest := newTestUpload(t, s, owner.ID, base.Add(-2*time.Hour))
		middle := newTestUpload(t, s, owner.ID, base.Add(-time.Hour))
		newest := newTestUpload(t, s, owner.ID, base)
		newTestUpload(t, s, other.ID, base)

		list, err := s.Uploads().ListUploadsByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.Equal(t, newest.ID, list[0].ID)
		require.Equal(t, middle.ID, list[1].ID)
		require.Equal(t, oldest.ID, list[2].ID)

		all, err := s.Uploads().ListUploads(ctx)
		require.NoError(t, err)
		require.Len(t, all, 4)
	})

	t.Run("status update", func(t *testing.T) {
		s := newTestStore(t)
		owner := newTestUser(t, s, "status@example.com")
		up := newTestUpload(t, s, owner.ID, time.Now().UTC())

		require.NoError(t, s.Uploads().UpdateUploadStatus(ctx, up.ID, domain.UploadFailed))

		got, err := s.Uploads().GetUploadByID(ctx, up.ID)
		require.NoError(t, err)
		require.Equal(t, domain.UploadFailed, got.Status)

		require.ErrorIs(t,
			s.Uploads().UpdateUploadStatus(ctx, "nope", domain.UploadFailed),
			store.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		s := newTestStore(t)
		owner := newTestUser(t, s, "del@example.com")
		up := newTestUpload(t, s, owner.ID, time.Now().UTC())

		require.NoError(t, s.Uploads().DeleteUpload(ctx, up.ID))
		_, err := s.Uploads().GetUploadByID(ctx, up.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, s.Uploads().DeleteUpload(ctx, up.ID), store.ErrNotFound)
	})

	t.Run("owner stats", func(t *testing.T) {
		s := newTestStore(t)
		owner := newTestUser(t, s, "stats@example.com")

		empty, err := s.Uploads().StatsForOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Zero(t, empty.TotalUploads)
		require.Nil(t, empty.LastUploadAt)

		base := time.Now().UTC().Truncate(time.Second)
		newTestUpload(t, s, owner.ID, base.Add(-time.Hour))
		newest := newTestUpload(t, s, owner.ID, base)

		stats, err := s.Uploads().StatsForOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Equal(t, int64(2), stats.TotalUploads)
		require.Equal(t, int64(200), stats.TotalRecords)
		require.InDelta(t, 2.5, stats.TotalSizeMB, 0.001)
		require.NotNil(t, stats.LastUploadAt)
		require.True(t, stats.LastUploadAt.Equal(newest.UploadedAt))
	})

	t.Run("system totals", func(t *testing.T) {
		s := newTestStore(t)
		a := newTestUser(t, s, "ta@example.com")
		b := newTestUser(t, s, "tb@example.com")

		now := time.Now().UTC().Truncate(time.Second)
		newTestUpload(t, s, a.ID, now)
		newTestUpload(t, s, a.ID, now.Add(-time.Minute))
		newTestUpload(t, s, b.ID, now.Add(-2*time.Minute))

		totals, err := s.Uploads().Totals(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(3), totals.Count)
		require.Equal(t, int64(300), totals.Records)
		require.InDelta(t, 3.75, totals.SizeMB, 0.001)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("rollback on error leaves no trace", func(t *testing.T) {
		s := newTestStore(t)
		owner := newTestUser(t, s, "tx@example.com")
		up := newTestUpload(t, s, owner.ID, time.Now().UTC())

		_, err := s.Users().AdjustUploadCount(ctx, owner.ID, 1)
		require.NoError(t, err)

		boom := errors.New("boom")
		err = s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Uploads().DeleteUpload(ctx, up.ID); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		got, err := s.Uploads().GetUploadByID(ctx, up.ID)
		require.NoError(t, err)
		require.Equal(t, up.ID, got.ID)
	})

	t.Run("commit applies both writes", func(t *testing.T) {
		s := newTestStore(t)
		owner := newTestUser(t, s, "tx2@example.com")
		up := newTestUpload(t, s, owner.ID, time.Now().UTC())

		_, err := s.Users().AdjustUploadCount(ctx, owner.ID, 1)
		require.NoError(t, err)

		err = s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Uploads().DeleteUpload(ctx, up.ID); err != nil {
				return err
			}
			_, err := tx.Users().AdjustUploadCount(ctx, owner.ID, -1)
			return err
		})
		require.NoError(t, err)

		_, err = s.Uploads().GetUploadByID(ctx, up.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		u, err := s.Users().GetUserByID(ctx, owner.ID)
		require.NoError(t, err)
		require.Zero(t, u.UploadCount)
	})
}

package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrack/uptrack/internal/tracker/domain"
)

func TestAllowed(t *testing.T) {
	t.Parallel()

	admin := domain.Actor{ID: "a1", Role: domain.RoleAdmin}
	owner := domain.Actor{ID: "u1", Role: domain.RoleUser}
	other := domain.Actor{ID: "u2", Role: domain.RoleUser}
	editor := domain.Actor{ID: "e1", Role: domain.RoleEditor}

	ownScoped := []domain.Action{
		domain.ActionReadOwn,
		domain.ActionWriteOwn,
		domain.ActionDelete,
	}

	t.Run("admin is allowed everything", func(t *testing.T) {
		for _, action := range ownScoped {
			require.True(t, domain.Allowed(admin, action, "u1"))
		}
		require.True(t, domain.Allowed(admin, domain.ActionReadAll, ""))
		require.True(t, domain.Allowed(admin, domain.ActionAdmin, ""))
	})

	t.Run("owner may act on own resources", func(t *testing.T) {
		for _, action := range ownScoped {
			require.True(t, domain.Allowed(owner, action, "u1"))
		}
	})

	t.Run("non-owner is denied own-scoped actions", func(t *testing.T) {
		for _, action := range ownScoped {
			require.False(t, domain.Allowed(other, action, "u1"))
		}
	})

	t.Run("editors get no special treatment", func(t *testing.T) {
		require.False(t, domain.Allowed(editor, domain.ActionReadAll, ""))
		require.False(t, domain.Allowed(editor, domain.ActionAdmin, ""))
		require.True(t, domain.Allowed(editor, domain.ActionReadOwn, "e1"))
	})

	t.Run("non-admin denied cross-owner and admin actions", func(t *testing.T) {
		require.False(t, domain.Allowed(owner, domain.ActionReadAll, ""))
		require.False(t, domain.Allowed(owner, domain.ActionAdmin, ""))
	})

	t.Run("empty actor id never matches empty owner", func(t *testing.T) {
		anon := domain.Actor{Role: domain.RoleUser}
		require.False(t, domain.Allowed(anon, domain.ActionReadOwn, ""))
	})
}

func TestUploadStatusTransitions(t *testing.T) {
	t.Parallel()

	require.True(t, domain.UploadPending.CanTransitionTo(domain.UploadCompleted))
	require.True(t, domain.UploadPending.CanTransitionTo(domain.UploadFailed))

	// No reverse transitions, ever.
	require.False(t, domain.UploadCompleted.CanTransitionTo(domain.UploadPending))
	require.False(t, domain.UploadFailed.CanTransitionTo(domain.UploadPending))
	require.False(t, domain.UploadCompleted.CanTransitionTo(domain.UploadFailed))
	require.False(t, domain.UploadFailed.CanTransitionTo(domain.UploadCompleted))
}

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/uptrack/uptrack/internal/tracker/domain"
	"github.com/uptrack/uptrack/internal/tracker/store"
	"github.com/uptrack/uptrack/pkg/slogx"
)

type UserService struct {
	Store   store.Store
	Timeout time.Duration
}

// UpdateUserParams is the accepted profile patch. Role and Status changes are
// administrative; Name may be changed by the owner.
type UpdateUserParams struct {
	Name   *string
	Role   *domain.Role
	Status *domain.Status
}

// GetUser fetches an identity. Owners may read themselves, admins anyone.
func (s *UserService) GetUser(ctx context.Context, actor domain.Actor, id string) (domain.User, error) {
	if !domain.Allowed(actor, domain.ActionReadOwn, id) {
		return domain.User{}, ErrForbidden
	}

	var user domain.User
	err := withStore(ctx, s.Timeout, func(ctx context.Context) (err error) {
		user, err = s.Store.Users().GetUserByID(ctx, id)
		return err
	})
	return user, err
}

// ListUsers returns every identity. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if !domain.Allowed(actor, domain.ActionReadAll, "") {
		return nil, ErrForbidden
	}

	var users []domain.User
	err := withStore(ctx, s.Timeout, func(ctx context.Context) (err error) {
		users, err = s.Store.Users().ListUsers(ctx)
		return err
	})
	return users, err
}

// UpdateUser applies a partial profile update and returns the fresh identity.
// A name change is allowed for the owner; role and status changes require
// admin rights regardless of who the target is.
func (s *UserService) UpdateUser(ctx context.Context, actor domain.Actor, id string, params UpdateUserParams) (domain.User, error) {
	if !domain.Allowed(actor, domain.ActionWriteOwn, id) {
		return domain.User{}, ErrForbidden
	}
	if (params.Role != nil || params.Status != nil) && !domain.Allowed(actor, domain.ActionAdmin, "") {
		return domain.User{}, ErrForbidden
	}

	patch := store.UserPatch{}
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return domain.User{}, invalidf("name must not be empty")
		}
		patch.Name = &name
	}
	if params.Role != nil {
		if !params.Role.Valid() {
			return domain.User{}, invalidf("unknown role %q", string(*params.Role))
		}
		patch.Role = params.Role
	}
	if params.Status != nil {
		if !params.Status.Valid() {
			return domain.User{}, invalidf("unknown status %q", string(*params.Status))
		}
		patch.Status = params.Status
	}
	if patch.Name == nil && patch.Role == nil && patch.Status == nil {
		return domain.User{}, invalidf("nothing to update")
	}

	var user domain.User
	err := withStore(ctx, s.Timeout, func(ctx context.Context) error {
		if err := s.Store.Users().UpdateUser(ctx, id, patch); err != nil {
			return err
		}
		var err error
		user, err = s.Store.Users().GetUserByID(ctx, id)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user updated",
		slog.String("user_id", id),
		slog.String("actor_id", actor.ID))
	return user, nil
}

// DeleteUser removes an identity. Admin only; upload records owned by the
// identity are kept for bookkeeping.
func (s *UserService) DeleteUser(ctx context.Context, actor domain.Actor, id string) error {
	if !domain.Allowed(actor, domain.ActionAdmin, "") {
		return ErrForbidden
	}

	err := withStore(ctx, s.Timeout, func(ctx context.Context) error {
		return s.Store.Users().DeleteUser(ctx, id)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user deleted",
		slog.String("user_id", id),
		slog.String("actor_id", actor.ID))
	return nil
}

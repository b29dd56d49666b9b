package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/uptrack/uptrack/internal/tracker/domain"
	"github.com/uptrack/uptrack/internal/tracker/store"
	"github.com/uptrack/uptrack/pkg/cryptox"
	"github.com/uptrack/uptrack/pkg/idx"
	"github.com/uptrack/uptrack/pkg/jwtx"
	"github.com/uptrack/uptrack/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	Timeout  time.Duration
}

// Register creates a new identity and returns it along with a signed token.
// Emails are unique case-insensitively; they are lower-cased before storage
// and lookup so "User@X.com" and "user@x.com" are the same account. The role
// defaults to user when empty.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" {
		return domain.User{}, "", invalidf("name is required")
	}
	if !emailPattern.MatchString(email) {
		return domain.User{}, "", invalidf("a valid email is required")
	}
	if password == "" {
		return domain.User{}, "", invalidf("password is required")
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return domain.User{}, "", invalidf("unknown role %q", string(role))
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, "", err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.StatusActive,
		JoinedAt:     now,
		UpdatedAt:    now,
	}

	err = withStore(ctx, s.Timeout, func(ctx context.Context) error {
		return s.Store.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrEmailTaken
		}
		return domain.User{}, "", err
	}

	token, err := s.issueToken(user, now)
	if err != nil {
		return domain.User{}, "", err
	}

	slogx.FromContext(ctx).Info("user registered",
		slog.String("user_id", user.ID))
	return user, token, nil
}

// Login verifies credentials and returns the identity with a fresh token.
// Account status is deliberately not checked here: suspended users can still
// authenticate, they just get denied by policy on the operations themselves.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = normalizeEmail(email)
	l := slogx.FromContext(ctx)

	var user domain.User
	err := withStore(ctx, s.Timeout, func(ctx context.Context) (err error) {
		user, err = s.Store.Users().GetUserByEmail(ctx, email)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login rejected: bad password", slog.String("user_id", user.ID))
		return domain.User{}, "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	err = withStore(ctx, s.Timeout, func(ctx context.Context) error {
		return s.Store.Users().UpdateLastLogin(ctx, user.ID, now)
	})
	if err != nil {
		return domain.User{}, "", err
	}
	user.LastLoginAt = &now

	token, err := s.issueToken(user, now)
	if err != nil {
		return domain.User{}, "", err
	}

	l.Info("user logged in", slog.String("user_id", user.ID))
	return user, token, nil
}

// Verify validates a raw token and resolves it back to the identity it names.
func (s *AuthService) Verify(ctx context.Context, token string) (domain.User, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	var user domain.User
	err = withStore(ctx, s.Timeout, func(ctx context.Context) (err error) {
		user, err = s.Store.Users().GetUserByID(ctx, claims.Subject)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *AuthService) issueToken(user domain.User, now time.Time) (string, error) {
	claims := jwtx.NewIdentityClaims(user.ID, user.Email, string(user.Role), s.Issuer, now)
	return s.Signer.Sign(claims)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

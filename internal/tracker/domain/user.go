package domain

import "time"

// Role is the coarse permission tier of an identity.
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleEditor:
		return true
	}
	return false
}

// Status is the account lifecycle state of an identity.
type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// User is a registered identity. Email is unique case-insensitively; the
// store keeps it lower-cased. UploadCount mirrors the number of non-deleted
// upload records owned by the user and is adjusted transactionally with each
// create/delete, so it can drift only when a secondary effect degrades (the
// drift is logged, never fatal).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // argon2id encoded, plaintext never retained
	Role         Role
	Status       Status
	UploadCount  int64
	LastLoginAt  *time.Time
	JoinedAt     time.Time
	UpdatedAt    time.Time
}

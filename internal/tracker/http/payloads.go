package http

import (
	"time"

	"github.com/uptrack/uptrack/internal/tracker/domain"
)

// UserPayload is the wire shape of an identity. The password hash and the
// on-disk storage paths never leave the service.
type UserPayload struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	UploadCount int64      `json:"uploadCount"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	JoinedAt    time.Time  `json:"joinedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toUserPayload(u domain.User) UserPayload {
	return UserPayload{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Status:      string(u.Status),
		UploadCount: u.UploadCount,
		LastLoginAt: u.LastLoginAt,
		JoinedAt:    u.JoinedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toUserPayloads(users []domain.User) []UserPayload {
	out := make([]UserPayload, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPayload(u))
	}
	return out
}

// UploadPayload is the wire shape of an upload record.
type UploadPayload struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	FileName    string    `json:"fileName"`
	FileSizeMB  float64   `json:"fileSizeMB"`
	RecordCount int64     `json:"recordCount"`
	Status      string    `json:"status"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

func toUploadPayload(u domain.Upload) UploadPayload {
	return UploadPayload{
		ID:          u.ID,
		UserID:      u.OwnerID,
		FileName:    u.FileName,
		FileSizeMB:  u.FileSizeMB,
		RecordCount: u.RecordCount,
		Status:      string(u.Status),
		UploadedAt:  u.UploadedAt,
	}
}

func toUploadPayloads(uploads []domain.Upload) []UploadPayload {
	out := make([]UploadPayload, 0, len(uploads))
	for _, u := range uploads {
		out = append(out, toUploadPayload(u))
	}
	return out
}

type AuthResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    UserPayload `json:"user"`
}

type UserResponse struct {
	Success bool        `json:"success"`
	User    UserPayload `json:"user"`
}

type UsersResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Users   []UserPayload `json:"users"`
}

type UploadResponse struct {
	Success bool          `json:"success"`
	Upload  UploadPayload `json:"upload"`
}

type UploadsResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Uploads []UploadPayload `json:"uploads"`
}

type UserStatsResponse struct {
	Success bool             `json:"success"`
	Stats   domain.UserStats `json:"stats"`
}

type SystemStatsResponse struct {
	Success bool               `json:"success"`
	Stats   domain.SystemStats `json:"stats"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse documents the failure envelope written by httpx.WriteError.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Storage  string `json:"storage"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

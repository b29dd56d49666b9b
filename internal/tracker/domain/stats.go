package domain

import "time"

// UserStats is the per-owner rollup over upload records. LastUploadAt is the
// maximum UploadedAt among the owner's records (nil when none exist), which
// is not necessarily the most recently created row.
type UserStats struct {
	TotalUploads int64      `json:"totalUploads"`
	TotalRecords int64      `json:"totalRecords"`
	TotalSizeMB  float64    `json:"totalSizeMB"`
	LastUploadAt *time.Time `json:"lastUploadAt"`
}

// SystemStats is the system-wide rollup. Recomputed on every call; nothing
// is cached.
type SystemStats struct {
	TotalUsers     int64   `json:"totalUsers"`
	ActiveUsers    int64   `json:"activeUsers"`
	PendingUsers   int64   `json:"pendingUsers"`
	TotalUploads   int64   `json:"totalUploads"`
	TotalRecords   int64   `json:"totalRecords"`
	TotalStorageMB float64 `json:"totalStorageMB"`
}

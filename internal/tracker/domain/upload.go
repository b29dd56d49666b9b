package domain

import "time"

// UploadStatus is the processing state of an upload record.
//
// The success path only ever stores "completed"; "pending" and "failed" are
// reserved for resumable/validating workflows and reachable through the admin
// transition endpoint only.
type UploadStatus string

const (
	UploadPending   UploadStatus = "pending"
	UploadCompleted UploadStatus = "completed"
	UploadFailed    UploadStatus = "failed"
)

// Valid reports whether s is one of the known upload statuses.
func (s UploadStatus) Valid() bool {
	switch s {
	case UploadPending, UploadCompleted, UploadFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status machine permits moving from s to
// next. Only pending records move, and never back to pending.
func (s UploadStatus) CanTransitionTo(next UploadStatus) bool {
	return s == UploadPending && (next == UploadCompleted || next == UploadFailed)
}

// Upload is the metadata record for one submitted file. OwnerID is a
// back-reference used for lookup and authorization only; deleting an owner
// does not cascade here. Records are immutable after creation except for
// status transitions.
type Upload struct {
	ID              string
	OwnerID         string
	FileName        string
	FileSizeMB      float64 // rounded to 2 decimal places before storage
	RecordCount     int64
	StorageLocation string
	Status          UploadStatus
	UploadedAt      time.Time
}

// FileDescriptor is the hand-off from the transport layer after it has
// received the raw bytes and placed them on disk. The core re-validates the
// name and size before recording anything.
type FileDescriptor struct {
	FileName        string
	SizeBytes       int64
	MimeType        string
	StorageLocation string
}

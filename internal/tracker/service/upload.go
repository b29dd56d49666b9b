package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/uptrack/uptrack/internal/tracker/domain"
	"github.com/uptrack/uptrack/internal/tracker/storage"
	"github.com/uptrack/uptrack/internal/tracker/store"
	"github.com/uptrack/uptrack/pkg/idx"
	"github.com/uptrack/uptrack/pkg/slogx"
)

// DefaultMaxUploadBytes caps accepted files at 10MB unless configured
// otherwise.
const DefaultMaxUploadBytes = 10 << 20

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

// allowedExtensions is the tabular-data allow-list. Matching is on the file
// extension only; content sniffing is out of scope.
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

type UploadService struct {
	Store          store.Store
	Files          storage.Releaser
	MaxUploadBytes int64
	Timeout        time.Duration
}

func (s *UploadService) maxBytes() int64 {
	if s.MaxUploadBytes > 0 {
		return s.MaxUploadBytes
	}
	return DefaultMaxUploadBytes
}

// Submit records a received file against the acting identity. The raw bytes
// are already on disk (see storage.Saver); on any rejection the transport is
// responsible for purging them.
//
// Records are created as completed: ingestion is synchronous today, and the
// record count is a placeholder until the parsing pipeline lands.
func (s *UploadService) Submit(ctx context.Context, actor domain.Actor, fd domain.FileDescriptor) (domain.Upload, error) {
	l := slogx.FromContext(ctx)

	ext := strings.ToLower(filepath.Ext(fd.FileName))
	if !allowedExtensions[ext] {
		return domain.Upload{}, ErrUnsupportedFileType
	}
	if fd.SizeBytes > s.maxBytes() {
		return domain.Upload{}, ErrFileTooLarge
	}
	if fd.StorageLocation == "" {
		return domain.Upload{}, invalidf("missing storage location")
	}

	// The token may outlive its account; make sure the owner still exists.
	err := withStore(ctx, s.Timeout, func(ctx context.Context) error {
		_, err := s.Store.Users().GetUserByID(ctx, actor.ID)
		return err
	})
	if err != nil {
		return domain.Upload{}, err
	}

	now := time.Now().UTC()
	upload := domain.Upload{
		ID:              idx.New().String(),
		OwnerID:         actor.ID,
		FileName:        fd.FileName,
		FileSizeMB:      round2(float64(fd.SizeBytes) / (1 << 20)),
		RecordCount:     estimateRecordCount(),
		StorageLocation: fd.StorageLocation,
		Status:          domain.UploadCompleted,
		UploadedAt:      now,
	}

	err = withStore(ctx, s.Timeout, func(ctx context.Context) error {
		return s.Store.Uploads().CreateUpload(ctx, upload)
	})
	if err != nil {
		return domain.Upload{}, err
	}

	// The record is the source of truth; a failed counter bump is logged and
	// left for the next recount rather than failing the upload.
	err = withStore(ctx, s.Timeout, func(ctx context.Context) error {
		_, err := s.Store.Users().AdjustUploadCount(ctx, actor.ID, 1)
		return err
	})
	if err != nil {
		l.Warn("upload counter not incremented",
			slog.String("user_id", actor.ID),
			slog.String("upload_id", upload.ID),
			slog.String("error", err.Error()))
	}

	l.Info("upload recorded",
		slog.String("upload_id", upload.ID),
		slog.String("user_id", actor.ID),
		slog.String("file_name", upload.FileName))
	return upload, nil
}

// GetUpload fetches a single record. Owners may read their own, admins any.
func (s *UploadService) GetUpload(ctx context.Context, actor domain.Actor, id string) (domain.Upload, error) {
	var upload domain.Upload
	err := withStore(ctx, s.Timeout, func(ctx context.Context) (err error) {
		upload, err = s.Store.Uploads().GetUploadByID(ctx, id)
		return err
	})
	if err != nil {
		return domain.Upload{}, err
	}

	if !domain.Allowed(actor, domain.ActionReadOwn, upload.OwnerID) {
		return domain.Upload{}, ErrForbidden
	}
	return upload, nil
}

// ListUploads returns every record across all owners. Admin only.
func (s *UploadService) ListUploads(ctx context.Context, actor domain.Actor) ([]domain.Upload, error) {
	if !domain.Allowed(actor, domain.ActionReadAll, "") {
		return nil, ErrForbidden
	}

	var uploads []domain.Upload
	err := withStore(ctx, s.Timeout, func(ctx context.Context) (err error) {
		uploads, err = s.Store.Uploads().ListUploads(ctx)
		return err
	})
	return uploads, err
}

// History returns one owner's records, newest first. The owner must exist so
// a typoed id reads as not-found rather than an empty history.
func (s *UploadService) History(ctx context.Context, actor domain.Actor, ownerID string) ([]domain.Upload, error) {
	if !domain.Allowed(actor, domain.ActionReadOwn, ownerID) {
		return nil, ErrForbidden
	}

	var uploads []domain.Upload
	err := withStore(ctx, s.Timeout, func(ctx context.Context) error {
		if _, err := s.Store.Users().GetUserByID(ctx, ownerID); err != nil {
			return err
		}
		var err error
		uploads, err = s.Store.Uploads().ListUploadsByOwner(ctx, ownerID)
		return err
	})
	return uploads, err
}

// DeleteUpload removes a record and its owner's counter together, then frees
// the stored bytes. The byte release is best-effort: a leaked file is
// recoverable garbage, a dangling record is not.
func (s *UploadService) DeleteUpload(ctx context.Context, actor domain.Actor, id string) error {
	l := slogx.FromContext(ctx)

	var upload domain.Upload
	err := withStore(ctx, s.Timeout, func(ctx context.Context) (err error) {
		upload, err = s.Store.Uploads().GetUploadByID(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	if !domain.Allowed(actor, domain.ActionDelete, upload.OwnerID) {
		return ErrForbidden
	}

	var clamped bool
	err = withStore(ctx, s.Timeout, func(ctx context.Context) error {
		return s.Store.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Uploads().DeleteUpload(ctx, id); err != nil {
				return err
			}
			var err error
			clamped, err = tx.Users().AdjustUploadCount(ctx, upload.OwnerID, -1)
			if errors.Is(err, store.ErrNotFound) {
				// orphaned record: the owner is already gone
				return nil
			}
			return err
		})
	})
	if err != nil {
		return err
	}
	if clamped {
		l.Warn("upload counter was already zero during delete",
			slog.String("user_id", upload.OwnerID),
			slog.String("upload_id", id))
	}

	if err := s.Files.Release(ctx, upload.StorageLocation); err != nil {
		l.Warn("stored file not released",
			slog.String("upload_id", id),
			slog.String("location", upload.StorageLocation),
			slog.String("error", err.Error()))
	}

	l.Info("upload deleted",
		slog.String("upload_id", id),
		slog.String("actor_id", actor.ID))
	return nil
}

// TransitionStatus moves a record through the status machine. Admin only.
func (s *UploadService) TransitionStatus(ctx context.Context, actor domain.Actor, id string, next domain.UploadStatus) (domain.Upload, error) {
	if !domain.Allowed(actor, domain.ActionAdmin, "") {
		return domain.Upload{}, ErrForbidden
	}
	if !next.Valid() {
		return domain.Upload{}, invalidf("unknown status %q", string(next))
	}

	var upload domain.Upload
	err := withStore(ctx, s.Timeout, func(ctx context.Context) (err error) {
		upload, err = s.Store.Uploads().GetUploadByID(ctx, id)
		return err
	})
	if err != nil {
		return domain.Upload{}, err
	}

	if !upload.Status.CanTransitionTo(next) {
		return domain.Upload{}, ErrInvalidTransition
	}

	err = withStore(ctx, s.Timeout, func(ctx context.Context) error {
		return s.Store.Uploads().UpdateUploadStatus(ctx, id, next)
	})
	if err != nil {
		return domain.Upload{}, err
	}
	upload.Status = next

	slogx.FromContext(ctx).Info("upload status changed",
		slog.String("upload_id", id),
		slog.String("status", string(next)),
		slog.String("actor_id", actor.ID))
	return upload, nil
}

// estimateRecordCount stands in for the row-counting pipeline. The uniform
// 1..1000 draw keeps downstream aggregation code honest until real parsing
// replaces it.
func estimateRecordCount() int64 {
	return int64(rand.IntN(1000) + 1)
}

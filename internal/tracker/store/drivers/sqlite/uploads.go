package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrack/uptrack/internal/tracker/domain"
	"github.com/uptrack/uptrack/internal/tracker/store"
)

type uploadsRepo struct {
	q querier
}

const uploadColumns = `id, owner_id, file_name, file_size_mb, record_count, storage_location, status, uploaded_at`

func scanUpload(row scanner) (domain.Upload, error) {
	var (
		u      domain.Upload
		status string
	)
	err := row.Scan(
		&u.ID, &u.OwnerID, &u.FileName, &u.FileSizeMB,
		&u.RecordCount, &u.StorageLocation, &status, &u.UploadedAt,
	)
	if err != nil {
		return domain.Upload{}, err
	}
	u.Status = domain.UploadStatus(status)
	return u, nil
}

func (r *uploadsRepo) CreateUpload(ctx context.Context, u domain.Upload) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO uploads (`+uploadColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.OwnerID, u.FileName, u.FileSizeMB,
		u.RecordCount, u.StorageLocation, string(u.Status), u.UploadedAt,
	)
	return mapConstraint(err)
}

func (r *uploadsRepo) GetUploadByID(ctx context.Context, id string) (domain.Upload, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+uploadColumns+` FROM uploads WHERE id = ?`, id)
	u, err := scanUpload(row)
	if err != nil {
		return domain.Upload{}, mapNotFound(err)
	}
	return u, nil
}

func (r *uploadsRepo) ListUploadsByOwner(ctx context.Context, ownerID string) ([]domain.Upload, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+uploadColumns+` FROM uploads
		WHERE owner_id = ?
		ORDER BY uploaded_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUploads(rows)
}

func (r *uploadsRepo) ListUploads(ctx context.Context) ([]domain.Upload, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+uploadColumns+` FROM uploads
		ORDER BY uploaded_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUploads(rows)
}

func collectUploads(rows *sql.Rows) ([]domain.Upload, error) {
	var uploads []domain.Upload
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}

func (r *uploadsRepo) UpdateUploadStatus(ctx context.Context, id string, status domain.UploadStatus) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE uploads SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *uploadsRepo) DeleteUpload(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM uploads WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *uploadsRepo) StatsForOwner(ctx context.Context, ownerID string) (domain.UserStats, error) {
	var stats domain.UserStats

	row := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(record_count), 0), COALESCE(SUM(file_size_mb), 0)
		FROM uploads WHERE owner_id = ?`, ownerID)
	if err := row.Scan(&stats.TotalUploads, &stats.TotalRecords, &stats.TotalSizeMB); err != nil {
		return domain.UserStats{}, err
	}

	// MAX(uploaded_at) loses the column's time affinity under this driver, so
	// fetch the newest timestamp directly instead.
	row = r.q.QueryRowContext(ctx, `
		SELECT `+uploadColumns+` FROM uploads
		WHERE owner_id = ?
		ORDER BY uploaded_at DESC, id DESC
		LIMIT 1`, ownerID)
	last, err := scanUpload(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// no uploads yet; LastUploadAt stays nil
	case err != nil:
		return domain.UserStats{}, err
	default:
		at := last.UploadedAt
		stats.LastUploadAt = &at
	}

	return stats, nil
}

func (r *uploadsRepo) Totals(ctx context.Context) (store.UploadTotals, error) {
	var totals store.UploadTotals
	row := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(record_count), 0), COALESCE(SUM(file_size_mb), 0)
		FROM uploads`)
	if err := row.Scan(&totals.Count, &totals.Records, &totals.SizeMB); err != nil {
		return store.UploadTotals{}, err
	}
	return totals, nil
}

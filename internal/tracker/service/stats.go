package service

import (
	"context"
	"time"

	"github.com/uptrack/uptrack/internal/tracker/domain"
	"github.com/uptrack/uptrack/internal/tracker/store"
)

// StatsService computes rollups straight from the store on every call. The
// datasets are small enough that caching would only add staleness bugs.
type StatsService struct {
	Store   store.Store
	Timeout time.Duration
}

// UserStats returns the per-owner rollup. Owners may read their own, admins
// anyone's. The owner must exist.
func (s *StatsService) UserStats(ctx context.Context, actor domain.Actor, userID string) (domain.UserStats, error) {
	if !domain.Allowed(actor, domain.ActionReadOwn, userID) {
		return domain.UserStats{}, ErrForbidden
	}

	var stats domain.UserStats
	err := withStore(ctx, s.Timeout, func(ctx context.Context) error {
		if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
			return err
		}
		var err error
		stats, err = s.Store.Uploads().StatsForOwner(ctx, userID)
		return err
	})
	if err != nil {
		return domain.UserStats{}, err
	}

	stats.TotalSizeMB = round2(stats.TotalSizeMB)
	return stats, nil
}

// SystemStats returns the system-wide rollup. Admin only.
func (s *StatsService) SystemStats(ctx context.Context, actor domain.Actor) (domain.SystemStats, error) {
	if !domain.Allowed(actor, domain.ActionAdmin, "") {
		return domain.SystemStats{}, ErrForbidden
	}

	var (
		counts map[domain.Status]int64
		totals store.UploadTotals
	)
	err := withStore(ctx, s.Timeout, func(ctx context.Context) error {
		var err error
		if counts, err = s.Store.Users().CountUsersByStatus(ctx); err != nil {
			return err
		}
		totals, err = s.Store.Uploads().Totals(ctx)
		return err
	})
	if err != nil {
		return domain.SystemStats{}, err
	}

	stats := domain.SystemStats{
		ActiveUsers:    counts[domain.StatusActive],
		PendingUsers:   counts[domain.StatusPending],
		TotalUploads:   totals.Count,
		TotalRecords:   totals.Records,
		TotalStorageMB: round2(totals.SizeMB),
	}
	for _, n := range counts {
		stats.TotalUsers += n
	}
	return stats, nil
}

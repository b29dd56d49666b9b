package http

import (
	"net/http"

	"github.com/uptrack/uptrack/internal/tracker/service"
	"github.com/uptrack/uptrack/pkg/httpx"
)

type SystemStatsHandler struct {
	StatsService *service.StatsService
}

// ServeHTTP godoc
//
//	@Summary		System-wide statistics
//	@Description	Returns user counts partitioned by status plus upload totals,
//	@Description	recomputed from the store on every call. Admin only.
//	@Tags			Stats
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	SystemStatsResponse	"stats"
//	@Failure		403	{object}	ErrorResponse		"not authorized"
//	@Router			/v1/stats/system [get].
func (h *SystemStatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.StatsService.SystemStats(ctx, actorFromCtx(ctx))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, SystemStatsResponse{
		Success: true,
		Stats:   stats,
	})
}

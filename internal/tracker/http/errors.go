package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/uptrack/uptrack/internal/tracker/domain"
	"github.com/uptrack/uptrack/internal/tracker/service"
	"github.com/uptrack/uptrack/internal/tracker/store"
	"github.com/uptrack/uptrack/pkg/httpx"
	"github.com/uptrack/uptrack/pkg/slogx"
)

// writeServiceError maps service and store errors onto the uniform failure
// envelope. Every handler funnels failures through here so status codes stay
// consistent across the API.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		httpx.WriteError(w, http.StatusBadRequest, ve.Msg)
		return
	}

	switch {
	case errors.Is(err, service.ErrUnsupportedFileType):
		httpx.WriteError(w, http.StatusBadRequest, "only csv, xlsx and xls files are accepted")
	case errors.Is(err, service.ErrFileTooLarge):
		httpx.WriteError(w, http.StatusBadRequest, "file exceeds the maximum upload size")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "not authorized")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, service.ErrInvalidTransition):
		httpx.WriteError(w, http.StatusConflict, "status transition not allowed")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrUnavailable):
		w.Header().Set("Retry-After", "1")
		httpx.WriteError(w, http.StatusServiceUnavailable, "temporarily unavailable, retry later")
	default:
		slogx.FromContext(ctx).Error("request failed", slog.String("error", err.Error()))
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// actorFromCtx rebuilds the acting identity from the authn middleware's
// context values.
func actorFromCtx(ctx context.Context) domain.Actor {
	return domain.Actor{
		ID:   httpx.UserIDFromCtx(ctx),
		Role: domain.Role(httpx.RoleFromCtx(ctx)),
	}
}

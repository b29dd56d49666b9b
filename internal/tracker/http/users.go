package http

import (
	"encoding/json"
	"net/http"

	"github.com/uptrack/uptrack/internal/tracker/domain"
	"github.com/uptrack/uptrack/internal/tracker/service"
	"github.com/uptrack/uptrack/pkg/httpx"
)

type UsersHandler struct {
	UserService  *service.UserService
	StatsService *service.StatsService
}

type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty"`
	Role   *string `json:"role,omitempty"`
	Status *string `json:"status,omitempty"`
}

// HandleList godoc
//
//	@Summary		List all users
//	@Description	Returns every identity. Admin only.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	UsersResponse	"count, users"
//	@Failure		403	{object}	ErrorResponse	"not authorized"
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.UserService.ListUsers(ctx, actorFromCtx(ctx))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	payload := toUserPayloads(users)
	httpx.WriteJSON(w, http.StatusOK, UsersResponse{
		Success: true,
		Count:   len(payload),
		Users:   payload,
	})
}

// HandleGet godoc
//
//	@Summary		Get a user
//	@Description	Returns one identity. Owners may read themselves, admins anyone.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string			true	"User id"
//	@Success		200	{object}	UserResponse	"user"
//	@Failure		403	{object}	ErrorResponse	"not authorized"
//	@Failure		404	{object}	ErrorResponse	"not found"
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.UserService.GetUser(ctx, actorFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, UserResponse{
		Success: true,
		User:    toUserPayload(user),
	})
}

// HandleUpdate godoc
//
//	@Summary		Update a user
//	@Description	Applies a partial profile update. Name changes are allowed for
//	@Description	the owner; role and status changes are admin only.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"User id"
//	@Param			request	body		UpdateUserRequest	true	"Fields to update"
//	@Success		200		{object}	UserResponse		"user"
//	@Failure		400		{object}	ErrorResponse		"invalid input"
//	@Failure		403		{object}	ErrorResponse		"not authorized"
//	@Failure		404		{object}	ErrorResponse		"not found"
//	@Router			/v1/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	params := service.UpdateUserParams{Name: req.Name}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		params.Role = &role
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		params.Status = &status
	}

	user, err := h.UserService.UpdateUser(ctx, actorFromCtx(ctx), r.PathValue("id"), params)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, UserResponse{
		Success: true,
		User:    toUserPayload(user),
	})
}

// HandleDelete godoc
//
//	@Summary		Delete a user
//	@Description	Removes an identity. Admin only. Upload records owned by the
//	@Description	identity are kept.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string			true	"User id"
//	@Success		200	{object}	MessageResponse	"message"
//	@Failure		403	{object}	ErrorResponse	"not authorized"
//	@Failure		404	{object}	ErrorResponse	"not found"
//	@Router			/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.UserService.DeleteUser(ctx, actorFromCtx(ctx), r.PathValue("id")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "user deleted",
	})
}

// HandleStats godoc
//
//	@Summary		Per-user upload statistics
//	@Description	Returns the owner's upload rollup. Owners may read their own,
//	@Description	admins anyone's.
//	@Tags			Stats
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string				true	"User id"
//	@Success		200	{object}	UserStatsResponse	"stats"
//	@Failure		403	{object}	ErrorResponse		"not authorized"
//	@Failure		404	{object}	ErrorResponse		"not found"
//	@Router			/v1/users/{id}/stats [get].
func (h *UsersHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.StatsService.UserStats(ctx, actorFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, UserStatsResponse{
		Success: true,
		Stats:   stats,
	})
}

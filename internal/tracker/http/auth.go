package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/uptrack/uptrack/internal/tracker/domain"
	"github.com/uptrack/uptrack/internal/tracker/service"
	"github.com/uptrack/uptrack/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister godoc
//
//	@Summary		Register a new account
//	@Description	Creates an identity and returns it with a signed access token.
//	@Description	Emails are unique case-insensitively. Role defaults to "user".
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Registration details"
//	@Success		201		{object}	AuthResponse	"token, user"
//	@Failure		400		{object}	ErrorResponse	"invalid input"
//	@Failure		409		{object}	ErrorResponse	"email already registered"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, token, err := h.AuthService.Register(ctx, req.Name, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Token:   token,
		User:    toUserPayload(user),
	})
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Verifies credentials and returns the identity with a fresh token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	AuthResponse	"token, user"
//	@Failure		401		{object}	ErrorResponse	"invalid credentials"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Token:   token,
		User:    toUserPayload(user),
	})
}

// HandleVerify godoc
//
//	@Summary		Verify a token
//	@Description	Validates the bearer token and returns the identity it names.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	UserResponse	"user"
//	@Failure		401	{object}	ErrorResponse	"invalid or missing token"
//	@Router			/v1/auth/verify [post].
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	token, ok := strings.CutPrefix(raw, "Bearer ")
	if !ok || token == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	user, err := h.AuthService.Verify(ctx, token)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, UserResponse{
		Success: true,
		User:    toUserPayload(user),
	})
}

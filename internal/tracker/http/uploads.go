package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/uptrack/uptrack/internal/tracker/domain"
	"github.com/uptrack/uptrack/internal/tracker/service"
	"github.com/uptrack/uptrack/internal/tracker/storage"
	"github.com/uptrack/uptrack/pkg/httpx"
	"github.com/uptrack/uptrack/pkg/slogx"
)

// multipartOverhead leaves room for the multipart framing and other form
// fields on top of the file cap itself.
const multipartOverhead = 1 << 20

type UploadsHandler struct {
	UploadService *service.UploadService
	Files         storage.Storage

	// MaxUploadBytes caps the accepted file size at the transport. Zero
	// falls back to the service default.
	MaxUploadBytes int64
}

type UpdateUploadStatusRequest struct {
	Status string `json:"status"`
}

func (h *UploadsHandler) maxBytes() int64 {
	if h.MaxUploadBytes > 0 {
		return h.MaxUploadBytes
	}
	return service.DefaultMaxUploadBytes
}

// HandleSubmit godoc
//
//	@Summary		Submit a file upload
//	@Description	Accepts a multipart form with a "file" part, stores the bytes
//	@Description	and records the upload against the authenticated user. Only
//	@Description	csv, xlsx and xls files up to the configured size are accepted.
//	@Tags			Uploads
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file	formData	file			true	"File to upload"
//	@Success		201		{object}	UploadResponse	"upload"
//	@Failure		400		{object}	ErrorResponse	"rejected file"
//	@Failure		401		{object}	ErrorResponse	"invalid or missing token"
//	@Router			/v1/uploads [post].
func (h *UploadsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes()+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeServiceError(ctx, w, service.ErrFileTooLarge)
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, "multipart form with a \"file\" part is required")
		return
	}
	defer file.Close()

	location, written, err := h.Files.Save(ctx, header.Filename, file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeServiceError(ctx, w, service.ErrFileTooLarge)
			return
		}
		log.Error("failed to store upload", slog.String("error", err.Error()))
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	upload, err := h.UploadService.Submit(ctx, actorFromCtx(ctx), domain.FileDescriptor{
		FileName:        header.Filename,
		SizeBytes:       written,
		MimeType:        header.Header.Get("Content-Type"),
		StorageLocation: location,
	})
	if err != nil {
		// rejected after the bytes landed: purge the orphan
		if rerr := h.Files.Release(ctx, location); rerr != nil {
			log.Warn("orphaned upload bytes not released",
				slog.String("location", location),
				slog.String("error", rerr.Error()))
		}
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, UploadResponse{
		Success: true,
		Upload:  toUploadPayload(upload),
	})
}

// HandleList godoc
//
//	@Summary		List all uploads
//	@Description	Returns every upload record across all owners, newest first.
//	@Description	Admin only.
//	@Tags			Uploads
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	UploadsResponse	"count, uploads"
//	@Failure		403	{object}	ErrorResponse	"not authorized"
//	@Router			/v1/uploads [get].
func (h *UploadsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	uploads, err := h.UploadService.ListUploads(ctx, actorFromCtx(ctx))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	payload := toUploadPayloads(uploads)
	httpx.WriteJSON(w, http.StatusOK, UploadsResponse{
		Success: true,
		Count:   len(payload),
		Uploads: payload,
	})
}

// HandleHistory godoc
//
//	@Summary		Upload history for a user
//	@Description	Returns one owner's records, newest first. Owners may read
//	@Description	their own history, admins anyone's.
//	@Tags			Uploads
//	@Produce		json
//	@Security		BearerAuth
//	@Param			userId	path		string			true	"Owner id"
//	@Success		200		{object}	UploadsResponse	"count, uploads"
//	@Failure		403		{object}	ErrorResponse	"not authorized"
//	@Failure		404		{object}	ErrorResponse	"unknown owner"
//	@Router			/v1/uploads/history/{userId} [get].
func (h *UploadsHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	uploads, err := h.UploadService.History(ctx, actorFromCtx(ctx), r.PathValue("userId"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	payload := toUploadPayloads(uploads)
	httpx.WriteJSON(w, http.StatusOK, UploadsResponse{
		Success: true,
		Count:   len(payload),
		Uploads: payload,
	})
}

// HandleGet godoc
//
//	@Summary		Get an upload record
//	@Description	Returns one record. Owners may read their own, admins any.
//	@Tags			Uploads
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string			true	"Upload id"
//	@Success		200	{object}	UploadResponse	"upload"
//	@Failure		403	{object}	ErrorResponse	"not authorized"
//	@Failure		404	{object}	ErrorResponse	"not found"
//	@Router			/v1/uploads/{id} [get].
func (h *UploadsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	upload, err := h.UploadService.GetUpload(ctx, actorFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Upload:  toUploadPayload(upload),
	})
}

// HandleDelete godoc
//
//	@Summary		Delete an upload
//	@Description	Removes the record, decrements the owner's counter and frees
//	@Description	the stored bytes. Owners may delete their own, admins any.
//	@Tags			Uploads
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string			true	"Upload id"
//	@Success		200	{object}	MessageResponse	"message"
//	@Failure		403	{object}	ErrorResponse	"not authorized"
//	@Failure		404	{object}	ErrorResponse	"not found"
//	@Router			/v1/uploads/{id} [delete].
func (h *UploadsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.UploadService.DeleteUpload(ctx, actorFromCtx(ctx), r.PathValue("id")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "upload deleted",
	})
}

// HandleStatus godoc
//
//	@Summary		Transition an upload's status
//	@Description	Moves a pending record to completed or failed. Admin only.
//	@Tags			Uploads
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Upload id"
//	@Param			request	body		UpdateUploadStatusRequest	true	"Target status"
//	@Success		200		{object}	UploadResponse				"upload"
//	@Failure		400		{object}	ErrorResponse				"unknown status"
//	@Failure		403		{object}	ErrorResponse				"not authorized"
//	@Failure		404		{object}	ErrorResponse				"not found"
//	@Failure		409		{object}	ErrorResponse				"transition not allowed"
//	@Router			/v1/uploads/{id}/status [patch].
func (h *UploadsHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateUploadStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	upload, err := h.UploadService.TransitionStatus(ctx, actorFromCtx(ctx), r.PathValue("id"), domain.UploadStatus(req.Status))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Upload:  toUploadPayload(upload),
	})
}

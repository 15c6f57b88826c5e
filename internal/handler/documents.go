package handler

import (
	"errors"
	"net/http"

	"github.com/prog6212/cmcs/backend/internal/domain"
	"github.com/prog6212/cmcs/backend/internal/storage"
)

func (h *Handler) CreateUploadURL(w http.ResponseWriter, r *http.Request) {
	if h.documents == nil {
		h.errorResponse(w, r, "document uploads are disabled")
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		FileName string `json:"fileName" validate:"required,max=255"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ref, url, err := h.documents.UploadURL(r.Context(), myInfo.ID, req.FileName)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnsupportedFileType):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "upload url created", map[string]any{
		"url":      url,
		"document": ref,
	})
}

func (h *Handler) GetClaimDocument(w http.ResponseWriter, r *http.Request) {
	if h.documents == nil {
		h.errorResponse(w, r, "document uploads are disabled")
		return
	}

	claim := r.Context().Value(ClaimCtx).(*domain.Claim)
	if claim.Document == nil {
		h.errorResponse(w, r, "claim has no supporting document")
		return
	}

	url, err := h.documents.DownloadURL(r.Context(), claim.Document)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "download url created", map[string]any{
		"url":      url,
		"document": claim.Document,
	})
}

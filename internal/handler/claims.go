package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prog6212/cmcs/backend/internal/domain"
	"github.com/prog6212/cmcs/backend/internal/notify"
	"github.com/prog6212/cmcs/backend/internal/storage"
)

func (h *Handler) writeClaimViews(w http.ResponseWriter, r *http.Request, msg string, claims []*domain.Claim) {
	views, err := h.service.ClaimViews(r.Context(), claims)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, msg, views)
}

// GetClaims lists a lecturer's own claims, or every claim for staff.
func (h *Handler) GetClaims(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var (
		claims []*domain.Claim
		err    error
	)
	if myInfo.Role == domain.RoleLecturer {
		claims, err = h.service.ClaimsForLecturer(r.Context(), myInfo.ID)
	} else {
		claims, err = h.service.AllClaims(r.Context())
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeClaimViews(w, r, "claims listed", claims)
}

func (h *Handler) GetPendingVerification(w http.ResponseWriter, r *http.Request) {
	claims, err := h.service.PendingVerification(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeClaimViews(w, r, "claims awaiting verification", claims)
}

func (h *Handler) GetPendingApproval(w http.ResponseWriter, r *http.Request) {
	claims, err := h.service.PendingApproval(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeClaimViews(w, r, "claims awaiting approval", claims)
}

func (h *Handler) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		TotalHours float64             `json:"totalHours" validate:"required,gte=1,lte=180"`
		Month      string              `json:"month" validate:"required"`
		Notes      string              `json:"notes" validate:"max=500"`
		Document   *domain.DocumentRef `json:"document"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Document != nil && !storage.OwnedBy(req.Document.Path, myInfo.ID) {
		h.errorResponse(w, r, "document was not uploaded by you")
		return
	}

	claim, err := h.service.SubmitClaim(r.Context(), domain.ClaimDraft{
		LecturerID: myInfo.ID,
		TotalHours: req.TotalHours,
		Month:      req.Month,
		Notes:      req.Notes,
		Document:   req.Document,
	})
	if err != nil {
		h.serviceError(w, r, err, "lecturer not found")
		return
	}

	h.successResponse(w, r, "claim submitted", claim)
}

func (h *Handler) GetClaim(w http.ResponseWriter, r *http.Request) {
	claim := r.Context().Value(ClaimCtx).(*domain.Claim)
	h.writeClaimViews(w, r, "claim found", []*domain.Claim{claim})
}

func (h *Handler) VerifyClaim(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	claim := r.Context().Value(ClaimCtx).(*domain.Claim)

	updated, err := h.service.VerifyClaim(r.Context(), claim.ID, myInfo.ID)
	if err != nil {
		h.serviceError(w, r, err, "claim not found")
		return
	}

	h.notifyLecturer(r.Context(), updated, myInfo)
	h.successResponse(w, r, "claim verified", updated)
}

func (h *Handler) ApproveClaim(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	claim := r.Context().Value(ClaimCtx).(*domain.Claim)

	updated, err := h.service.ApproveClaim(r.Context(), claim.ID, myInfo.ID)
	if err != nil {
		h.serviceError(w, r, err, "claim not found")
		return
	}

	h.notifyLecturer(r.Context(), updated, myInfo)
	h.successResponse(w, r, "claim approved", updated)
}

// RejectClaim rejects at the stage that belongs to the caller's role.
func (h *Handler) RejectClaim(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	claim := r.Context().Value(ClaimCtx).(*domain.Claim)

	stage := domain.StageVerification
	if myInfo.Role == domain.RoleManager {
		stage = domain.StageApproval
	}

	updated, err := h.service.RejectClaim(r.Context(), claim.ID, myInfo.ID, stage)
	if err != nil {
		h.serviceError(w, r, err, "claim not found")
		return
	}

	h.notifyLecturer(r.Context(), updated, myInfo)
	h.successResponse(w, r, "claim rejected", updated)
}

// notifyLecturer queues a status mail. The decision is already stored, so a
// failure here is only logged.
func (h *Handler) notifyLecturer(ctx context.Context, claim *domain.Claim, decidedBy *domain.User) {
	lecturer, err := h.service.GetUser(ctx, claim.LecturerID)
	if err != nil {
		slog.Error("failed to load lecturer for notification", "claim", claim.ID, "error", err)
		return
	}

	if err := h.mail.Publish(ctx, notify.ClaimStatusMessage(lecturer, claim, decidedBy.FullName())); err != nil {
		slog.Error("failed to queue claim status mail", "claim", claim.ID, "error", err)
	}
}

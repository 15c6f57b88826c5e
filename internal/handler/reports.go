package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/prog6212/cmcs/backend/internal/report"
)

func (h *Handler) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	months, err := h.service.ApprovedSummary(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "monthly report", report.NewMonthly(months, time.Now()))
}

func (h *Handler) DownloadMonthlyReport(w http.ResponseWriter, r *http.Request) {
	months, err := h.service.ApprovedSummary(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	claims, err := h.service.AllClaims(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	views, err := h.service.ClaimViews(r.Context(), claims)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	now := time.Now()
	var buf bytes.Buffer
	if err := report.NewMonthly(months, now).WriteWorkbook(&buf, views); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "monthly-report-"+now.Format("20060102")+".xlsx"))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logInternalServerError(r, err)
	}
}

package handler

import (
	"io"
	"net/http"
	"winugly/internal/render"
	"winugly/internal/service"
	"winugly/internal/transport/rest/middleware"
)

// ReportHandler serves the session's current report
type ReportHandler struct {
	coachSvc *service.CoachService
	renderer *render.Renderer
	export   bool
}

// NewReportHandler creates a new report handler
func NewReportHandler(coachSvc *service.CoachService, renderer *render.Renderer, export bool) *ReportHandler {
	return &ReportHandler{coachSvc: coachSvc, renderer: renderer, export: export}
}

// Current handles GET /v1/reports/current
//
//	@Summary	Get the current report
//	@Tags		reports
//	@Produce	json
//	@Success	200	{object}	model.Submission
//	@Failure	404	{object}	map[string]string
//	@Router		/v1/reports/current [get]
func (h *ReportHandler) Current(w http.ResponseWriter, r *http.Request) {
	sub, err := h.coachSvc.Current(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load report")
		return
	}
	if sub == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

// CurrentHTML handles GET /v1/reports/current/html
//
//	@Summary	Get the current report as an HTML document
//	@Tags		reports
//	@Produce	html
//	@Success	200
//	@Failure	404	{object}	map[string]string
//	@Router		/v1/reports/current/html [get]
func (h *ReportHandler) CurrentHTML(w http.ResponseWriter, r *http.Request) {
	sub, err := h.coachSvc.Current(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load report")
		return
	}
	if sub == nil || sub.Report == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}

	writeHTML(w, http.StatusOK, func(out io.Writer) error {
		return h.renderer.Document(out, sub.Report, render.DocumentOptions{Export: h.export})
	})
}

// Clear handles DELETE /v1/reports/current
//
//	@Summary	Clear the current report
//	@Tags		reports
//	@Success	204
//	@Router		/v1/reports/current [delete]
func (h *ReportHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.coachSvc.Clear(r.Context(), middleware.GetSessionID(r.Context())); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear report")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"winugly/internal/model"
	"winugly/internal/service"
	"winugly/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// AnalysisHandler handles the JSON analysis endpoints
type AnalysisHandler struct {
	coachSvc *service.CoachService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(coachSvc *service.CoachService) *AnalysisHandler {
	return &AnalysisHandler{coachSvc: coachSvc}
}

// Create handles POST /v1/analyses
//
//	@Summary	Analyse a strategy
//	@Tags		analyses
//	@Accept		json
//	@Produce	json
//	@Param		body	body		model.AnalyzeRequest	true	"strategy"
//	@Success	201		{object}	model.Submission
//	@Failure	400		{object}	map[string]string
//	@Failure	413		{object}	map[string]string
//	@Failure	422		{object}	map[string]string
//	@Failure	502		{object}	map[string]string
//	@Router		/v1/analyses [post]
func (h *AnalysisHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req model.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := middleware.GetSessionID(r.Context())
	sub, err := h.coachSvc.Analyze(r.Context(), sessionID, req.Strategy)
	if err != nil {
		status, msg := analyzeFailure(err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// List handles GET /v1/analyses
//
//	@Summary	List past analyses of the session
//	@Tags		analyses
//	@Produce	json
//	@Param		limit	query		int	false	"max entries (default 20, max 100)"
//	@Success	200		{array}		model.SubmissionSummary
//	@Router		/v1/analyses [get]
func (h *AnalysisHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	subs, err := h.coachSvc.History(r.Context(), middleware.GetSessionID(r.Context()), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	summaries := make([]model.SubmissionSummary, 0, len(subs))
	for _, s := range subs {
		summaries = append(summaries, s.Summary())
	}
	writeJSON(w, http.StatusOK, summaries)
}

// Get handles GET /v1/analyses/{id}
//
//	@Summary	Get one analysis of the session
//	@Tags		analyses
//	@Produce	json
//	@Param		id	path		string	true	"analysis id"
//	@Success	200	{object}	model.Submission
//	@Failure	404	{object}	map[string]string
//	@Router		/v1/analyses/{id} [get]
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sub, err := h.coachSvc.Get(r.Context(), middleware.GetSessionID(r.Context()), id)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "analysis not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load analysis")
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

// analyzeFailure maps a coaching error to an API status and message
func analyzeFailure(err error) (int, string) {
	var svcErr *service.ServiceError
	switch {
	case errors.Is(err, service.ErrEmptyStrategy):
		return http.StatusBadRequest, "strategy is required"
	case errors.Is(err, service.ErrStrategyTooLong):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, service.ErrUnparseable):
		return http.StatusUnprocessableEntity, "could not parse response"
	case errors.As(err, &svcErr):
		if svcErr.Timeout {
			return http.StatusBadGateway, "model request timed out"
		}
		return http.StatusBadGateway, "model request failed"
	default:
		return http.StatusInternalServerError, "analysis failed"
	}
}

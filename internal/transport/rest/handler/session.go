package handler

import (
	"encoding/json"
	"net/http"
	"winugly/internal/service"
)

// SessionHandler issues anonymous session tokens
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// Issue handles POST /v1/session
//
//	@Summary	Issue a session token
//	@Tags		session
//	@Produce	json
//	@Success	200	{object}	model.SessionResponse
//	@Router		/v1/session [post]
func (h *SessionHandler) Issue(w http.ResponseWriter, r *http.Request) {
	resp, err := h.sessionSvc.Issue()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue session")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// maxBodyBytes caps request bodies; strategies are limited far below this
const maxBodyBytes = 64 << 10

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"winugly/internal/model"
	"winugly/internal/render"
	"winugly/internal/service"
	"winugly/internal/transport/rest/middleware"

	"go.uber.org/zap"
)

// writeHTML renders into a buffer before the status line is written
func writeHTML(w http.ResponseWriter, status int, fn func(out io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// PageHandler serves the browser tool: the form, the submit action and the
// standalone report
type PageHandler struct {
	coachSvc *service.CoachService
	renderer *render.Renderer
	export   bool
	logger   *zap.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(coachSvc *service.CoachService, renderer *render.Renderer, export bool, logger *zap.Logger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{coachSvc: coachSvc, renderer: renderer, export: export, logger: logger}
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, "", nil)
}

// Analyze handles POST /analyze
func (h *PageHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.page(w, r, http.StatusRequestEntityTooLarge, "", &render.Flash{Kind: render.FlashWarning, Message: h.renderer.Style().TooLongWarning})
			return
		}
		h.page(w, r, http.StatusBadRequest, "", &render.Flash{Kind: render.FlashWarning, Message: h.renderer.Style().EmptyWarning})
		return
	}
	strategy := r.PostFormValue("strategy")

	_, err := h.coachSvc.Analyze(r.Context(), middleware.GetSessionID(r.Context()), strategy)
	if err != nil {
		status, flash := h.flashFor(err)
		h.page(w, r, status, strategy, flash)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Report handles GET /report
func (h *PageHandler) Report(w http.ResponseWriter, r *http.Request) {
	sub, err := h.coachSvc.Current(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		h.logger.Warn("failed to load current report", zap.Error(err))
	}
	if sub == nil || sub.Report == nil {
		http.Error(w, h.renderer.Style().NoReport, http.StatusNotFound)
		return
	}

	writeHTML(w, http.StatusOK, func(out io.Writer) error {
		return h.renderer.Document(out, sub.Report, render.DocumentOptions{Export: h.export})
	})
}

func (h *PageHandler) page(w http.ResponseWriter, r *http.Request, status int, strategy string, flash *render.Flash) {
	var report *model.Report
	sub, err := h.coachSvc.Current(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		h.logger.Warn("failed to load current report", zap.Error(err))
	} else if sub != nil {
		report = sub.Report
	}

	data := render.PageData{
		Strategy:      strategy,
		Flash:         flash,
		Report:        report,
		MaxInputChars: h.coachSvc.MaxInputChars(),
		Export:        h.export,
	}
	writeHTML(w, status, func(out io.Writer) error {
		return h.renderer.Page(out, data)
	})
}

func (h *PageHandler) flashFor(err error) (int, *render.Flash) {
	style := h.renderer.Style()
	var svcErr *service.ServiceError
	switch {
	case errors.Is(err, service.ErrEmptyStrategy):
		return http.StatusUnprocessableEntity, &render.Flash{Kind: render.FlashWarning, Message: style.EmptyWarning}
	case errors.Is(err, service.ErrStrategyTooLong):
		return http.StatusUnprocessableEntity, &render.Flash{Kind: render.FlashWarning, Message: style.TooLongWarning}
	case errors.Is(err, service.ErrUnparseable):
		return http.StatusBadGateway, &render.Flash{Kind: render.FlashError, Message: style.ParseFailure}
	case errors.As(err, &svcErr):
		return http.StatusBadGateway, &render.Flash{Kind: render.FlashError, Message: style.ServiceFailure}
	default:
		h.logger.Error("analysis failed", zap.Error(err))
		return http.StatusInternalServerError, &render.Flash{Kind: render.FlashError, Message: style.ServiceFailure}
	}
}

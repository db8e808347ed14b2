package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
	"winugly/internal/cache"
	"winugly/internal/feedback"
	"winugly/internal/model"
	"winugly/internal/prompt"
	"winugly/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyStrategy   = errors.New("strategy is empty")
	ErrStrategyTooLong = errors.New("strategy is too long")
	ErrUnparseable     = errors.New("could not parse model response")
	ErrNotFound        = errors.New("analysis not found")
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// CoachService runs one strategy through the model and keeps the session's
// current report. Cache and history are optional.
type CoachService struct {
	generator     Generator
	prompts       *prompt.Builder
	reports       cache.ReportCache
	history       repository.SubmissionRepo
	broadcaster   Broadcaster
	maxInputChars int
	logger        *zap.Logger
}

// NewCoachService creates a new coaching service
func NewCoachService(
	generator Generator,
	prompts *prompt.Builder,
	reports cache.ReportCache,
	history repository.SubmissionRepo,
	maxInputChars int,
	logger *zap.Logger,
) *CoachService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoachService{
		generator:     generator,
		prompts:       prompts,
		reports:       reports,
		history:       history,
		maxInputChars: maxInputChars,
		logger:        logger.Named("coach"),
	}
}

// SetBroadcaster sets the broadcaster for progress events
func (s *CoachService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// MaxInputChars returns the input cap in characters
func (s *CoachService) MaxInputChars() int {
	return s.maxInputChars
}

// Analyze submits one strategy. The current report is replaced only when the
// reply was parsed; any failure leaves it as it was.
func (s *CoachService) Analyze(ctx context.Context, sessionID, strategy string) (*model.Submission, error) {
	strategy = prompt.Normalize(strategy)
	if strategy == "" {
		return nil, ErrEmptyStrategy
	}
	if s.maxInputChars > 0 && utf8.RuneCountInString(strategy) > s.maxInputChars {
		return nil, fmt.Errorf("%w: %d characters, limit %d", ErrStrategyTooLong, utf8.RuneCountInString(strategy), s.maxInputChars)
	}

	sub := &model.Submission{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Strategy:  strategy,
		Model:     s.generator.Model(),
		CreatedAt: time.Now().UTC(),
	}
	s.publish(sessionID, EventAnalysisStarted, map[string]interface{}{
		"id": sub.ID,
	})

	reply, err := s.generator.Generate(ctx, s.prompts.Build(strategy))
	if err != nil {
		var svcErr *ServiceError
		if !errors.As(err, &svcErr) {
			svcErr = &ServiceError{Op: "generate", Model: sub.Model, Err: err}
			err = svcErr
		}
		s.fail(ctx, sub, model.SubmissionFailed, err)
		return nil, err
	}
	sub.Reply = reply

	report, err := feedback.Extract(reply)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrUnparseable, err)
		s.fail(ctx, sub, model.SubmissionUnparsed, err)
		return nil, err
	}

	s.finish(sub, model.SubmissionReady, "")
	sub.Report = report

	if s.reports != nil {
		if err := s.reports.Set(ctx, sub); err != nil {
			err = fmt.Errorf("failed to store current report: %w", err)
			s.fail(ctx, sub, model.SubmissionFailed, err)
			return nil, err
		}
	}
	s.archive(ctx, sub)

	s.logger.Info("analysis completed",
		zap.String("session", sessionID),
		zap.String("id", sub.ID),
		zap.Bool("partial", report.Partial()),
		zap.Int("missions", len(report.Missions)),
		zap.Int64("durationMs", sub.DurationMS))
	s.publish(sessionID, EventAnalysisCompleted, map[string]interface{}{
		"id":       sub.ID,
		"partial":  report.Partial(),
		"outcomes": report.Outcomes,
	})

	return sub, nil
}

// Current returns the session's current report, or nil when there is none
func (s *CoachService) Current(ctx context.Context, sessionID string) (*model.Submission, error) {
	if s.reports == nil {
		return nil, nil
	}
	return s.reports.Get(ctx, sessionID)
}

// Clear drops the session's current report
func (s *CoachService) Clear(ctx context.Context, sessionID string) error {
	if s.reports == nil {
		return nil
	}
	return s.reports.Delete(ctx, sessionID)
}

// History lists the session's past attempts, newest first
func (s *CoachService) History(ctx context.Context, sessionID string, limit int) ([]*model.Submission, error) {
	if s.history == nil {
		return []*model.Submission{}, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	subs, err := s.history.ListBySession(ctx, sessionID, int64(limit))
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []*model.Submission{}
	}
	return subs, nil
}

// Get returns one archived attempt of the session
func (s *CoachService) Get(ctx context.Context, sessionID, id string) (*model.Submission, error) {
	if s.history == nil {
		return nil, ErrNotFound
	}
	sub, err := s.history.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.SessionID != sessionID {
		return nil, ErrNotFound
	}
	return sub, nil
}

func (s *CoachService) fail(ctx context.Context, sub *model.Submission, status model.SubmissionStatus, err error) {
	s.finish(sub, status, err.Error())
	s.archive(ctx, sub)

	s.logger.Warn("analysis failed",
		zap.String("session", sub.SessionID),
		zap.String("id", sub.ID),
		zap.String("status", string(status)),
		zap.Error(err))
	s.publish(sub.SessionID, EventAnalysisFailed, map[string]interface{}{
		"id":     sub.ID,
		"status": status,
	})
}

func (s *CoachService) finish(sub *model.Submission, status model.SubmissionStatus, msg string) {
	now := time.Now().UTC()
	sub.Status = status
	sub.Error = msg
	sub.CompletedAt = &now
	sub.DurationMS = now.Sub(sub.CreatedAt).Milliseconds()
}

// archive is best effort; the request may already be cancelled
func (s *CoachService) archive(ctx context.Context, sub *model.Submission) {
	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.history.Save(ctx, sub); err != nil {
		s.logger.Warn("failed to archive submission", zap.String("id", sub.ID), zap.Error(err))
	}
}

func (s *CoachService) publish(sessionID, msgType string, payload interface{}) {
	if s.broadcaster != nil && sessionID != "" {
		s.broadcaster.Publish(sessionID, msgType, payload)
	}
}

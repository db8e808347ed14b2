package model

import "time"

// SubmissionStatus is the lifecycle state of one analysis attempt
type SubmissionStatus string

const (
	SubmissionReady    SubmissionStatus = "ready"
	SubmissionFailed   SubmissionStatus = "failed"
	SubmissionUnparsed SubmissionStatus = "unparsed"
)

// Submission is one strategy analysed by the coach
type Submission struct {
	ID          string           `json:"id" bson:"_id"`
	SessionID   string           `json:"sessionId" bson:"sessionId"`
	Strategy    string           `json:"strategy" bson:"strategy"`
	Reply       string           `json:"reply,omitempty" bson:"reply,omitempty"`
	Report      *Report          `json:"report,omitempty" bson:"report,omitempty"`
	Status      SubmissionStatus `json:"status" bson:"status"`
	Error       string           `json:"error,omitempty" bson:"error,omitempty"`
	Model       string           `json:"model" bson:"model"`
	DurationMS  int64            `json:"durationMs" bson:"durationMs"`
	CreatedAt   time.Time        `json:"createdAt" bson:"createdAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// AnalyzeRequest is the request body for POST /v1/analyses
type AnalyzeRequest struct {
	Strategy string `json:"strategy"`
}

// SubmissionSummary is a history entry without the raw reply
type SubmissionSummary struct {
	ID        string           `json:"id"`
	Status    SubmissionStatus `json:"status"`
	Strategy  string           `json:"strategy"`
	Missions  int              `json:"missions"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Summary returns the history view of a submission
func (s *Submission) Summary() SubmissionSummary {
	missions := 0
	if s.Report != nil {
		missions = len(s.Report.Missions)
	}
	return SubmissionSummary{
		ID:        s.ID,
		Status:    s.Status,
		Strategy:  s.Strategy,
		Missions:  missions,
		CreatedAt: s.CreatedAt,
	}
}

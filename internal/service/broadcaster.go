package service

// Broadcaster pushes progress events to the sockets of one session (avoids import cycle)
type Broadcaster interface {
	Publish(sessionID string, msgType string, payload interface{})
}

// Event types sent over the session socket
const (
	EventAnalysisStarted   = "analysis_started"
	EventAnalysisCompleted = "analysis_completed"
	EventAnalysisFailed    = "analysis_failed"
)

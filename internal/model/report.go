package model

// Section identifies one of the four numbered parts of a coaching reply
type Section int

const (
	SectionDiagnosis Section = iota + 1
	SectionPraise
	SectionImprove
	SectionMissions
)

// String returns the section name used in logs and JSON
func (s Section) String() string {
	switch s {
	case SectionDiagnosis:
		return "diagnosis"
	case SectionPraise:
		return "praise"
	case SectionImprove:
		return "improve"
	case SectionMissions:
		return "missions"
	default:
		return "unknown"
	}
}

// ParseSection maps a section name back to its Section, or 0 when unknown
func ParseSection(name string) Section {
	for _, s := range Sections {
		if s.String() == name {
			return s
		}
	}
	return 0
}

// Sections lists every section in reply order
var Sections = []Section{SectionDiagnosis, SectionPraise, SectionImprove, SectionMissions}

// OutcomeStatus describes how extraction went for one section
type OutcomeStatus string

const (
	OutcomeFound   OutcomeStatus = "found"
	OutcomeMissing OutcomeStatus = "missing"
	OutcomeNoQuote OutcomeStatus = "no_quote"
	OutcomeEmpty   OutcomeStatus = "empty"
)

// SectionOutcome records the extraction status of a section. Only the name is
// stored so the outcome reads back the same from Redis and Mongo.
type SectionOutcome struct {
	Name   string        `json:"section" bson:"section"`
	Status OutcomeStatus `json:"status" bson:"status"`
}

// Section returns the section this outcome belongs to
func (o SectionOutcome) Section() Section {
	return ParseSection(o.Name)
}

// QuoteSection is a quoted sentence from the strategy plus the coach's feedback on it.
// When the reply has no quote line, Quote and Feedback stay empty and the body
// is kept in Unquoted, which is never rendered.
type QuoteSection struct {
	Title    string   `json:"title,omitempty" bson:"title,omitempty"`
	Quote    string   `json:"quote,omitempty" bson:"quote,omitempty"`
	Feedback []string `json:"feedback,omitempty" bson:"feedback,omitempty"`
	Unquoted []string `json:"unquoted,omitempty" bson:"unquoted,omitempty"`
}

// IsEmpty reports whether there is nothing to render
func (q QuoteSection) IsEmpty() bool {
	return q.Quote == "" && len(q.Feedback) == 0
}

// Report is the structured form of a coaching reply. Every field is optional.
type Report struct {
	DiagnosisTitle string           `json:"diagnosisTitle,omitempty" bson:"diagnosisTitle,omitempty"`
	Diagnosis      string           `json:"diagnosis,omitempty" bson:"diagnosis,omitempty"`
	Praise         QuoteSection     `json:"praise" bson:"praise"`
	Improve        QuoteSection     `json:"improve" bson:"improve"`
	MissionsTitle  string           `json:"missionsTitle,omitempty" bson:"missionsTitle,omitempty"`
	Missions       []string         `json:"missions,omitempty" bson:"missions,omitempty"`
	Outcomes       []SectionOutcome `json:"outcomes,omitempty" bson:"outcomes,omitempty"`
}

// IsEmpty reports whether no section produced any content
func (r *Report) IsEmpty() bool {
	return r == nil || (r.Diagnosis == "" && r.Praise.IsEmpty() && r.Improve.IsEmpty() && len(r.Missions) == 0)
}

// Partial reports whether any section was not extracted cleanly
func (r *Report) Partial() bool {
	if r == nil {
		return false
	}
	for _, o := range r.Outcomes {
		if o.Status != OutcomeFound {
			return true
		}
	}
	return false
}

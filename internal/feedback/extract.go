// Package feedback turns the coach's markdown reply into a structured report.
//
// The reply is expected to contain four headings of the form "### N." followed by
// free text. Nothing about that shape is enforced by the model, so extraction keeps
// whatever it can find and records per-section outcomes instead of failing.
package feedback

import (
	"errors"
	"regexp"
	"strings"
	"winugly/internal/model"
)

var (
	// ErrEmptyReply is returned for an empty or whitespace-only reply
	ErrEmptyReply = errors.New("empty reply")
	// ErrNoSections is returned when the reply has no numbered heading at all
	ErrNoSections = errors.New("no numbered sections in reply")
)

var (
	headingRe = regexp.MustCompile(`^###\s*(?:\*\*)?\s*(\d)\.(.*)$`)
	ruleRe    = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
)

type state int

const (
	statePreamble state = iota
	stateDiagnosis
	statePraise
	stateImprove
	stateMissions
	stateTrailing
)

func (s state) section() (model.Section, bool) {
	switch s {
	case stateDiagnosis:
		return model.SectionDiagnosis, true
	case statePraise:
		return model.SectionPraise, true
	case stateImprove:
		return model.SectionImprove, true
	case stateMissions:
		return model.SectionMissions, true
	}
	return 0, false
}

func stateFor(digit byte) state {
	switch digit {
	case '1':
		return stateDiagnosis
	case '2':
		return statePraise
	case '3':
		return stateImprove
	case '4':
		return stateMissions
	}
	return stateTrailing
}

type chunk struct {
	title string
	lines []string
}

// splitter walks the reply line by line and collects the body of each section.
// Preamble text, unknown heading numbers and repeated headings go to the trailing
// state and are dropped.
type splitter struct {
	state  state
	chunks map[model.Section]*chunk
}

func (s *splitter) feed(line string) {
	trimmed := strings.TrimSpace(line)
	if m := headingRe.FindStringSubmatch(trimmed); m != nil {
		next := stateFor(m[1][0])
		if sec, ok := next.section(); ok {
			if _, seen := s.chunks[sec]; seen {
				next = stateTrailing
			} else {
				s.chunks[sec] = &chunk{title: cleanTitle(m[2])}
			}
		}
		s.state = next
		return
	}

	if ruleRe.MatchString(trimmed) {
		return
	}
	if sec, ok := s.state.section(); ok {
		c := s.chunks[sec]
		c.lines = append(c.lines, line)
	}
}

func split(reply string) map[model.Section]*chunk {
	s := &splitter{state: statePreamble, chunks: make(map[model.Section]*chunk)}
	for _, line := range strings.Split(reply, "\n") {
		s.feed(line)
	}
	return s.chunks
}

// Extract parses a coaching reply into a Report. A reply that is merely incomplete
// yields a partial report; only an empty reply or one with no numbered heading is an
// error.
func Extract(reply string) (*model.Report, error) {
	text := strings.ReplaceAll(reply, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyReply
	}

	chunks := split(text)
	if len(chunks) == 0 {
		return nil, ErrNoSections
	}

	report := &model.Report{}
	for _, sec := range model.Sections {
		c, ok := chunks[sec]
		if !ok {
			report.Outcomes = append(report.Outcomes, outcome(sec, model.OutcomeMissing))
			continue
		}

		var status model.OutcomeStatus
		switch sec {
		case model.SectionDiagnosis:
			report.DiagnosisTitle = c.title
			report.Diagnosis = strings.TrimSpace(strings.Join(c.lines, "\n"))
			status = filled(report.Diagnosis != "")
		case model.SectionPraise:
			report.Praise, status = quoteSection(c)
		case model.SectionImprove:
			report.Improve, status = quoteSection(c)
		case model.SectionMissions:
			report.MissionsTitle = c.title
			report.Missions = missions(c.lines)
			status = filled(len(report.Missions) > 0)
		}
		report.Outcomes = append(report.Outcomes, outcome(sec, status))
	}

	return report, nil
}

// quoteSection takes the first ">" line as the quote and every later line as
// feedback. Without a quote line both stay empty; the body is kept as Unquoted.
func quoteSection(c *chunk) (model.QuoteSection, model.OutcomeStatus) {
	qs := model.QuoteSection{Title: c.title}

	marked := false
	for i, line := range c.lines {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, ">") {
			qs.Quote = unquote(strings.TrimSpace(strings.TrimPrefix(t, ">")))
			qs.Feedback = paragraphs(c.lines[i+1:])
			marked = true
			break
		}
	}

	switch {
	case qs.Quote != "":
		return qs, model.OutcomeFound
	case marked:
		// quote marker with no text
		return qs, model.OutcomeNoQuote
	}

	qs.Unquoted = paragraphs(c.lines)
	if len(qs.Unquoted) > 0 {
		return qs, model.OutcomeNoQuote
	}
	return qs, model.OutcomeEmpty
}

func paragraphs(lines []string) []string {
	var out []string
	for _, line := range lines {
		if p := strings.TrimSpace(line); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func missions(lines []string) []string {
	var out []string
	open := false
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if item, ok := bullet(t); ok {
			out = append(out, item)
			open = true
			continue
		}
		// Wrapped mission text
		if open {
			last := len(out) - 1
			out[last] = strings.TrimSpace(out[last] + " " + t)
		}
	}

	kept := out[:0]
	for _, m := range out {
		if m != "" {
			kept = append(kept, m)
		}
	}
	return kept
}

func bullet(line string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):]), true
		}
	}
	if line == "-" || line == "*" {
		return "", true
	}
	return "", false
}

var quotePairs = [][2]string{
	{`"`, `"`},
	{"“", "”"},
	{"'", "'"},
	{"‘", "’"},
	{"「", "」"},
}

func unquote(s string) string {
	for _, p := range quotePairs {
		if len(s) >= len(p[0])+len(p[1]) && strings.HasPrefix(s, p[0]) && strings.HasSuffix(s, p[1]) {
			return strings.TrimSpace(s[len(p[0]) : len(s)-len(p[1])])
		}
	}
	return s
}

func cleanTitle(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*"))
}

func filled(ok bool) model.OutcomeStatus {
	if ok {
		return model.OutcomeFound
	}
	return model.OutcomeEmpty
}

func outcome(sec model.Section, status model.OutcomeStatus) model.SectionOutcome {
	return model.SectionOutcome{Name: sec.String(), Status: status}
}

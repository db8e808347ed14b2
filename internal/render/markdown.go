package render

import (
	"strings"
	"winugly/internal/model"
)

// Markdown renders the report as a markdown document, used for terminal output.
// Like the HTML card, empty sections are left out.
func Markdown(style Style, report *model.Report) string {
	var b strings.Builder
	b.WriteString("# " + style.Icon + " " + style.Title + "\n\n")
	b.WriteString("_" + style.Tagline + "_\n")

	if report == nil {
		return b.String()
	}

	if report.Diagnosis != "" {
		b.WriteString("\n## " + style.DiagnosisHeading + "\n\n")
		b.WriteString(report.Diagnosis + "\n")
	}
	writeQuoteSection(&b, style.PraiseHeading, report.Praise)
	writeQuoteSection(&b, style.ImproveHeading, report.Improve)
	if len(report.Missions) > 0 {
		b.WriteString("\n## " + style.MissionsHeading + "\n\n")
		for _, m := range report.Missions {
			b.WriteString("- " + style.MissionGlyph + " " + m + "\n")
		}
	}
	return b.String()
}

func writeQuoteSection(b *strings.Builder, heading string, qs model.QuoteSection) {
	if qs.IsEmpty() {
		return
	}
	b.WriteString("\n## " + heading + "\n\n")
	if qs.Quote != "" {
		b.WriteString("> \"" + qs.Quote + "\"\n\n")
	}
	for _, p := range qs.Feedback {
		b.WriteString(p + "\n\n")
	}
}

// Package render turns a parsed report into HTML for the browser and markdown for
// the terminal.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"winugly/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var boldRe = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)

// inline escapes model text and converts **bold** spans, the only markdown the
// coach is asked to use inline.
func inline(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(boldRe.ReplaceAllString(escaped, "<strong>$1</strong>"))
}

// FlashKind selects the notice colour on the tool page
type FlashKind string

const (
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

// Flash is a one-off message shown above the report
type Flash struct {
	Kind    FlashKind
	Message string
}

// PageData is the input of the tool page
type PageData struct {
	Strategy      string
	Flash         *Flash
	Report        *model.Report
	MaxInputChars int
	Export        bool
}

// DocumentOptions controls the standalone report document
type DocumentOptions struct {
	Export bool
}

type cardView struct {
	Style  Style
	Report *model.Report
	Export bool
}

type pageView struct {
	PageData
	Style Style
}

// Renderer renders reports with one Style
type Renderer struct {
	style Style
	tmpl  *template.Template
}

// New parses the embedded templates for the given style
func New(style Style) (*Renderer, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"inline": inline,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report templates: %w", err)
	}
	return &Renderer{style: style, tmpl: tmpl}, nil
}

// Style returns the renderer's style
func (r *Renderer) Style() Style {
	return r.style
}

// Card writes the report card fragment. Sections without content are omitted.
func (r *Renderer) Card(w io.Writer, report *model.Report) error {
	return r.tmpl.ExecuteTemplate(w, "card", cardView{Style: r.style, Report: orEmpty(report)})
}

// Document writes a standalone HTML document holding the card and, optionally, the
// save-as-image control.
func (r *Renderer) Document(w io.Writer, report *model.Report, opts DocumentOptions) error {
	return r.tmpl.ExecuteTemplate(w, "document", cardView{Style: r.style, Report: orEmpty(report), Export: opts.Export})
}

// Page writes the tool page with the strategy form and the current report, if any
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, "page", pageView{PageData: data, Style: r.style})
}

// CardString renders the card into a string
func (r *Renderer) CardString(report *model.Report) (string, error) {
	var buf bytes.Buffer
	if err := r.Card(&buf, report); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func orEmpty(report *model.Report) *model.Report {
	if report == nil {
		return &model.Report{}
	}
	return report
}

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"winugly/internal/config"
	"winugly/internal/model"
	"winugly/internal/render"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#2BA7D1")).
			Padding(0, 2)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EE7D8D"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#86929A"))
)

func printReport(w io.Writer, opts *options, cfg *config.Config, report *model.Report) error {
	style := render.StyleFor(cfg.AI.Locale)
	md := render.Markdown(style, report)

	if opts.plain {
		fmt.Fprint(w, md)
	} else {
		fmt.Fprintln(w, bannerStyle.Render(style.Icon+" "+style.Title))
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("failed to create terminal renderer: %w", err)
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Fprint(w, out)
		if report.Partial() {
			fmt.Fprintln(w, noticeStyle.Render(partialNotice(report)))
		}
	}

	if opts.htmlPath != "" {
		if err := writeHTML(opts.htmlPath, style, cfg.UI.Export, report); err != nil {
			return err
		}
		if !opts.plain {
			fmt.Fprintln(w, mutedStyle.Render("saved "+opts.htmlPath))
		}
	}
	return nil
}

func writeHTML(path string, style render.Style, export bool, report *model.Report) error {
	renderer, err := render.New(style)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := renderer.Document(&buf, report, render.DocumentOptions{Export: export}); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func partialNotice(report *model.Report) string {
	var missing []string
	for _, o := range report.Outcomes {
		if o.Status != model.OutcomeFound {
			missing = append(missing, fmt.Sprintf("%s: %s", o.Name, o.Status))
		}
	}
	return "incomplete reply: " + strings.Join(missing, ", ")
}

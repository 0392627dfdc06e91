package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// field is one labelled value of a result.
type field struct {
	label string
	value string
}

// printer writes results either styled for a terminal or as plain text.
type printer struct {
	w      io.Writer
	styled bool
}

func newPrinter(w io.Writer, styled bool) *printer {
	return &printer{w: w, styled: styled}
}

// print writes v as indented JSON when asJSON is set, otherwise the fields.
func (p *printer) print(asJSON bool, title string, fields []field, v any) error {
	if asJSON {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return nil
	}

	_, err := fmt.Fprintln(p.w, p.render(title, fields))
	return err
}

func (p *printer) render(title string, fields []field) string {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.label))
	}

	lines := make([]string, 0, len(fields)+1)
	if !p.styled {
		lines = append(lines, title)
		for _, f := range fields {
			lines = append(lines, fmt.Sprintf("  %-*s  %s", width+1, f.label+":", f.value))
		}
		return strings.Join(lines, "\n")
	}

	lines = append(lines, titleStyle.Render(title), "")
	for _, f := range fields {
		label := labelStyle.Width(width + 2).Render(f.label + ":")
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label, valueStyle.Render(f.value)))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (p *printer) errorLine(err error) string {
	msg := "error: " + err.Error()
	if !p.styled {
		return msg
	}
	return errorStyle.Render(msg)
}

// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxRowsToShow is the default number of candidates to display
	maxRowsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most max characters, ellipsis included. Counting
// runes rather than bytes keeps multibyte names and justifications valid UTF-8.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRunSetup outputs a summary of the screening inputs before the run.
func (p *Printer) PrintRunSetup(jobChars, resumeCount int, required []string, topK int) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Job description: %d chars\n", jobChars))
	sb.WriteString(fmt.Sprintf("Resumes:         %d\n", resumeCount))
	sb.WriteString(fmt.Sprintf("LLM top-k:       %d\n", topK))

	if len(required) > 0 {
		skills := truncate(strings.Join(required, ", "), 40)
		sb.WriteString(fmt.Sprintf("Required skills: %s", skills))
	} else {
		sb.WriteString("Required skills: (derived from job text)")
	}

	p.printBox("SCREENING RUN", sb.String())
}

// PrintScreeningResults outputs the top-scored candidates with their
// component signals.
func (p *Printer) PrintScreeningResults(rows []types.ScoreRow) {
	if len(rows) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates screened: %d\n\n", len(rows)))

	count := min(len(rows), maxRowsToShow)
	for i := 0; i < count; i++ {
		row := rows[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, row.Name))
		sb.WriteString(fmt.Sprintf("    Score: %.2f (similarity %.4f)", row.FinalScore, row.Similarity))
		if row.LLMScore != nil {
			sb.WriteString(fmt.Sprintf(" (LLM: %d)", *row.LLMScore))
		}
		sb.WriteString("\n")
		if len(row.Skills) > 0 {
			skills := truncate(strings.Join(row.Skills, ", "), 40)
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(rows) > maxRowsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(rows)-maxRowsToShow))
	}

	p.printBox("SCREENING RESULTS", sb.String())
}

// PrintJustifications outputs the LLM reasoning for every judged candidate.
func (p *Printer) PrintJustifications(rows []types.ScoreRow) {
	var sb strings.Builder
	judged := 0

	for _, row := range rows {
		if row.LLMScore == nil {
			continue
		}
		if judged > 0 {
			sb.WriteString("\n")
		}
		judged++

		sb.WriteString(fmt.Sprintf("%s (LLM: %d)\n", row.Name, *row.LLMScore))
		text := row.Justification
		if text == "" {
			text = "(no justification returned)"
		}
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(text, 50)))
	}

	if judged == 0 {
		return
	}

	p.printBox("LLM JUSTIFICATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

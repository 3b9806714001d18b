package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintRunSetup(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSetup(1200, 8, []string{"go", "sql"}, 5)
	output := buf.String()

	assert.Contains(t, output, "SCREENING RUN")
	assert.Contains(t, output, "1200 chars")
	assert.Contains(t, output, "go, sql")
}

func TestPrintRunSetup_DerivedSkills(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSetup(100, 1, nil, 0)

	assert.Contains(t, buf.String(), "derived from job text")
}

func TestPrintScreeningResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	llmScore := 81
	rows := []types.ScoreRow{
		{
			Name:       "alice.txt",
			FinalScore: 84.5,
			Similarity: 0.9123,
			Skills:     []string{"go", "kubernetes"},
			LLMScore:   &llmScore,
		},
		{
			Name:       "bob.txt",
			FinalScore: 40.25,
			Similarity: 0.41,
		},
	}

	p.PrintScreeningResults(rows)
	output := buf.String()

	assert.Contains(t, output, "SCREENING RESULTS")
	assert.Contains(t, output, "alice.txt")
	assert.Contains(t, output, "84.50")
	assert.Contains(t, output, "(LLM: 81)")
	assert.Contains(t, output, "go, kubernetes")
	assert.Contains(t, output, "bob.txt")
}

func TestPrintScreeningResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScreeningResults(nil)

	assert.Empty(t, buf.String())
}

func TestPrintScreeningResults_TruncatesList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rows := make([]types.ScoreRow, 8)
	for i := range rows {
		rows[i] = types.ScoreRow{Name: "candidate", FinalScore: 50}
	}

	p.PrintScreeningResults(rows)

	assert.Contains(t, buf.String(), "and 3 more candidates")
}

func TestPrintJustifications(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	llmScore := 70
	rows := []types.ScoreRow{
		{Name: "alice.txt", LLMScore: &llmScore, Justification: "relevant background"},
		{Name: "bob.txt"},
	}

	p.PrintJustifications(rows)
	output := buf.String()

	assert.Contains(t, output, "LLM JUSTIFICATIONS")
	assert.Contains(t, output, "alice.txt (LLM: 70)")
	assert.Contains(t, output, "relevant background")
	assert.NotContains(t, output, "bob.txt")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	// Truncation counts runes, so a multibyte string is never cut mid-rune.
	long := strings.Repeat("é", 60)
	got := truncate(long, 50)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 50, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestPrintJustifications_MultibyteJustificationStaysValidUTF8(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	llmScore := 70
	rows := []types.ScoreRow{{
		Name:          "josé.txt",
		LLMScore:      &llmScore,
		Justification: strings.Repeat("très qualifié, ", 12),
	}}

	p.PrintJustifications(rows)

	assert.True(t, utf8.ValidString(buf.String()))
}

func TestPrintJustifications_NoneJudged(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJustifications([]types.ScoreRow{{Name: "bob.txt"}})

	assert.Empty(t, buf.String())
}

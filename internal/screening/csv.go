package screening

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// maxCSVSkills caps how many extracted skills appear in the skills column.
const maxCSVSkills = 10

var csvHeader = []string{"name", "final_score", "similarity", "skills", "llm_score", "justification", "raw_llm"}

// WriteCSV writes the score rows as CSV in the given order. The llm_score
// column is blank for candidates that were not judged.
func WriteCSV(w io.Writer, rows []types.ScoreRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		llmScore := ""
		if row.LLMScore != nil {
			llmScore = strconv.Itoa(*row.LLMScore)
		}

		topSkills := row.Skills
		if len(topSkills) > maxCSVSkills {
			topSkills = topSkills[:maxCSVSkills]
		}

		record := []string{
			row.Name,
			strconv.FormatFloat(row.FinalScore, 'f', 2, 64),
			strconv.FormatFloat(row.Similarity, 'f', 4, 64),
			strings.Join(topSkills, ", "),
			llmScore,
			row.Justification,
			row.RawLLM,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", row.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSV writes the result's rows as CSV.
func (r *Result) WriteCSV(w io.Writer) error {
	return WriteCSV(w, r.Rows)
}

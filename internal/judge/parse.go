// Package judge invokes an LLM to rate resume/job-description fit and
// recovers a structured judgment from whatever text the model returns.
package judge

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/types"
)

const (
	// NeutralScore is used when no score can be recovered from the model output.
	NeutralScore = 50
	// maxJustificationLen caps justification text carried into results.
	maxJustificationLen = 400
)

var (
	// jsonSpanRe greedily grabs the first-to-last brace span in the response.
	jsonSpanRe = regexp.MustCompile(`(?s)\{.*\}`)
	// labeledScoreRe matches "score: 73" style mentions, tolerating
	// punctuation between the label and the digits.
	labeledScoreRe = regexp.MustCompile(`(?i)score[:\s\-]+(\d{1,3})`)
	// bareNumberRe matches the first 1-3 digit run anywhere in the text.
	bareNumberRe = regexp.MustCompile(`\d{1,3}`)
)

// strategy attempts to recover a judgment from raw model output.
// A nil result means no match; the next strategy is tried.
type strategy func(raw string) *types.Judgment

// strategies are applied in order, first match wins. Each step is more
// permissive than the previous one, so malformed model output degrades to a
// neutral default instead of failing the pipeline.
var strategies = []strategy{
	parseStrictJSON,
	parseLabeledScore,
	parseBareNumber,
}

// Parse runs the parsing cascade over raw model output. It always produces a
// judgment; the Source field records which strategy succeeded.
func Parse(raw string) types.Judgment {
	for _, parse := range strategies {
		if judgment := parse(raw); judgment != nil {
			return *judgment
		}
	}
	return types.Judgment{
		Score:         NeutralScore,
		Justification: truncateJustification(raw),
		Raw:           raw,
		Source:        types.JudgmentSourceFallback,
	}
}

// parseStrictJSON extracts the first balanced-looking {...} span and parses it
// as a judgment object. The span must pass schema validation; otherwise the
// cascade falls through to the regex strategies. Scores are clamped to [0,100]
// like every other strategy.
func parseStrictJSON(raw string) *types.Judgment {
	span := jsonSpanRe.FindString(raw)
	if span == "" {
		return nil
	}
	if err := schemas.ValidateJudgment(span); err != nil {
		return nil
	}

	var payload struct {
		Score         *float64 `json:"score"`
		Justification string   `json:"justification"`
	}
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil
	}

	score := NeutralScore
	if payload.Score != nil {
		score = clampScore(int(*payload.Score))
	}

	return &types.Judgment{
		Score:         score,
		Justification: truncateJustification(payload.Justification),
		Raw:           raw,
		Source:        types.JudgmentSourceJSON,
	}
}

// parseLabeledScore looks for a "score: N" pattern, takes N as the score, and
// uses the response with the pattern stripped as the justification.
func parseLabeledScore(raw string) *types.Judgment {
	match := labeledScoreRe.FindStringSubmatch(raw)
	if match == nil {
		return nil
	}

	score, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}

	justification := strings.TrimSpace(labeledScoreRe.ReplaceAllString(raw, ""))
	return &types.Judgment{
		Score:         clampScore(score),
		Justification: truncateJustification(justification),
		Raw:           raw,
		Source:        types.JudgmentSourceLabeled,
	}
}

// parseBareNumber takes the first bare 1-3 digit number as the score and the
// text with that number removed as the justification.
func parseBareNumber(raw string) *types.Judgment {
	match := bareNumberRe.FindString(raw)
	if match == "" {
		return nil
	}

	score, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}

	justification := strings.TrimSpace(strings.ReplaceAll(raw, match, ""))
	return &types.Judgment{
		Score:         clampScore(score),
		Justification: truncateJustification(justification),
		Raw:           raw,
		Source:        types.JudgmentSourceBare,
	}
}

// clampScore bounds a score to [0, 100].
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// truncateJustification caps justification text at maxJustificationLen
// characters, counted in runes so multibyte text is not split.
func truncateJustification(text string) string {
	runes := []rune(text)
	if len(runes) <= maxJustificationLen {
		return text
	}
	return string(runes[:maxJustificationLen])
}

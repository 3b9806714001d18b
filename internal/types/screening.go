// Package types defines the structured records shared across the screening pipeline.
package types

// RetrievalResult is a single nearest-neighbor hit from the resume store.
// Distance is the cosine distance between the query and the stored embedding,
// so it lies in [0, 2] for unit-norm vectors.
type RetrievalResult struct {
	ID       string
	Text     string
	Metadata map[string]string
	Distance float64
}

// Similarity converts the retrieval distance into the similarity proxy used
// by the fusion policy (1 - cosine distance).
func (r RetrievalResult) Similarity() float64 {
	return 1 - r.Distance
}

// JudgmentSource identifies which parsing strategy produced a Judgment.
type JudgmentSource string

// Judgment source constants, ordered from most to least structured.
const (
	// JudgmentSourceJSON means the model returned a parseable JSON object.
	JudgmentSourceJSON JudgmentSource = "json"
	// JudgmentSourceLabeled means the score was recovered from a "score: N" pattern.
	JudgmentSourceLabeled JudgmentSource = "labeled"
	// JudgmentSourceBare means the score was recovered from a bare number in the text.
	JudgmentSourceBare JudgmentSource = "bare"
	// JudgmentSourceFallback means nothing could be parsed and the neutral default was used.
	JudgmentSourceFallback JudgmentSource = "fallback"
)

// Judgment is the structured result of one LLM relevance evaluation.
type Judgment struct {
	Score         int            // 0-100, clamped
	Justification string         // at most 400 characters
	Raw           string         // raw model output (or error text when the call failed)
	Source        JudgmentSource // which parsing strategy produced the score
}

// Defaulted reports whether the score is the neutral default rather than a
// value actually recovered from the model output.
func (j Judgment) Defaulted() bool {
	return j.Source == JudgmentSourceFallback
}

// ScoreRow is the final aggregate for one resume. Rows are computed once,
// never mutated, and sorted descending by FinalScore; ties keep the original
// retrieval order.
type ScoreRow struct {
	Name          string   `json:"name"`
	FinalScore    float64  `json:"final_score"`
	Similarity    float64  `json:"similarity"`
	Skills        []string `json:"skills"`
	LLMScore      *int     `json:"llm_score"`
	Justification string   `json:"justification,omitempty"`
	RawLLM        string   `json:"raw_llm,omitempty"`
}

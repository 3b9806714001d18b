package screening

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-screener/internal/skills"
	"github.com/jonathan/resume-screener/internal/store"
	"github.com/jonathan/resume-screener/internal/types"
)

// maxConcurrentEmbeds bounds parallel embedding calls during the index write
// phase, keeping the run under the embedding API's rate limits.
const maxConcurrentEmbeds = 8

// Validation errors returned by Run.
var (
	ErrEmptyJob  = errors.New("job description is required")
	ErrNoResumes = errors.New("at least one resume is required")
)

// Resume is one candidate document to screen.
type Resume struct {
	Name string
	Text string
}

// Request describes a screening run.
type Request struct {
	// JobText is the job description the resumes are screened against.
	JobText string
	// Resumes are the candidate documents.
	Resumes []Resume
	// RequiredSkills is the raw comma/newline/semicolon separated skill list.
	// When blank, required skills are extracted from the job text instead.
	RequiredSkills string
	// TopK is how many of the closest candidates get an LLM judgment. Zero
	// disables the judge entirely.
	TopK int
}

// Result holds the scored candidates, best first.
type Result struct {
	Rows []types.ScoreRow
}

// Judger rates one resume against a job description.
type Judger interface {
	Score(ctx context.Context, jobText, resumeText string) types.Judgment
}

// Screener wires the store, skill extractor, and judge into one pipeline.
// Runs are serialized: the store is rebuilt per run, so a concurrent run's
// Reset would otherwise drop documents between this run's index and query
// phases.
type Screener struct {
	store     *store.Store
	extractor *skills.Extractor
	judge     Judger

	mu sync.Mutex
}

// New creates a Screener. A nil judge means heuristic-only scoring.
func New(s *store.Store, extractor *skills.Extractor, judge Judger) *Screener {
	return &Screener{
		store:     s,
		extractor: extractor,
		judge:     judge,
	}
}

// Run executes a full screening pass and returns one row per resume, sorted
// by final score descending. Ties keep retrieval order.
func (s *Screener) Run(ctx context.Context, req Request) (*Result, error) {
	// 1. Validate inputs
	if strings.TrimSpace(req.JobText) == "" {
		return nil, ErrEmptyJob
	}
	if len(req.Resumes) == 0 {
		return nil, ErrNoResumes
	}

	// One run at a time: the index belongs to the current run from Reset
	// through the final query.
	s.mu.Lock()
	defer s.mu.Unlock()

	// 2. Rebuild the index from scratch for this run
	if err := s.store.Reset(ctx); err != nil {
		return nil, fmt.Errorf("failed to reset store: %w", err)
	}

	// 3. Embed and index all resumes in parallel
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEmbeds)
	for _, resume := range req.Resumes {
		resume := resume
		g.Go(func() error {
			id := resume.Name
			if id == "" {
				id = uuid.NewString()
			}
			return s.store.AddResume(gctx, id, resume.Text, map[string]string{"name": resume.Name})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to index resumes: %w", err)
	}

	// 4. Rank every resume against the job description
	results, err := s.store.Query(ctx, req.JobText, len(req.Resumes))
	if err != nil {
		return nil, fmt.Errorf("failed to rank resumes: %w", err)
	}

	// 5. Resolve the required skill set
	var required []string
	if strings.TrimSpace(req.RequiredSkills) != "" {
		required = skills.ParseRequiredSkills(req.RequiredSkills)
	} else {
		required = s.extractor.Extract(req.JobText)
	}

	// 6. Score each candidate, judging only the TopK closest
	rows := make([]types.ScoreRow, 0, len(results))
	for i, r := range results {
		name := r.Metadata["name"]
		if name == "" {
			name = fmt.Sprintf("candidate_%d", i+1)
		}

		similarity := r.Similarity()

		var llmScore *int
		var justification, rawLLM string
		if s.judge != nil && i < req.TopK {
			judgment := s.judge.Score(ctx, req.JobText, r.Text)
			score := judgment.Score
			llmScore = &score
			justification = judgment.Justification
			rawLLM = judgment.Raw
		}

		final, candidateSkills := ComputeFinalScore(similarity, r.Text, required, s.extractor, llmScore)

		rows = append(rows, types.ScoreRow{
			Name:          name,
			FinalScore:    round(final, 2),
			Similarity:    round(similarity, 4),
			Skills:        candidateSkills,
			LLMScore:      llmScore,
			Justification: justification,
			RawLLM:        rawLLM,
		})
	}

	// 7. Best candidates first, stable so ties keep retrieval order
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].FinalScore > rows[j].FinalScore
	})

	return &Result{Rows: rows}, nil
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

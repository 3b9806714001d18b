package screening

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/resume-screener/internal/skills"
	"github.com/jonathan/resume-screener/internal/store"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// letterFrequencyEmbedding is a deterministic embedder so tests never touch
// an external model.
func letterFrequencyEmbedding(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 26)
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			vec[r-'a']++
		}
	}
	var nonZero bool
	for _, v := range vec {
		if v != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		vec[0] = 1
	}
	return store.Normalize(vec), nil
}

type stubJudge struct {
	judged   []string
	judgment types.Judgment
}

func (j *stubJudge) Score(_ context.Context, _, resumeText string) types.Judgment {
	j.judged = append(j.judged, resumeText)
	return j.judgment
}

func newTestScreener(t *testing.T, judge Judger) *Screener {
	t.Helper()
	s, err := store.NewStore(letterFrequencyEmbedding)
	require.NoError(t, err)
	return New(s, skills.NewExtractor(skills.DefaultVocabulary()), judge)
}

func TestRun_Validation(t *testing.T) {
	screener := newTestScreener(t, nil)

	_, err := screener.Run(context.Background(), Request{
		JobText: "   ",
		Resumes: []Resume{{Name: "a.txt", Text: "text"}},
	})
	assert.ErrorIs(t, err, ErrEmptyJob)

	_, err = screener.Run(context.Background(), Request{JobText: "Go engineer"})
	assert.ErrorIs(t, err, ErrNoResumes)
}

func TestRun_HeuristicOnly(t *testing.T) {
	screener := newTestScreener(t, nil)

	result, err := screener.Run(context.Background(), Request{
		JobText: "python backend engineer, 5 years python and sql",
		Resumes: []Resume{
			{Name: "alice.txt", Text: "python and sql developer, 6 years experience"},
			{Name: "bob.txt", Text: "watercolor artist and muralist"},
		},
		RequiredSkills: "python, sql",
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)

	// Best candidate first, nobody judged.
	assert.Equal(t, "alice.txt", result.Rows[0].Name)
	assert.Greater(t, result.Rows[0].FinalScore, result.Rows[1].FinalScore)
	for _, row := range result.Rows {
		assert.Nil(t, row.LLMScore)
		assert.Empty(t, row.Justification)
	}

	assert.Contains(t, result.Rows[0].Skills, "python")
	assert.Contains(t, result.Rows[0].Skills, "sql")
}

func TestRun_TopKJudging(t *testing.T) {
	score := 80
	judge := &stubJudge{judgment: types.Judgment{
		Score:         score,
		Justification: "strong overlap",
		Raw:           `{"score": 80}`,
		Source:        types.JudgmentSourceJSON,
	}}
	screener := newTestScreener(t, judge)

	jobText := "golang kubernetes docker platform engineer"
	result, err := screener.Run(context.Background(), Request{
		JobText: jobText,
		Resumes: []Resume{
			{Name: "match.txt", Text: "golang kubernetes docker platform engineer"},
			{Name: "far.txt", Text: "pastry chef specializing in croissants"},
			{Name: "mid.txt", Text: "java spring backend engineer"},
		},
		TopK: 1,
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	// Exactly one candidate judged: the closest one.
	require.Len(t, judge.judged, 1)
	assert.Equal(t, jobText, judge.judged[0])

	var judgedRows int
	for _, row := range result.Rows {
		if row.LLMScore != nil {
			judgedRows++
			assert.Equal(t, "match.txt", row.Name)
			assert.Equal(t, score, *row.LLMScore)
			assert.Equal(t, "strong overlap", row.Justification)
			assert.Equal(t, `{"score": 80}`, row.RawLLM)
		}
	}
	assert.Equal(t, 1, judgedRows)
}

func TestRun_ZeroTopKSkipsJudge(t *testing.T) {
	judge := &stubJudge{judgment: types.Judgment{Score: 99}}
	screener := newTestScreener(t, judge)

	result, err := screener.Run(context.Background(), Request{
		JobText: "Go engineer",
		Resumes: []Resume{{Name: "a.txt", Text: "go engineer"}},
		TopK:    0,
	})
	require.NoError(t, err)

	assert.Empty(t, judge.judged)
	assert.Nil(t, result.Rows[0].LLMScore)
}

func TestRun_UnnamedResumeGetsPlaceholder(t *testing.T) {
	screener := newTestScreener(t, nil)

	result, err := screener.Run(context.Background(), Request{
		JobText: "Go engineer",
		Resumes: []Resume{{Name: "", Text: "go engineer"}},
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	assert.Equal(t, "candidate_1", result.Rows[0].Name)
}

func TestRun_RequiredSkillsDerivedFromJob(t *testing.T) {
	screener := newTestScreener(t, nil)

	// No explicit required skills: the job text mentions python, so a resume
	// with python outranks one without it even at similar distance.
	result, err := screener.Run(context.Background(), Request{
		JobText: "we need a python engineer",
		Resumes: []Resume{
			{Name: "haspython.txt", Text: "python engineer here"},
			{Name: "nopython.txt", Text: "engineer here for you"},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)

	assert.Equal(t, "haspython.txt", result.Rows[0].Name)
}

func TestRun_ConcurrentRunsDoNotInterfere(t *testing.T) {
	screener := newTestScreener(t, nil)

	// Every run rebuilds the shared index, so concurrent runs must be
	// serialized: each result may only contain that run's own candidates.
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()

			prefix := fmt.Sprintf("run%d-", g)
			result, err := screener.Run(context.Background(), Request{
				JobText: "python backend engineer",
				Resumes: []Resume{
					{Name: prefix + "a.txt", Text: "python developer"},
					{Name: prefix + "b.txt", Text: "sql analyst"},
					{Name: prefix + "c.txt", Text: "street performer"},
				},
			})
			if !assert.NoError(t, err) {
				return
			}
			if !assert.Len(t, result.Rows, 3) {
				return
			}
			for _, row := range result.Rows {
				assert.True(t, strings.HasPrefix(row.Name, prefix),
					"row %q leaked into run %d", row.Name, g)
			}
		}()
	}
	wg.Wait()
}

func TestRun_RoundsScores(t *testing.T) {
	screener := newTestScreener(t, nil)

	result, err := screener.Run(context.Background(), Request{
		JobText: "python backend engineer with sql",
		Resumes: []Resume{{Name: "a.txt", Text: "python developer, 3 years sql"}},
	})
	require.NoError(t, err)

	row := result.Rows[0]
	assert.InDelta(t, row.FinalScore, round(row.FinalScore, 2), 1e-12)
	assert.InDelta(t, row.Similarity, round(row.Similarity, 4), 1e-12)
	assert.GreaterOrEqual(t, row.FinalScore, float64(0))
	assert.LessOrEqual(t, row.FinalScore, float64(100))
}

package judge

import (
	"context"
	"time"

	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/jonathan/resume-screener/internal/prompts"
	"github.com/jonathan/resume-screener/internal/types"
)

// RetryPolicy bounds retries around the external model call.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt, so the
	// total attempt count is MaxRetries+1.
	MaxRetries int
	// Wait is the pause between attempts.
	Wait time.Duration
	// Sleep is the delay function; nil means time.Sleep. Tests inject a
	// recording function to avoid real waits.
	Sleep func(time.Duration)
}

// DefaultRetryPolicy returns the retry policy used for screening runs.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		Wait:       time.Second,
	}
}

// Judge scores resumes against a job description via an LLM.
type Judge struct {
	client   llm.Client
	policy   RetryPolicy
	template string
}

// New creates a Judge using the embedded scoring prompt template.
func New(client llm.Client, policy RetryPolicy) *Judge {
	return &Judge{
		client:   client,
		policy:   policy,
		template: prompts.MustGet("scoring.json", "judge-candidate-fit"),
	}
}

// Score asks the model to rate the candidate and parses the response. It
// never returns an error: transport failures are retried up to the policy
// bound and then degrade to the neutral score with the error text recorded as
// the raw output, so callers never have to handle a hard failure.
func (j *Judge) Score(ctx context.Context, jobText, resumeText string) types.Judgment {
	prompt := prompts.Format(j.template, map[string]string{
		"JobDescription": jobText,
		"Resume":         resumeText,
	})

	sleep := j.policy.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	lastRaw := ""
	for attempt := 0; attempt <= j.policy.MaxRetries; attempt++ {
		raw, err := j.client.GenerateContent(ctx, prompt, llm.TierLite)
		if err != nil {
			lastRaw = "[LLM error] " + err.Error()
			sleep(j.policy.Wait)
			continue
		}
		// Models sometimes fence the JSON in a markdown block; strip it
		// before parsing.
		return Parse(llm.CleanJSONBlock(raw))
	}

	return types.Judgment{
		Score:         NeutralScore,
		Justification: truncateJustification(lastRaw),
		Raw:           lastRaw,
		Source:        types.JudgmentSourceFallback,
	}
}

// Package screening orchestrates the resume screening pipeline: it indexes
// resumes, ranks them by similarity to the job description, extracts skill and
// experience signals, optionally asks an LLM judge for an opinion, and fuses
// everything into a single final score per candidate.
package screening

import (
	"github.com/jonathan/resume-screener/internal/experience"
	"github.com/jonathan/resume-screener/internal/skills"
)

// Weight sets for fusing component scores. When an LLM score is present, the
// heuristic blend is first computed with the judged weights and then mixed
// with the LLM score at weightLLM.
const (
	weightSimHeuristic   = 0.55
	weightSkillHeuristic = 0.35
	weightExpHeuristic   = 0.10

	weightSimJudged   = 0.35
	weightSkillJudged = 0.35
	weightExpJudged   = 0.15
	weightLLM         = 0.15
)

// experienceScore maps years of experience onto a 0-100 scale, saturating at
// ten years.
func experienceScore(text string) float64 {
	score := experience.ExtractYears(text) * 10
	if score > 100 {
		score = 100
	}
	return float64(score)
}

// ComputeFinalScore fuses similarity, skill overlap, and experience into a
// 0-100 score, optionally blended with an LLM judgment. It returns the final
// score together with the skills extracted from the resume.
func ComputeFinalScore(similarity float64, resumeText string, required []string, extractor *skills.Extractor, llmScore *int) (float64, []string) {
	candidateSkills := extractor.Extract(resumeText)
	skillScore := float64(skills.Overlap(required, candidateSkills))
	expScore := experienceScore(resumeText)
	simScore := similarity * 100

	wSim, wSkill, wExp := weightSimHeuristic, weightSkillHeuristic, weightExpHeuristic
	if llmScore != nil {
		wSim, wSkill, wExp = weightSimJudged, weightSkillJudged, weightExpJudged
	}

	score := wSim*simScore + wSkill*skillScore + wExp*expScore
	if llmScore != nil {
		score = score*(1-weightLLM) + float64(*llmScore)*weightLLM
	}

	return score, candidateSkills
}

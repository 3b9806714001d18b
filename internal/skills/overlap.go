package skills

import (
	"regexp"
	"strings"
)

// NeutralOverlapScore is returned when no required skills were specified, so
// candidates are not penalized for an empty requirement set.
const NeutralOverlapScore = 50

var requiredSkillSeparatorRe = regexp.MustCompile(`[,\n;]+`)

// ParseRequiredSkills splits a user-supplied required-skills string on commas,
// semicolons, and newlines, trimming and lowercasing each entry and dropping
// empties.
func ParseRequiredSkills(raw string) []string {
	parts := requiredSkillSeparatorRe.Split(raw, -1)
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

// Overlap returns the percentage (0-100) of required skills present in the
// candidate set. An empty required set scores the neutral 50.
func Overlap(required, candidate []string) int {
	if len(required) == 0 {
		return NeutralOverlapScore
	}

	requiredSet := make(map[string]bool, len(required))
	for _, skill := range required {
		requiredSet[strings.ToLower(skill)] = true
	}

	candidateSet := make(map[string]bool, len(candidate))
	for _, skill := range candidate {
		candidateSet[strings.ToLower(skill)] = true
	}

	matched := 0
	for skill := range requiredSet {
		if candidateSet[skill] {
			matched++
		}
	}

	return matched * 100 / len(requiredSet)
}

// Package experience provides heuristic extraction of claimed years of
// experience from resume text.
package experience

import (
	"regexp"
	"strconv"
)

// yearsRe matches a 1-2 digit integer followed by a year unit, e.g.
// "7 years", "3 Year", "12 yrs".
var yearsRe = regexp.MustCompile(`(?i)(\d{1,2})\s+(?:years?|yrs)`)

// ExtractYears returns the maximum "N years" mention found in text, or 0 when
// there is none. This is an upper bound on claimed experience, not a parsed
// employment history.
func ExtractYears(text string) int {
	maxYears := 0
	for _, match := range yearsRe.FindAllStringSubmatch(text, -1) {
		years, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if years > maxYears {
			maxYears = years
		}
	}
	return maxYears
}

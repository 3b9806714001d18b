package experience

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractYears_NoMention(t *testing.T) {
	assert.Equal(t, 0, ExtractYears("Senior engineer with broad experience"))
	assert.Equal(t, 0, ExtractYears(""))
}

func TestExtractYears_SingleMention(t *testing.T) {
	assert.Equal(t, 5, ExtractYears("5 years of backend development"))
}

func TestExtractYears_MaxOfMultipleMentions(t *testing.T) {
	assert.Equal(t, 7, ExtractYears("3 years with Python... 7 yrs in data engineering"))
}

func TestExtractYears_CaseInsensitiveUnits(t *testing.T) {
	assert.Equal(t, 4, ExtractYears("4 Years at Acme"))
	assert.Equal(t, 2, ExtractYears("2 YRS consulting"))
	assert.Equal(t, 1, ExtractYears("1 year internship"))
}

func TestExtractYears_RequiresWhitespaceBeforeUnit(t *testing.T) {
	// "10years" has no separator and is not counted by the heuristic.
	assert.Equal(t, 0, ExtractYears("10years of experience"))
}

func TestExtractYears_TwoDigitCap(t *testing.T) {
	// Only 1-2 digit numbers are considered; "100 years" matches as "00 years".
	assert.Equal(t, 12, ExtractYears("12 years leading teams"))
}

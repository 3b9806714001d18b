package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompt(t *testing.T) {
	prompt, err := Get("scoring.json", "judge-candidate-fit")

	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.JobDescription}}")
	assert.Contains(t, prompt, "{{.Resume}}")
	assert.Contains(t, prompt, "return JSON only")
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("scoring.json", "does-not-exist")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nope.json", "judge-candidate-fit")

	require.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("scoring.json", "does-not-exist")
	})
}

func TestFormat(t *testing.T) {
	template := "Job:\n{{.JobDescription}}\nResume:\n{{.Resume}}"

	result := Format(template, map[string]string{
		"JobDescription": "Build Go services",
		"Resume":         "10 years of Go",
	})

	assert.Equal(t, "Job:\nBuild Go services\nResume:\n10 years of Go", result)
	assert.False(t, strings.Contains(result, "{{"))
}

package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedding maps text to a letter-frequency vector. It is deterministic,
// so identical texts always land at distance zero from each other.
func fakeEmbedding(_ context.Context, text string) ([]float32, error) {
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
	return Normalize(vec), nil
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(fakeEmbedding)
	require.NoError(t, err)
	return s
}

func TestNewStore_RequiresEmbedder(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestQuery_SameTextIsClosest(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddResume(ctx, "r1", "golang kubernetes docker", map[string]string{"name": "alice"}))
	require.NoError(t, s.AddResume(ctx, "r2", "painting sculpture pottery", nil))
	require.NoError(t, s.AddResume(ctx, "r3", "accounting audit tax", nil))

	results, err := s.Query(ctx, "golang kubernetes docker", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "r1", results[0].ID)
	assert.InDelta(t, 0, results[0].Distance, 1e-6)
	assert.InDelta(t, 1, results[0].Similarity(), 1e-6)
	assert.Equal(t, "alice", results[0].Metadata["name"])

	// Ordered closest-first.
	assert.LessOrEqual(t, results[0].Distance, results[1].Distance)
	assert.LessOrEqual(t, results[1].Distance, results[2].Distance)
}

func TestQuery_ClampsToIndexedCount(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddResume(ctx, "r1", "go engineer", nil))
	require.NoError(t, s.AddResume(ctx, "r2", "java engineer", nil))

	results, err := s.Query(ctx, "go engineer", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestQuery_EmptyIndex(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	results, err := s.Query(ctx, "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQuery_NonPositiveN(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.AddResume(ctx, "r1", "go engineer", nil))

	results, err := s.Query(ctx, "go engineer", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAddResume_DuplicateIDReplaces(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddResume(ctx, "r1", "python developer", nil))
	require.NoError(t, s.AddResume(ctx, "r1", "go developer", nil))

	assert.Equal(t, 1, s.Count())

	results, err := s.Query(ctx, "go developer", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "go developer", results[0].Text)
}

func TestAddResume_RequiresID(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.AddResume(context.Background(), "", "text", nil))
}

func TestReset_ClearsIndex(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddResume(ctx, "r1", "go engineer", nil))
	require.Equal(t, 1, s.Count())

	require.NoError(t, s.Reset(ctx))
	assert.Equal(t, 0, s.Count())

	// Usable again after the reset.
	require.NoError(t, s.AddResume(ctx, "r2", "go engineer", nil))
	results, err := s.Query(ctx, "go engineer", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "r2", results[0].ID)
}

func TestNormalize(t *testing.T) {
	vec := Normalize([]float32{3, 4})
	assert.InDelta(t, 0.6, vec[0], 1e-6)
	assert.InDelta(t, 0.8, vec[1], 1e-6)

	zero := Normalize([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, zero)
}

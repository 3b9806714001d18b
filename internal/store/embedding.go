package store

import (
	"context"
	"fmt"
	"math"

	"github.com/jonathan/resume-screener/internal/llm"
)

// Normalize scales a vector to unit L2 norm. Zero vectors are returned
// unchanged since they cannot be normalized.
func Normalize(vec []float32) []float32 {
	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return vec
	}

	norm := float32(math.Sqrt(sumSquares))
	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = v / norm
	}
	return normalized
}

// EmbedderFromClient adapts an llm.Client into the store's EmbeddingFunc,
// normalizing every vector to unit L2 norm before it is stored or queried.
func EmbedderFromClient(client llm.Client) EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		// The embedding API rejects empty input, but an empty resume (e.g. a
		// failed document parse) must still get indexed and scored.
		if text == "" {
			text = " "
		}

		vec, err := client.EmbedText(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding request failed: %w", err)
		}

		return Normalize(vec), nil
	}
}

// Package store provides the embedding index used to rank resumes by
// similarity to a job description. It wraps an in-process chromem-go
// collection behind an injected embedding function, so tests can substitute
// deterministic fakes for the external embedding model.
package store

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/jonathan/resume-screener/internal/types"
)

// DefaultCollectionName is the collection resumes are indexed under.
const DefaultCollectionName = "resumes"

// EmbeddingFunc turns text into a fixed-dimension vector. Implementations
// must be deterministic and return unit-L2 vectors so that the cosine
// distance reported by Query is meaningful.
type EmbeddingFunc func(ctx context.Context, text string) ([]float32, error)

// Store is a per-run resume index. Writes happen during the population phase;
// queries only start once the index is fully populated, so readers never race
// writers.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	embed      EmbeddingFunc
	name       string
}

// Option configures a Store.
type Option func(*Store)

// WithCollectionName overrides the collection name.
func WithCollectionName(name string) Option {
	return func(s *Store) {
		s.name = name
	}
}

// NewStore creates a Store over an in-memory chromem-go database using the
// given embedding function.
func NewStore(embed EmbeddingFunc, opts ...Option) (*Store, error) {
	if embed == nil {
		return nil, fmt.Errorf("embedding function is required")
	}

	s := &Store{
		db:    chromem.NewDB(),
		embed: embed,
		name:  DefaultCollectionName,
	}
	for _, opt := range opts {
		opt(s)
	}

	collection, err := s.db.GetOrCreateCollection(s.name, nil, chromem.EmbeddingFunc(s.embed))
	if err != nil {
		return nil, fmt.Errorf("failed to create collection %s: %w", s.name, err)
	}
	s.collection = collection

	return s, nil
}

// Reset drops the collection and recreates it empty. It is invoked once at
// the start of each screening run and must complete before any AddResume
// call, so stale documents never leak across runs.
func (s *Store) Reset(_ context.Context) error {
	if err := s.db.DeleteCollection(s.name); err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", s.name, err)
	}

	collection, err := s.db.GetOrCreateCollection(s.name, nil, chromem.EmbeddingFunc(s.embed))
	if err != nil {
		return fmt.Errorf("failed to recreate collection %s: %w", s.name, err)
	}
	s.collection = collection

	return nil
}

// AddResume embeds one resume and inserts it into the index. Adding a
// duplicate id replaces the previous document.
func (s *Store) AddResume(ctx context.Context, id, text string, metadata map[string]string) error {
	if id == "" {
		return fmt.Errorf("resume id is required")
	}

	embedding, err := s.embed(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed resume %s: %w", id, err)
	}

	doc := chromem.Document{
		ID:        id,
		Metadata:  metadata,
		Embedding: embedding,
		Content:   text,
	}
	if err := s.collection.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to index resume %s: %w", id, err)
	}

	return nil
}

// Query embeds the query text and returns up to n results ordered by
// ascending cosine distance (closest first). When the index holds fewer than
// n documents, all of them are returned.
func (s *Store) Query(ctx context.Context, text string, n int) ([]types.RetrievalResult, error) {
	if n <= 0 {
		return nil, nil
	}

	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if n > count {
		n = count
	}

	queryEmbedding, err := s.embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := s.collection.QueryEmbedding(ctx, queryEmbedding, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	results := make([]types.RetrievalResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, types.RetrievalResult{
			ID:       hit.ID,
			Text:     hit.Content,
			Metadata: hit.Metadata,
			// chromem-go reports cosine similarity; the pipeline works in
			// cosine distance, so convert here and nowhere else.
			Distance: 1 - float64(hit.Similarity),
		})
	}

	return results, nil
}

// Count returns the number of indexed resumes.
func (s *Store) Count() int {
	return s.collection.Count()
}

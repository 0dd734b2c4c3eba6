package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/duttanayan/LLM-pdf-summmarizer/internal/domain"
)

// Store is an in-memory vector store using brute-force cosine similarity.
// It holds one document at a time; Clear drops everything before the next
// ingestion. Entries keep insertion order, which breaks similarity ties.
type Store struct {
	mu        sync.RWMutex
	embedder  domain.Embedder
	dimension int
	entries   []domain.Chunk
	byID      map[string]int
}

// New creates an empty store backed by the given embedder.
func New(embedder domain.Embedder) *Store {
	return &Store{embedder: embedder, byID: make(map[string]int)}
}

// Add stores the chunks, embedding any that arrive without a vector.
// Re-adding an existing chunk ID overwrites it in place.
func (s *Store) Add(ctx context.Context, chunks []domain.Chunk) error {
	// Embed outside the lock; nothing else mutates pending chunks.
	for i := range chunks {
		if len(chunks[i].Embedding) > 0 {
			continue
		}
		vec, err := s.embedder.Embed(ctx, chunks[i].Text)
		if err != nil {
			return fmt.Errorf("embedding chunk %s: %w", chunks[i].ID, err)
		}
		chunks[i].Embedding = vec
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range chunks {
		if s.dimension == 0 {
			s.dimension = len(ch.Embedding)
		}
		if len(ch.Embedding) != s.dimension {
			return fmt.Errorf("chunk %s: embedding dimension %d, store expects %d",
				ch.ID, len(ch.Embedding), s.dimension)
		}
		if idx, ok := s.byID[ch.ID]; ok {
			s.entries[idx] = ch
			continue
		}
		s.byID[ch.ID] = len(s.entries)
		s.entries = append(s.entries, ch)
	}
	return nil
}

// Search embeds the query and returns up to k chunks ranked by descending
// cosine similarity. Ties keep insertion order, earliest first. An empty
// store yields an empty result without calling the embedder.
func (s *Store) Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("invalid k %d", k)
	}
	s.mu.RLock()
	n := len(s.entries)
	s.mu.RUnlock()
	if n == 0 {
		return []domain.SearchResult{}, nil
	}

	qvec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]domain.SearchResult, len(s.entries))
	for i, ch := range s.entries {
		results[i] = domain.SearchResult{Chunk: ch, Score: cosineSimilarity(qvec, ch.Embedding)}
	}
	// Stable sort preserves insertion order among equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Clear removes all entries. Must run before ingesting a new document so
// context from the prior one cannot leak into answers.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.byID = make(map[string]int)
	s.dimension = 0
}

// Len reports the number of stored chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

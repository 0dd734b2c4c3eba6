package chunker

import (
	"fmt"
	"strings"

	"github.com/duttanayan/LLM-pdf-summmarizer/internal/domain"
)

// CharChunker splits page texts into overlapping fixed-size character windows.
// Windows are measured in runes so multibyte characters are never split.
type CharChunker struct {
	size    int
	overlap int
}

// New creates a CharChunker. Zero or negative parameters fall back to the
// defaults (1000, 200); an overlap at or above the size is reduced.
func New(size, overlap int) *CharChunker {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 5
	}
	return &CharChunker{size: size, overlap: overlap}
}

// Split produces chunk candidates from the given pages, in page order.
// Deterministic: the same pages and parameters always yield the same sequence.
func (c *CharChunker) Split(pages []domain.Page) []domain.Chunk {
	var chunks []domain.Chunk
	for _, p := range pages {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		runes := []rune(text)
		step := c.size - c.overlap
		idx := 0
		for start := 0; start < len(runes); start += step {
			end := start + c.size
			if end > len(runes) {
				end = len(runes)
			}
			chunks = append(chunks, domain.Chunk{
				ID:         chunkID(p.Number, idx),
				Text:       string(runes[start:end]),
				SourcePage: p.Number,
			})
			idx++
			if end == len(runes) {
				break
			}
		}
	}
	return chunks
}

// Size reports the configured window size in runes.
func (c *CharChunker) Size() int { return c.size }

// Overlap reports the configured window overlap in runes.
func (c *CharChunker) Overlap() int { return c.overlap }

func chunkID(page, idx int) string {
	return fmt.Sprintf("page%d:%d", page, idx)
}

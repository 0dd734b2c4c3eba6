package domain

import (
	"context"
	"errors"
)

// Page is one page of an uploaded document, in source order.
type Page struct {
	Number int
	Text   string
}

// Chunk is a bounded segment of document text used for retrieval indexing.
type Chunk struct {
	ID         string
	Text       string
	SourcePage int
	Embedding  []float32
}

// SearchResult is a matching chunk with its cosine similarity score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is one message in the conversation log.
type Turn struct {
	Role    Role
	Content string
}

// Embedder converts text into fixed-dimension vectors via an external model.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer produces an answer from an ordered sequence of role-tagged turns.
type Completer interface {
	Complete(ctx context.Context, turns []Turn) (string, error)
}

// Chunker splits page texts into chunk candidates for indexing.
type Chunker interface {
	Split(pages []Page) []Chunk
}

// DocumentLoader extracts page texts from a raw document byte stream.
type DocumentLoader interface {
	Load(data []byte) ([]Page, error)
}

// VectorStore holds embedded chunks and supports k-nearest retrieval.
// One document at a time: Clear must be called before indexing a new one.
type VectorStore interface {
	Add(ctx context.Context, chunks []Chunk) error
	Search(ctx context.Context, query string, k int) ([]SearchResult, error)
	Clear()
	Len() int
}

// MessageLog is the ordered, append-only conversation transcript.
type MessageLog interface {
	Append(t Turn)
	Turns() []Turn
}

// AuthGate reports whether the current session may issue queries.
type AuthGate interface {
	LoggedIn() bool
	CurrentUser() string
}

var (
	// ErrInvalidPDF means the uploaded bytes are not a readable PDF.
	ErrInvalidPDF = errors.New("not a valid PDF document")
	// ErrNoText means the PDF parsed but contained no extractable text.
	ErrNoText = errors.New("no text extracted from document")
	// ErrEmptyInput rejects embedding requests for empty strings.
	ErrEmptyInput = errors.New("cannot embed empty text")
	// ErrServiceUnavailable wraps transport failures against the model endpoint.
	ErrServiceUnavailable = errors.New("model service unavailable")
	// ErrNoDocument means a query arrived before any successful ingestion.
	ErrNoDocument = errors.New("no document uploaded yet")
)

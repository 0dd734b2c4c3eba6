// Package service implements the two assistant modes on top of the domain
// interfaces: the document analyzer (retrieval-augmented question answering)
// and the code companion (conversation-chained chat).
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/duttanayan/LLM-pdf-summmarizer/internal/domain"
	"github.com/duttanayan/LLM-pdf-summmarizer/internal/prompt"
)

// NoDocumentMessage is returned for queries issued before a document has
// been successfully ingested. The completion service is not called.
const NoDocumentMessage = "Please upload a document first"

// WarningPrefix marks answers that are actually contained generation
// failures. Failures never propagate past the service boundary.
const WarningPrefix = "⚠️ Error generating response: "

// ErrNotLoggedIn rejects operations issued without an authenticated session.
var ErrNotLoggedIn = errors.New("not logged in")

// Analyzer is the document question-answering mode. It owns the ingestion
// path (load, chunk, embed, store) and the query path (retrieve, assemble
// context, generate).
type Analyzer struct {
	gate      domain.AuthGate
	loader    domain.DocumentLoader
	chunker   domain.Chunker
	embedder  domain.Embedder
	store     domain.VectorStore
	completer domain.Completer
	log       domain.MessageLog
	topK      int
	logFailed bool
	ready     bool
}

// AnalyzerConfig wires an Analyzer's collaborators and knobs.
type AnalyzerConfig struct {
	Gate      domain.AuthGate
	Loader    domain.DocumentLoader
	Chunker   domain.Chunker
	Embedder  domain.Embedder
	Store     domain.VectorStore
	Completer domain.Completer
	Log       domain.MessageLog
	TopK      int
	// LogFailedGenerations appends contained generation failures to the
	// transcript as assistant turns.
	LogFailedGenerations bool
}

// NewAnalyzer creates the document analyzer service.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 3
	}
	return &Analyzer{
		gate:      cfg.Gate,
		loader:    cfg.Loader,
		chunker:   cfg.Chunker,
		embedder:  cfg.Embedder,
		store:     cfg.Store,
		completer: cfg.Completer,
		log:       cfg.Log,
		topK:      topK,
		logFailed: cfg.LogFailedGenerations,
	}
}

// DocumentReady reports whether a document has been ingested.
func (a *Analyzer) DocumentReady() bool { return a.ready }

// IngestPDF replaces the current document: extract pages, chunk, embed,
// then clear the store and index the new chunks. Any failure before the
// clear leaves the prior document's index untouched. Returns the number of
// chunks indexed.
func (a *Analyzer) IngestPDF(ctx context.Context, data []byte) (int, error) {
	if !a.gate.LoggedIn() {
		return 0, ErrNotLoggedIn
	}
	pages, err := a.loader.Load(data)
	if err != nil {
		return 0, err
	}
	chunks := a.chunker.Split(pages)
	if len(chunks) == 0 {
		return 0, domain.ErrNoText
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	vecs, err := a.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding document: %w", err)
	}
	for i := range chunks {
		chunks[i].Embedding = vecs[i]
	}

	// One document at a time: drop the prior index only once the new
	// document has embedded cleanly.
	a.store.Clear()
	if err := a.store.Add(ctx, chunks); err != nil {
		a.ready = false
		return 0, fmt.Errorf("indexing document: %w", err)
	}
	a.ready = true
	return len(chunks), nil
}

// Ask answers a question about the ingested document. Before any successful
// ingestion it returns NoDocumentMessage without touching the completion
// service. Retrieval failures are returned as errors and do not corrupt the
// transcript; generation failures are contained as warning-prefixed answers.
func (a *Analyzer) Ask(ctx context.Context, query string) (string, error) {
	if !a.gate.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	if !a.ready || a.store.Len() == 0 {
		return NoDocumentMessage, nil
	}

	results, err := a.store.Search(ctx, query, a.topK)
	if err != nil {
		return "", err
	}
	contextBlock := AssembleContext(results)
	request := prompt.AnalyzerPrompt(contextBlock, query)

	a.log.Append(domain.Turn{Role: domain.RoleUser, Content: query})
	answer, err := a.completer.Complete(ctx, []domain.Turn{
		{Role: domain.RoleUser, Content: request},
	})
	if err != nil {
		answer = WarningPrefix + err.Error()
		if a.logFailed {
			a.log.Append(domain.Turn{Role: domain.RoleAssistant, Content: answer})
		}
		return answer, nil
	}
	a.log.Append(domain.Turn{Role: domain.RoleAssistant, Content: answer})
	return answer, nil
}

// AssembleContext concatenates retrieved chunk texts in ranked order,
// newline separated, forming the context block for the analyzer template.
func AssembleContext(results []domain.SearchResult) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.Chunk.Text
	}
	return strings.Join(parts, "\n")
}

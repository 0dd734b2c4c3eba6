package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/duttanayan/LLM-pdf-summmarizer/internal/domain"
)

func newTestClient(baseURL string) *Client {
	return New(Config{
		BaseURL:     baseURL,
		APIKeyEnv:   "TEST_LLM_KEY",
		ChatModel:   "test-chat",
		EmbedModel:  "test-embed",
		Temperature: 0.3,
		Timeout:     5 * time.Second,
	})
}

func embeddingsHandler(t *testing.T, vectors [][]float32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/embeddings") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		type datum struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		data := make([]datum, len(vectors))
		for i, v := range vectors {
			data[i] = datum{Object: "embedding", Embedding: v, Index: i}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  "test-embed",
		})
	}
}

func TestEmbed(t *testing.T) {
	server := httptest.NewServer(embeddingsHandler(t, [][]float32{{0.1, 0.2, 0.3}}))
	defer server.Close()

	c := newTestClient(server.URL)
	vec, err := c.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("expected 3 dims, got %d", len(vec))
	}
	if c.Dimension() != 3 {
		t.Errorf("dimension not recorded: %d", c.Dimension())
	}
}

func TestEmbedBatch(t *testing.T) {
	server := httptest.NewServer(embeddingsHandler(t, [][]float32{{0.1}, {0.2}, {0.3}}))
	defer server.Close()

	c := newTestClient(server.URL)
	vecs, err := c.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(vecs) != 3 {
		t.Errorf("expected 3 vectors, got %d", len(vecs))
	}
}

func TestEmbed_EmptyInputRejectedBeforeNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if _, err := c.Embed(context.Background(), "   "); !errors.Is(err, domain.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := c.EmbedBatch(context.Background(), []string{"ok", ""}); !errors.Is(err, domain.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if called {
		t.Error("empty input must not reach the service")
	}
}

func TestEmbed_ServiceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	c := newTestClient(server.URL)
	_, err := c.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestEmbed_CountMismatch(t *testing.T) {
	server := httptest.NewServer(embeddingsHandler(t, [][]float32{{0.1}}))
	defer server.Close()

	c := newTestClient(server.URL)
	if _, err := c.EmbedBatch(context.Background(), []string{"a", "b"}); err == nil {
		t.Error("expected error when vector count does not match input count")
	}
}

func TestComplete(t *testing.T) {
	var gotBody struct {
		Model       string  `json:"model"`
		Temperature float32 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "  The answer.  "},
				"finish_reason": "stop",
			}},
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	turns := []domain.Turn{
		{Role: domain.RoleSystem, Content: "be brief"},
		{Role: domain.RoleUser, Content: "what is Go?"},
	}
	answer, err := c.Complete(context.Background(), turns)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if answer != "The answer." {
		t.Errorf("answer not trimmed: %q", answer)
	}
	if gotBody.Model != "test-chat" {
		t.Errorf("model %q", gotBody.Model)
	}
	if gotBody.Temperature != 0.3 {
		t.Errorf("temperature %v, want 0.3", gotBody.Temperature)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Role != "user" {
		t.Errorf("messages not mapped in order: %+v", gotBody.Messages)
	}
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "cmpl-2", "object": "chat.completion", "choices": []any{}})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if _, err := c.Complete(context.Background(), []domain.Turn{{Role: domain.RoleUser, Content: "hi"}}); err == nil {
		t.Error("expected error for empty choices")
	}
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/duttanayan/LLM-pdf-summmarizer/internal/domain"
)

// Client talks to a local OpenAI-compatible endpoint (LM Studio, Ollama)
// for both chat completion and embeddings. It performs no retries; callers
// decide whether a failed call is worth repeating.
type Client struct {
	api         *openai.Client
	chatModel   string
	embedModel  string
	temperature float32
	dimension   int
}

// Config configures the model client.
type Config struct {
	BaseURL     string
	APIKeyEnv   string
	ChatModel   string
	EmbedModel  string
	Temperature float32
	Timeout     time.Duration
}

// New creates a client for the configured local endpoint. Local runtimes
// usually ignore the API key, so a missing one is not an error.
func New(cfg Config) *Client {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		key = "not-needed"
	}
	oaiCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		oaiCfg.BaseURL = cfg.BaseURL
	}
	oaiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	embedModel := cfg.EmbedModel
	if embedModel == "" {
		embedModel = cfg.ChatModel
	}
	return &Client{
		api:         openai.NewClientWithConfig(oaiCfg),
		chatModel:   cfg.ChatModel,
		embedModel:  embedModel,
		temperature: cfg.Temperature,
	}
}

// Embed returns the embedding vector for a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch embeds several texts in one request. All texts must be non-empty.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, domain.ErrEmptyInput
	}
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, domain.ErrEmptyInput
		}
	}
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.embedModel),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding service returned %d vectors for %d inputs", len(resp.Data), len(texts))
	}
	vecs := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		if len(d.Embedding) == 0 {
			return nil, errors.New("embedding service returned an empty vector")
		}
		vecs[i] = d.Embedding
	}
	if c.dimension == 0 {
		c.dimension = len(vecs[0])
	}
	return vecs, nil
}

// Dimension reports the vector dimensionality observed for the configured
// embedding model, or 0 before the first successful call.
func (c *Client) Dimension() int { return c.dimension }

// Complete sends the ordered turns to the chat model and returns its answer.
func (c *Client) Complete(ctx context.Context, turns []domain.Turn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, len(turns))
	for i, t := range turns {
		messages[i] = openai.ChatCompletionMessage{
			Role:    string(t.Role),
			Content: t.Content,
		}
	}
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    messages,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion service returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

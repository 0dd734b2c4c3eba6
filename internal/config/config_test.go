package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chunker.Size != 1000 || cfg.Chunker.Overlap != 200 {
		t.Errorf("chunker defaults wrong: %+v", cfg.Chunker)
	}
	if cfg.Retrieval.TopK != 3 {
		t.Errorf("top_k default wrong: %d", cfg.Retrieval.TopK)
	}
	if cfg.LLM.Temperature != 0.3 {
		t.Errorf("temperature default wrong: %v", cfg.LLM.Temperature)
	}
	if !cfg.LogFailedGenerations {
		t.Error("failed generations should be logged by default")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &AppConfig{
		LLM: LLMConfig{
			BaseURL:     "http://localhost:1234/v1",
			APIKeyEnv:   "MY_KEY",
			ChatModel:   "gemma",
			EmbedModel:  "nomic-embed-text",
			Temperature: 0.7,
			TimeoutSecs: 60,
		},
		Chunker:              ChunkerConfig{Size: 500, Overlap: 50},
		Retrieval:            RetrievalConfig{TopK: 5},
		Auth:                 AuthConfig{UsersFile: "u.json"},
		LogFailedGenerations: true,
	}
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "llm:\n  chat_model: custom-model\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.ChatModel != "custom-model" {
		t.Errorf("explicit value lost: %q", cfg.LLM.ChatModel)
	}
	if cfg.LLM.EmbedModel != "custom-model" {
		t.Errorf("embed model should default to the chat model, got %q", cfg.LLM.EmbedModel)
	}
	if cfg.Chunker.Size != 1000 {
		t.Errorf("chunker size default missing: %d", cfg.Chunker.Size)
	}
}

func TestLoad_OverlapClampedBelowSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	bad := "chunker:\n  size: 100\n  overlap: 150\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chunker.Overlap >= cfg.Chunker.Size {
		t.Errorf("overlap %d not clamped below size %d", cfg.Chunker.Overlap, cfg.Chunker.Size)
	}
}

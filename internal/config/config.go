package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LLMConfig holds connection details for the local OpenAI-compatible endpoint.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	ChatModel   string  `yaml:"chat_model"`
	EmbedModel  string  `yaml:"embed_model"`
	Temperature float32 `yaml:"temperature"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// ChunkerConfig configures how document pages are split into chunks.
type ChunkerConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// RetrievalConfig configures context assembly for the document analyzer.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// AuthConfig locates the flat user-credential file.
type AuthConfig struct {
	UsersFile string `yaml:"users_file"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	LLM       LLMConfig       `yaml:"llm"`
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Auth      AuthConfig      `yaml:"auth"`
	// LogFailedGenerations controls whether a generation error message is
	// appended to the transcript as an assistant turn.
	LogFailedGenerations bool `yaml:"log_failed_generations"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/llm-assistant/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "llm-assistant", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		LLM: LLMConfig{
			BaseURL:     "http://localhost:11434/v1",
			APIKeyEnv:   "LLM_API_KEY",
			ChatModel:   "deepseek-r1:1.5b",
			EmbedModel:  "deepseek-r1:1.5b",
			Temperature: 0.3,
			TimeoutSecs: 120,
		},
		Chunker:              ChunkerConfig{Size: 1000, Overlap: 200},
		Retrieval:            RetrievalConfig{TopK: 3},
		Auth:                 AuthConfig{UsersFile: "users.json"},
		LogFailedGenerations: true,
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "http://localhost:11434/v1"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "LLM_API_KEY"
	}
	if cfg.LLM.ChatModel == "" {
		cfg.LLM.ChatModel = "deepseek-r1:1.5b"
	}
	if cfg.LLM.EmbedModel == "" {
		cfg.LLM.EmbedModel = cfg.LLM.ChatModel
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = 120
	}
	if cfg.Chunker.Size == 0 {
		cfg.Chunker.Size = 1000
	}
	if cfg.Chunker.Overlap == 0 {
		cfg.Chunker.Overlap = 200
	}
	if cfg.Chunker.Overlap >= cfg.Chunker.Size {
		cfg.Chunker.Overlap = cfg.Chunker.Size / 5
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Auth.UsersFile == "" {
		cfg.Auth.UsersFile = "users.json"
	}
}

package main

import (
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/duttanayan/LLM-pdf-summmarizer/internal/auth"
	"github.com/duttanayan/LLM-pdf-summmarizer/internal/chunker"
	"github.com/duttanayan/LLM-pdf-summmarizer/internal/config"
	"github.com/duttanayan/LLM-pdf-summmarizer/internal/llm"
	"github.com/duttanayan/LLM-pdf-summmarizer/internal/pdfloader"
	"github.com/duttanayan/LLM-pdf-summmarizer/internal/service"
	"github.com/duttanayan/LLM-pdf-summmarizer/internal/session"
	"github.com/duttanayan/LLM-pdf-summmarizer/internal/tui"
	"github.com/duttanayan/LLM-pdf-summmarizer/internal/vectorstore/memory"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/llm-assistant/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	users, err := auth.NewStore(cfg.Auth.UsersFile)
	if err != nil {
		log.Fatalf("failed to open user store: %v", err)
	}

	client := llm.New(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKeyEnv:   cfg.LLM.APIKeyEnv,
		ChatModel:   cfg.LLM.ChatModel,
		EmbedModel:  cfg.LLM.EmbedModel,
		Temperature: cfg.LLM.Temperature,
		Timeout:     time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})

	backend := tui.Backend{
		Auth: users,
		StartSession: func(user string) (*session.Session, *service.Companion, *service.Analyzer) {
			sess := session.New(user)
			companion := service.NewCompanion(sess, client, sess.CompanionLog, cfg.LogFailedGenerations)
			analyzer := service.NewAnalyzer(service.AnalyzerConfig{
				Gate:                 sess,
				Loader:               pdfloader.New(),
				Chunker:              chunker.New(cfg.Chunker.Size, cfg.Chunker.Overlap),
				Embedder:             client,
				Store:                memory.New(client),
				Completer:            client,
				Log:                  sess.AnalyzerLog,
				TopK:                 cfg.Retrieval.TopK,
				LogFailedGenerations: cfg.LogFailedGenerations,
			})
			return sess, companion, analyzer
		},
	}

	if _, err := tea.NewProgram(tui.New(backend), tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}

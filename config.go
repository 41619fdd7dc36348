package chatdesk

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the reference deployment (a Swedish clinic widget).
const (
	DefaultSystemPrompt  = "Du är en hjälpsam AI-assistent som svarar kort och tydligt på svenska."
	DefaultFallbackReply = "Jag kunde tyvärr inte svara just nu. Försök gärna igen om en liten stund."
	DefaultModel         = "gpt-4.1-mini"
)

// Config holds all deployment-time settings. Everything is read from the
// environment, optionally seeded from a .env file.
type Config struct {
	Port      int
	StaticDir string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	Model         string

	SystemPrompt    string
	FallbackReply   string
	MaxSessions     int
	UpstreamTimeout time.Duration

	ResendAPIKey  string
	LeadToEmail   string
	LeadFromEmail string
	LeadDBPath    string
}

// LoadConfig reads configuration from the environment. A missing .env file is
// not an error; a missing OPENAI_API_KEY is.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file, using environment variables only")
	}

	openaiKey := os.Getenv("OPENAI_API_KEY")
	if openaiKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY is required in environment")
	}

	return Config{
		Port:      envIntOrDefault("PORT", 8080),
		StaticDir: os.Getenv("STATIC_DIR"),

		OpenAIAPIKey:  openaiKey,
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		Model:         envOrDefault("CHAT_MODEL", DefaultModel),

		SystemPrompt:    envOrDefault("SYSTEM_PROMPT", DefaultSystemPrompt),
		FallbackReply:   envOrDefault("FALLBACK_REPLY", DefaultFallbackReply),
		MaxSessions:     envIntOrDefault("MAX_SESSIONS", 1000),
		UpstreamTimeout: time.Duration(envIntOrDefault("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,

		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		LeadToEmail:   os.Getenv("LEAD_TO_EMAIL"),
		LeadFromEmail: envOrDefault("LEAD_FROM_EMAIL", "widget@klinikflow.se"),
		LeadDBPath:    envOrDefault("LEAD_DB_PATH", "./leads.db"),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/artin-ai/onboarding-backend/internal/entity"
	pkgRetry "github.com/artin-ai/onboarding-backend/internal/pkg/retry"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Webhook relay configuration
	WebhookCfg WebhookConnectorConfig `envPrefix:"WEBHOOK_"`

	// Conversation timing and lifetime
	ConversationCfg ConversationConfig `envPrefix:"CONVERSATION_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Question sequence (loaded from JSON file)
	Questions []entity.QuestionDefinition

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// WebhookConnectorConfig configures the downstream webhook the relay
// forwards completed answer maps to. SubmitURL may be empty; the relay
// then rejects submissions at request time rather than at startup.
type WebhookConnectorConfig struct {
	HTTPClientConfig
	SubmitURL string               `env:"SUBMIT_URL"`
	Retry     pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// ConversationConfig holds the wizard's timing knobs and session lifetime.
type ConversationConfig struct {
	TypingInterval  time.Duration `env:"TYPING_INTERVAL" envDefault:"30ms"`
	ProcessingDelay time.Duration `env:"PROCESSING_DELAY" envDefault:"2500ms"`
	TTL             time.Duration `env:"TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"10s"`
	Token                 string        `env:"TOKEN"`
}

// questionsFile represents the structure of questions.json
type questionsFile struct {
	Questions []entity.QuestionDefinition `json:"questions"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Load question sequence from JSON file
	if err := loadQuestions(cfg); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	if err := ValidateQuestions(cfg.Questions); err != nil {
		return nil, fmt.Errorf("invalid question sequence: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.ConversationCfg.TypingInterval <= 0 {
		return fmt.Errorf("CONVERSATION_TYPING_INTERVAL must be positive, got %s", cfg.ConversationCfg.TypingInterval)
	}
	if cfg.ConversationCfg.ProcessingDelay < 0 {
		return fmt.Errorf("CONVERSATION_PROCESSING_DELAY must not be negative, got %s", cfg.ConversationCfg.ProcessingDelay)
	}
	if cfg.ConversationCfg.TTL < time.Minute {
		return fmt.Errorf("CONVERSATION_TTL must be at least 1m, got %s", cfg.ConversationCfg.TTL)
	}
	return nil
}

// defaultQuestions is the shipped onboarding sequence, used when no
// questions.json is present.
var defaultQuestions = []entity.QuestionDefinition{
	{
		ID:             "clientName",
		PromptTemplate: "Hey there! 👋 I'm Artin, your AI content strategist. Let's get to know you and your business. What's your name?",
		Placeholder:    "Enter your name...",
		Label:          "Client name",
		InputKind:      entity.InputKindFreeText,
	},
	{
		ID:             "companyName",
		PromptTemplate: "Nice to meet you, {clientName}! What's your company or brand name?",
		Placeholder:    "Enter your company name...",
		Label:          "Company name",
		InputKind:      entity.InputKindFreeText,
	},
	{
		ID:             "companyWebsite",
		PromptTemplate: "Great! What's your company website URL?",
		Placeholder:    "https://example.com",
		Label:          "Company website URL",
		InputKind:      entity.InputKindURL,
	},
	{
		ID:             "targetKeywords",
		PromptTemplate: "Perfect! Now, let's talk about SEO. What are your target keywords? You can add multiple keywords.",
		Placeholder:    "Enter a keyword and press Enter or comma",
		Label:          "Target keywords",
		InputKind:      entity.InputKindTagList,
	},
	{
		ID:             "businessDescription",
		PromptTemplate: "Excellent keywords! Can you tell me more about your business? Please provide a brief description of what your company does.",
		Placeholder:    "Describe your business, products, services, and what makes you unique...",
		Label:          "Business description",
		InputKind:      entity.InputKindLongText,
	},
	{
		ID:             "competitorUrls",
		PromptTemplate: "Last question! To help me understand your competitive landscape, please provide up to 3 competitor website URLs.",
		Placeholder:    "https://competitor.com",
		Label:          "Competitor website URLs",
		InputKind:      entity.InputKindMultiURL,
	},
}

func loadQuestions(cfg *Config) error {
	configPath := filepath.Join("internal", "config", "questions.json")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Warning: questions file not found at %s, using default questions\n", configPath)
		cfg.Questions = defaultQuestions
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read questions file: %w", err)
	}

	if len(data) == 0 {
		return fmt.Errorf("questions file is empty: %s", configPath)
	}

	var qf questionsFile
	if err := json.Unmarshal(data, &qf); err != nil {
		return fmt.Errorf("parse questions JSON: %w", err)
	}

	if len(qf.Questions) == 0 {
		return fmt.Errorf("questions file contains no questions: %s", configPath)
	}

	cfg.Questions = qf.Questions

	fmt.Printf("Loaded %d questions from %s\n", len(cfg.Questions), configPath)
	return nil
}

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z][a-zA-Z0-9_]*)\}`)

// ValidateQuestions checks the static sequence invariants: every id is
// unique, every prompt placeholder references a strictly earlier
// question, choice kinds carry choices, and every input kind is known.
func ValidateQuestions(questions []entity.QuestionDefinition) error {
	seen := make(map[string]bool, len(questions))

	for i, q := range questions {
		if q.ID == "" {
			return fmt.Errorf("question %d: %w: id", i, entity.ErrMissingField)
		}
		if seen[q.ID] {
			return fmt.Errorf("question %d: %w: %s", i, entity.ErrDuplicateQuestion, q.ID)
		}
		if err := q.InputKind.Validate(); err != nil {
			return fmt.Errorf("question %q: %w", q.ID, err)
		}
		if q.InputKind.IsChoice() && len(q.Choices) == 0 {
			return fmt.Errorf("question %q: %w", q.ID, entity.ErrMissingChoices)
		}

		for _, match := range placeholderPattern.FindAllStringSubmatch(q.PromptTemplate, -1) {
			ref := match[1]
			if !seen[ref] {
				return fmt.Errorf("question %q: %w: {%s}", q.ID, entity.ErrForwardReference, ref)
			}
		}

		seen[q.ID] = true
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}

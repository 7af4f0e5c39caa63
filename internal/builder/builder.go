package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/artin-ai/onboarding-backend/internal/api"
	conversationapi "github.com/artin-ai/onboarding-backend/internal/api/conversation"
	onboardingapi "github.com/artin-ai/onboarding-backend/internal/api/onboarding"
	"github.com/artin-ai/onboarding-backend/internal/config"
	"github.com/artin-ai/onboarding-backend/internal/conversation"
	"github.com/artin-ai/onboarding-backend/internal/integration/webhook"
	"github.com/artin-ai/onboarding-backend/internal/pkg/logger"
	"github.com/artin-ai/onboarding-backend/internal/store"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.Int("questions", len(cfg.Questions)),
	)

	// Initialize conversation store
	convStore := store.NewMemoryStore(cfg.ConversationCfg.TTL, cfg.ConversationCfg.CleanupInterval)
	log.Info("Conversation store initialized",
		zap.Duration("ttl", cfg.ConversationCfg.TTL),
	)

	// Initialize webhook connector (with mock support)
	var webhookConnector conversation.WebhookConnector
	if cfg.EnableMocks {
		log.Info("Using mock connector for webhook relay")
		webhookConnector = webhook.NewMockConnector(log)
	} else {
		webhookConnector = webhook.NewConnector(cfg.WebhookCfg, log)
	}

	// Initialize use case
	conversationUC := conversation.NewUsecase(
		cfg.Questions,
		convStore,
		webhookConnector,
		cfg.ConversationCfg,
		log,
	)
	log.Info("Use cases initialized")

	// Setup API handlers
	conversationHandler := conversationapi.NewHandler(conversationUC, conversationUC.Sequencer())
	onboardingHandler := onboardingapi.NewHandler(webhookConnector)
	log.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(conversationHandler, onboardingHandler, log)
	log.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: log,
	}, nil
}

package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"ai-medassist-be/internal/config"
	"ai-medassist-be/internal/controller"
	"ai-medassist-be/internal/handler"
	"ai-medassist-be/internal/pkg/logger"
	"ai-medassist-be/internal/repository/unitofwork"
	"ai-medassist-be/internal/service"
	"ai-medassist-be/internal/websocket"
	"ai-medassist-be/pkg/chat"
	"ai-medassist-be/pkg/embedding"
	"ai-medassist-be/pkg/extract"
	"ai-medassist-be/pkg/knowledge"
	"ai-medassist-be/pkg/llm/factory"
	"ai-medassist-be/pkg/ocr"
	"ai-medassist-be/pkg/triage"
	"ai-medassist-be/pkg/vision"
)

type Container struct {
	// Controllers
	PrescriptionController controller.IPrescriptionController
	ChatController         controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db, cfg.Ai.KnowledgeIndex)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := logger.NewIsolatedLogger(cfg.App.PipelineLogPath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Redis (embedding cache + websocket cross-instance relay)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// 4. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingDims)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}
	embeddingProvider = embedding.NewCachedProvider(embeddingProvider, rdb)

	if len(cfg.Ai.ChatModels) == 0 {
		log.Fatalf("[FATAL] No chat model candidates configured")
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.ChatProvider,
		cfg.Ai.ChatModels[0],
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using Chat Provider: %s (candidates: %v)", cfg.Ai.ChatProvider, cfg.Ai.ChatModels)

	visionProvider := vision.NewGeminiVision(cfg.Keys.GoogleGemini, cfg.Ai.VisionModel)
	ocrEngine := ocr.NewEngine(cfg.Ai.TessdataPrefix)
	extractEngine := extract.NewEngine(visionProvider, ocrEngine, pipelineLogger)

	// 5. Pipeline Components
	matcher := knowledge.NewMatcher(uowFactory, embeddingProvider, pipelineLogger)
	triageEngine := triage.NewTriage(uowFactory, cfg.Triage, sysLogger)
	orchestrator := chat.NewOrchestrator(llmProvider, cfg.Ai.ChatModels, sysLogger)

	// 6. WebSocket Hub
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 7. Services
	publisherService := service.NewPublisherService(cfg.Keys.ProgressTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.ProgressTopic, wsHub)

	prescriptionService := service.NewPrescriptionService(
		uowFactory,
		extractEngine,
		publisherService,
		pipelineLogger,
	)
	chatService := service.NewChatService(
		uowFactory,
		matcher,
		triageEngine,
		orchestrator,
		sysLogger,
	)

	// 8. HTTP Surface
	progressHandler := handler.NewProgressHandler(wsHub, sysLogger)

	return &Container{
		PrescriptionController: controller.NewPrescriptionController(prescriptionService),
		ChatController:         controller.NewChatController(chatService),
		ConsumerService:        consumerService,
		ProgressHandler:        progressHandler,
		WebSocketHub:           wsHub,
	}
}

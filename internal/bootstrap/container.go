package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-interviewer-be/internal/config"
	"ai-interviewer-be/internal/controller"
	"ai-interviewer-be/internal/pkg/logger"
	"ai-interviewer-be/internal/repository/contract"
	"ai-interviewer-be/internal/repository/memory"
	"ai-interviewer-be/internal/repository/redisstore"
	"ai-interviewer-be/internal/repository/unitofwork"
	"ai-interviewer-be/internal/service"
	"ai-interviewer-be/pkg/embedding"
	"ai-interviewer-be/pkg/interview/engine"
	"ai-interviewer-be/pkg/llm"
	"ai-interviewer-be/pkg/llm/factory"
	"ai-interviewer-be/pkg/search/retrieval"
	"ai-interviewer-be/pkg/search/tavily"

	pktNats "ai-interviewer-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	InterviewController controller.IInterviewController
	ReportController    controller.IReportController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := service.NewLLMLogger()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	generator := llm.NewRetryingGenerator(
		llmProvider,
		cfg.Ai.RetryAttempts,
		time.Duration(cfg.Ai.RetryDelayMs)*time.Millisecond,
		llmLogger,
	)

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Session storage: in-process by default, Redis when configured
	var sessionStore contract.SessionStore
	if cfg.App.SessionStore == "redis" {
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
		}
		sessionStore = redisstore.NewSessionRepository(rdb)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionStore = memory.NewSessionRepository()
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// 5. Interview Engine
	tavilyClient := tavily.NewClient(cfg.Keys.Tavily, llmLogger)
	sessionRetriever := retrieval.NewProvider(
		embeddingProvider,
		newGormChunkSearcher(uowFactory),
		llmLogger,
	)
	interviewEngine := engine.New(
		generator,
		tavilyClient,
		sessionRetriever,
		cfg.Interview.DistanceThreshold,
		cfg.Interview.SearchTopK,
		llmLogger,
	)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedCvTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedCvTopic,
		uowFactory,
		embeddingProvider,
		sessionStore,
	)

	interviewService := service.NewInterviewService(
		interviewEngine,
		sessionStore,
		uowFactory,
		publisherService,
		natsPub,
		sysLogger,
		cfg.Interview.MaxSteps,
	)
	reportService := service.NewReportService(uowFactory)

	// 7. Controllers
	return &Container{
		InterviewController: controller.NewInterviewController(interviewService),
		ReportController:    controller.NewReportController(reportService),

		ConsumerService: consumerService,
	}
}

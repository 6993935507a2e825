package bootstrap

import (
	"log"

	"ai-research-be/internal/config"
	"ai-research-be/internal/controller"
	"ai-research-be/internal/handler"
	"ai-research-be/internal/pkg/logger"
	"ai-research-be/internal/repository/memory"
	"ai-research-be/internal/service"
	"ai-research-be/pkg/llm/factory"
	"ai-research-be/pkg/plan"
	"ai-research-be/pkg/research"
	"ai-research-be/pkg/search/serpapi"
	"ai-research-be/pkg/synthesis"

	pktNats "ai-research-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	ResearchController controller.IResearchController
	PlanController     controller.IPlanController

	// WebSockets
	ResearchWSHandler *handler.ResearchWSHandler
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Providers
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Keys.Groq,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	searchProvider := serpapi.NewSerpAPIProvider(cfg.Keys.SerpAPI)

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 4. Pipeline Components
	collector := research.NewCollector(searchProvider, cfg.Research.MaxSources)
	synthesizer := synthesis.NewSynthesizer(llmProvider)
	planGenerator := plan.NewGenerator(llmProvider)

	planStorage, err := plan.NewStorage(cfg.Research.DataDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize plan storage: %v", err)
	}

	// 5. Services
	chatService := service.NewChatService(llmProvider, sessionRepo, sysLogger)
	researchService := service.NewResearchService(
		collector,
		synthesizer,
		sessionRepo,
		pubSub,
		natsPub,
		sysLogger,
	)
	planService := service.NewPlanService(
		planGenerator,
		planStorage,
		sessionRepo,
		natsPub,
		sysLogger,
	)

	// WebSocket
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHandler := handler.NewResearchWSHandler(chatService, researchService, pubSub, wsLogger)

	// 6. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService),
		ResearchController: controller.NewResearchController(researchService),
		PlanController:     controller.NewPlanController(planService),
		ResearchWSHandler:  wsHandler,
	}
}

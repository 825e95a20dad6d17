package bootstrap

import (
	"context"
	"log"

	"soukbot-be/internal/config"
	"soukbot-be/internal/controller"
	"soukbot-be/internal/pkg/logger"
	"soukbot-be/internal/repository/memory"
	"soukbot-be/internal/repository/unitofwork"
	"soukbot-be/internal/service"
	"soukbot-be/pkg/cache"
	"soukbot-be/pkg/classifier"
	"soukbot-be/pkg/commerce"
	"soukbot-be/pkg/embedding"
	"soukbot-be/pkg/embedding/jina"
	"soukbot-be/pkg/monitoring"
	pktNats "soukbot-be/pkg/nats"
	"soukbot-be/pkg/semantic"
	"soukbot-be/pkg/vision"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	PartnerController   controller.IPartnerController
	KnowledgeController controller.IKnowledgeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	case "jina":
		embeddingProvider = jina.NewJinaProvider(cfg.Ai.JinaAPIKey)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	case "lexical":
		// Corpus entries still queue through the consumer; they are
		// stored without embeddings until a provider is configured.
		log.Printf("[INFO] Using Embedding Provider: NONE (lexical classifier)")
	default:
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository(cfg.Cache.ConversationTTL)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	var sink monitoring.Sink = monitoring.NopSink{}
	if natsPub != nil {
		sink = monitoring.NewNatsSink(natsPub, sysLogger)
	}

	// Result cache: memory backend by default, Redis when configured
	namespaces := []cache.Namespace{
		{Name: cache.NamespaceConversation, TTL: cfg.Cache.ConversationTTL, MaxEntries: cfg.Cache.ConversationSize},
		{Name: cache.NamespaceKnowledge, TTL: cfg.Cache.KnowledgeTTL, MaxEntries: cfg.Cache.KnowledgeSize},
		{Name: cache.NamespacePartnerSearch, TTL: cfg.Cache.PartnerSearchTTL, MaxEntries: cfg.Cache.PartnerSearchSize},
	}
	var cacheManager cache.Manager
	if cfg.Cache.Backend == "redis" {
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
		cacheManager = cache.NewRedisManager(rdb, namespaces)
	} else {
		cacheManager = cache.NewMemoryManager(namespaces)
	}

	publisherService := service.NewPublisherService(cfg.Ai.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.EmbedTopic,
		uowFactory,
		embeddingProvider,
	)

	scorer := newContextScorer(embeddingProvider, uowFactory, cfg.Classifier.IrrelevantWeight, sysLogger)

	validator := classifier.NewValidator(
		scorer,
		service.NewKnowledgeStoreAdapter(uowFactory, cfg.Search.MaxKnowledge),
		service.NewLearningRecorderAdapter(uowFactory, sysLogger),
		classifier.Options{
			ConfidenceThreshold: cfg.Classifier.ConfidenceThreshold,
			IrrelevantThreshold: cfg.Classifier.IrrelevantThreshold,
			MaxKnowledgeResults: cfg.Search.MaxKnowledge,
		},
		sysLogger,
	)

	searcher := commerce.NewSearcher(
		service.NewPartnerStoreAdapter(uowFactory),
		cacheManager,
		sink,
		cfg.Search.PartnerTimeout,
		sysLogger,
	)

	// Image product detection: Vision API first, simulation as last resort
	imageBackends := []vision.Classifier{}
	if cfg.Vision.APIKey != "" {
		imageBackends = append(imageBackends, vision.NewGoogleClassifier(cfg.Vision.APIKey, cfg.Vision.Endpoint))
	}
	imageBackends = append(imageBackends, vision.NewSimulatedClassifier())
	imageClassifier := vision.NewChain(sysLogger, imageBackends...)

	// 3. Services
	chatService := service.NewChatService(
		uowFactory,
		sessionRepo,
		validator,
		searcher,
		imageClassifier,
		cacheManager,
		sink,
		cfg.Search,
		sysLogger,
	)
	partnerService := service.NewPartnerService(uowFactory, searcher, sink, sysLogger)
	knowledgeService := service.NewKnowledgeService(uowFactory, publisherService, sysLogger)

	// 4. Controllers
	return &Container{
		ChatController:      controller.NewChatController(chatService),
		PartnerController:   controller.NewPartnerController(partnerService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),

		ConsumerService: consumerService,
	}
}

// newContextScorer picks the classifier scorer: pgvector-backed when an
// embedding provider is configured, keyword overlap against the built-in
// corpora otherwise (EMBEDDING_PROVIDER=lexical).
func newContextScorer(provider embedding.EmbeddingProvider, uowFactory unitofwork.RepositoryFactory, irrelevantWeight float64, sysLogger logger.ILogger) semantic.Scorer {
	if provider == nil {
		return semantic.NewLexicalScorer(semantic.DefaultInScopeCorpus, semantic.DefaultIrrelevantCorpus, irrelevantWeight)
	}
	return semantic.NewCorpusScorer(provider, service.NewCorpusStoreAdapter(uowFactory), irrelevantWeight, sysLogger)
}

package bootstrap

import (
	"context"
	"fmt"
	"log"

	"campus-guide-be/internal/config"
	"campus-guide-be/internal/controller"
	"campus-guide-be/internal/metrics"
	"campus-guide-be/internal/pkg/logger"
	"campus-guide-be/internal/repository/contract"
	"campus-guide-be/internal/repository/implementation"
	"campus-guide-be/internal/repository/memory"
	"campus-guide-be/internal/service"
	"campus-guide-be/internal/websocket"
	"campus-guide-be/pkg/guide/advisor"
	"campus-guide-be/pkg/guide/catalog"
	"campus-guide-be/pkg/guide/clarify"
	"campus-guide-be/pkg/guide/engine"
	"campus-guide-be/pkg/llm/factory"

	pktNats "campus-guide-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const eventTopic = "guide_events"

type Container struct {
	// Controllers
	GuideController controller.IGuideController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires the app. db may be nil, in which case sessions read the
// sample catalog and the event history endpoint is disabled.
func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	c := &Container{}

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c.Logger = sysLogger
	c.closers = append(c.closers, func() { _ = sysLogger.Sync() })

	vocabulary, err := config.LoadVocabulary(cfg.Guide.VocabularyFile)
	if err != nil {
		return nil, err
	}
	policy, err := clarify.ParsePolicy(cfg.Guide.ClarificationPolicy)
	if err != nil {
		return nil, err
	}

	// 2. Storage
	var catalogs service.ICatalogSource
	var eventRepo contract.GuideEventRepository
	if db != nil {
		catalogs = service.NewRepositoryCatalogSource(implementation.NewCatalogRepository(db), cfg.Guide.CatalogCacheTTL)
		eventRepo = implementation.NewGuideEventRepository(db)
	} else {
		log.Println("[INFO] No database configured, serving the sample catalog")
		catalogs = service.NewStaticCatalogSource(catalog.Sample())
	}

	// 3. Advisor
	adv := newAdvisor(cfg.Ai, sysLogger)

	// 4. Event Bus
	// blocking publish keeps one session's events in engine order
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{BlockPublishUntilSubscriberAck: true},
		watermill.NewStdLogger(false, false),
	)

	// 5. Infrastructure
	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, cfg.App.NatsStreamMaxAge)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/guide_ws.log")
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)

	// 6. Services
	sessions := memory.NewSessionRepository(cfg.Guide.SessionTTL, func(*memory.Session) {
		metrics.ActiveSessions.Dec()
	})

	publisherService := service.NewPublisherService(eventTopic, pubSub, sysLogger)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		eventTopic,
		c.WebSocketHub,
		forwarder,
		eventRepo,
		sessions,
		sysLogger,
	)

	guideService := service.NewGuideService(
		sessions,
		catalogs,
		adv,
		publisherService,
		eventRepo,
		engine.Options{
			Vocabulary:     vocabulary,
			Policy:         policy,
			NudgeThreshold: cfg.Guide.NudgeThreshold,
			HistoryWindow:  cfg.Guide.HistoryWindow,
		},
		cfg.Guide.MessageWait,
		sysLogger,
	)

	// 7. Controllers
	c.GuideController = controller.NewGuideController(guideService, c.WebSocketHub)

	return c, nil
}

func newAdvisor(cfg config.AIConfig, log logger.ILogger) advisor.Advisor {
	if cfg.Provider == "none" {
		return advisor.Disabled{}
	}

	provider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Provider,
		Model:    cfg.AdviceModel,
		BaseURL:  cfg.BaseURL,
		APIKey:   cfg.APIKey,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		log.Warn("Bootstrap", "LLM provider unavailable, advisor disabled", map[string]interface{}{"provider": cfg.Provider, "error": err.Error()})
		return advisor.Disabled{}
	}

	log.Info("Bootstrap", fmt.Sprintf("Using LLM Provider: %s", cfg.Provider), map[string]interface{}{
		"tab_model":    cfg.TabModel,
		"advice_model": cfg.AdviceModel,
	})
	return advisor.NewLLMAdvisor(provider,
		advisor.WithTabModel(cfg.TabModel),
		advisor.WithAdviceModel(cfg.AdviceModel),
		advisor.WithLogger(log),
		advisor.WithRecorder(metrics.Recorder{}),
	)
}

// Close releases the connections opened by NewContainer.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

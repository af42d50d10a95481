package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"laohotel/config"
	"laohotel/database"
	chatRepo "laohotel/database/repository/chat"
	roomRepo "laohotel/database/repository/room"
	"laohotel/services/conversation"
	"laohotel/services/dates"
	ai "laohotel/services/intelligence"
	"laohotel/services/intent"
	"laohotel/services/metrics"
	"laohotel/utils"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// application is the wired dependency graph shared by every command.
type application struct {
	cfg          config.Config
	logger       *zap.Logger
	rooms        roomRepo.RoomRepository
	history      chatRepo.ChatRepository
	orchestrator *conversation.Orchestrator
	metrics      *metrics.Metrics
	health       *utils.HealthMonitor
	closers      []func() error
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Shutdown step failed", zap.Error(err))
		}
	}
	a.closers = nil
}

// storage holds the repositories for the configured DB_DRIVER.
type storage struct {
	rooms   roomRepo.RoomRepository
	history chatRepo.ChatRepository
	ping    func(ctx context.Context) error
	close   func() error
}

func openStorage(ctx context.Context, cfg config.Config) (*storage, error) {
	switch strings.ToLower(cfg.DBDriver) {
	case "", "sqlite":
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &storage{
			rooms:   roomRepo.NewSQLiteRoomRepo(db),
			history: chatRepo.NewSQLiteChatRepo(db),
			ping:    db.PingContext,
			close:   db.Close,
		}, nil
	case "mongo":
		client, err := database.ConnectMongo(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		return &storage{
			rooms:   roomRepo.NewMongoRoomRepo(db),
			history: chatRepo.NewMongoChatRepo(db),
			ping:    func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close:   func() error { return client.Disconnect(context.Background()) },
		}, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}

// modelBackend is what LLM_PROVIDER resolves to. Both fields are nil for "none".
type modelBackend struct {
	generator      ai.Generator
	embedder       ai.Embedder
	embeddingModel string
	close          func() error
}

func openModels(ctx context.Context, cfg config.Config, logger *zap.Logger) (*modelBackend, error) {
	switch strings.ToLower(cfg.LLMProvider) {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY is not set, answering from retrieved context only")
			return &modelBackend{}, nil
		}
		client, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiEmbeddingModel)
		if err != nil {
			return nil, err
		}
		return &modelBackend{
			generator:      client,
			embedder:       client,
			embeddingModel: cfg.GeminiEmbeddingModel,
			close:          client.Close,
		}, nil
	case "openai", "llamacpp":
		variant := strings.ToUpper(cfg.LLMProvider)
		client := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.OpenAIEmbeddingModel, variant)
		return &modelBackend{
			generator:      client,
			embedder:       client,
			embeddingModel: cfg.OpenAIEmbeddingModel,
		}, nil
	case "", "none":
		return &modelBackend{}, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

// cachedEmbedder puts the Redis embedding cache in front of the backend when REDIS_ADDR is set.
// The returned client is nil when there is no cache.
func cachedEmbedder(cfg config.Config, backend *modelBackend, logger *zap.Logger) (ai.Embedder, *redis.Client) {
	if backend.embedder == nil {
		return nil, nil
	}
	client, err := utils.NewCacheClient(cfg)
	if err != nil {
		logger.Warn("Embedding cache disabled", zap.Error(err))
		return backend.embedder, nil
	}
	if client == nil {
		return backend.embedder, nil
	}
	return ai.NewCachedEmbedder(backend.embedder, client, backend.embeddingModel, cfg.EmbeddingCacheTTL, logger), client
}

// loadKnowledgeBase returns nil when the file is missing, there is nothing to embed queries
// with, or some chunk cannot be embedded. Retrieval then reports the missing knowledge base
// instead of searching partial vectors.
func loadKnowledgeBase(ctx context.Context, path string, embedder ai.Embedder, logger *zap.Logger) *ai.KnowledgeBase {
	kb, err := ai.LoadKnowledgeBase(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Knowledge base not found", zap.String("path", path))
		} else {
			logger.Error("Failed to load knowledge base", zap.String("path", path), zap.Error(err))
		}
		return nil
	}
	if embedder == nil {
		logger.Warn("No embedding backend configured, knowledge base is unused", zap.Int("chunks", kb.Len()))
		return nil
	}
	n, err := kb.EmbedMissing(ctx, embedder)
	if err != nil {
		logger.Error("Failed to embed knowledge base", zap.Error(err))
		return nil
	}
	logger.Info("Knowledge base loaded", zap.Int("chunks", kb.Len()), zap.Int("embedded", n))
	return kb
}

// newApplication wires storage, models, retrieval and the conversation services from cfg.
func newApplication(ctx context.Context, cfg config.Config, logger *zap.Logger) (*application, error) {
	app := &application{cfg: cfg, logger: logger}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, store.close)
	app.rooms = store.rooms
	app.history = store.history

	if err := app.rooms.Seed(ctx, cfg.RoomNumbers); err != nil {
		app.Close()
		return nil, fmt.Errorf("seed rooms: %w", err)
	}

	backend, err := openModels(ctx, cfg, logger)
	if err != nil {
		app.Close()
		return nil, err
	}
	if backend.close != nil {
		app.closers = append(app.closers, backend.close)
	}
	checks := []utils.HealthCheck{{Name: "database", Ping: store.ping}}
	embedder, cache := cachedEmbedder(cfg, backend, logger)
	if cache != nil {
		app.closers = append(app.closers, cache.Close)
		checks = append(checks, utils.HealthCheck{Name: "cache", Ping: func(ctx context.Context) error {
			return cache.Ping(ctx).Err()
		}})
	}
	app.health = utils.NewHealthMonitor(healthCheckTimeout, checks...)

	app.metrics = metrics.New(prometheus.NewRegistry())

	kb := loadKnowledgeBase(ctx, cfg.KnowledgeBasePath, embedder, logger)
	retriever := ai.NewRetriever(kb, embedder, cfg.RAGTopK, cfg.RAGConfidenceThreshold, logger)
	answerer := ai.NewAnswerer(backend.generator, ai.AnswerOptions{
		Timeout:        cfg.LLMTimeout,
		MaxConcurrency: cfg.LLMMaxConcurrency,
		MaxNewTokens:   cfg.MaxNewTokens,
		ContextChars:   cfg.PromptContextChars,
	}, app.metrics, logger)

	classifier := intent.NewClassifier(ctx, intent.Options{
		BookingKeywords:      cfg.BookingIntentKeywords,
		ConfirmationKeywords: cfg.ConfirmationKeywords,
		DenialKeywords:       cfg.DenialKeywords,
		PriceKeywords:        cfg.PriceInquiryKeywords,
		BookingPhrase:        cfg.BookingIntentPhrase,
		SimilarityThreshold:  cfg.BookingSimilarityThreshold,
	}, embedder, logger)

	sessions := conversation.NewSessionStore(cfg.SessionIdleTTL)
	flow := conversation.NewBookingFlow(app.rooms, cfg.RoomNumbers, classifier,
		dates.NewParser(cfg.TomorrowMarkers), sessions, app.metrics, logger)
	app.orchestrator = conversation.NewOrchestrator(flow, sessions, classifier, retriever, answerer,
		app.history, app.metrics, logger)

	logger.Info("Chatbot ready",
		zap.String("db_driver", cfg.DBDriver),
		zap.String("llm_provider", cfg.LLMProvider),
		zap.Bool("generation", backend.generator != nil),
		zap.Int("knowledge_chunks", kb.Len()))
	return app, nil
}

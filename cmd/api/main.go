package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"talentforge/hr-platform/internal/config"
	"talentforge/hr-platform/internal/handlers"
	applog "talentforge/hr-platform/internal/logger"
	"talentforge/hr-platform/internal/repositories"
	"talentforge/hr-platform/internal/services"
)

func main() {
	cfg := config.Load()

	logger, err := applog.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("config loaded", zap.String("env", cfg.Server.Env), zap.String("llm_provider", cfg.LLM.Provider))

	db, err := config.InitDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	userRepo := repositories.NewUserRepository(db)
	vacancyRepo := repositories.NewVacancyRepository(db)
	chatRepo := repositories.NewChatRepository(db)

	// LLM provider: one embedding client plus one completion client, either
	// from an OpenAI-compatible endpoint or from Gemini.
	ctx := context.Background()
	var embedder services.EmbeddingClient
	var completion services.CompletionClient

	switch cfg.LLM.Provider {
	case "gemini":
		gemini, err := services.NewGeminiClient(ctx, cfg.LLM, logger)
		if err != nil {
			logger.Fatal("failed to initialize gemini client", zap.Error(err))
		}
		embedder, completion = gemini, gemini
	default:
		embedder, err = services.NewOpenAIEmbeddingClient(cfg.LLM, logger)
		if err != nil {
			logger.Fatal("failed to initialize embedding client", zap.Error(err))
		}
		completion, err = services.NewOpenAICompletionClient(cfg.LLM, logger)
		if err != nil {
			logger.Fatal("failed to initialize completion client", zap.Error(err))
		}
	}

	vectorStore, err := services.NewQdrantProfileStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		cfg.LLM.EmbeddingDim,
		logger,
	)
	if err != nil {
		logger.Fatal("failed to initialize qdrant", zap.Error(err))
	}
	if err := vectorStore.InitCollection(ctx); err != nil {
		logger.Fatal("failed to initialize qdrant collection", zap.Error(err))
	}

	storage := services.NewResumeStorage(cfg.Storage.UploadPath)
	if err := storage.EnsureUploadDir(); err != nil {
		logger.Fatal("failed to create upload directory", zap.Error(err))
	}

	filter := services.NewSubstringCandidateFilter(logger)
	ranker := services.NewSimilarityRanker(vectorStore, embedder, logger)
	analyzer := services.NewAIAnalyzer(completion, cfg.Search.AnalysisMaxTokens, cfg.Search.AnalysisTemperature, logger)

	searchService, err := services.NewSearchService(
		userRepo,
		filter,
		embedder,
		ranker,
		analyzer,
		cfg.Search.AnalysisConcurrency,
		logger,
	)
	if err != nil {
		logger.Fatal("failed to initialize search service", zap.Error(err))
	}
	defer searchService.Close()

	vacancySearch := services.NewVacancySearchService(vacancyRepo, searchService, logger)
	assistant := services.NewAssistantService(chatRepo, userRepo, searchService, completion, logger)
	profileService := services.NewProfileService(
		userRepo,
		storage,
		services.NewPDFResumeExtractor(),
		logger,
	)

	var refresher services.EmbeddingRefresher
	if cfg.Refresher.Enabled {
		refresher, err = services.NewEmbeddingRefresher(
			userRepo,
			vectorStore,
			embedder,
			cfg.Refresher.Interval,
			cfg.Refresher.Batch,
			logger,
		)
		if err != nil {
			logger.Fatal("failed to initialize embedding refresher", zap.Error(err))
		}
		refresher.Start(ctx)
	}

	searchHandler := handlers.NewSearchHandler(searchService, vacancySearch, logger)
	assistantHandler := handlers.NewAssistantHandler(assistant, chatRepo, logger)
	profileHandler := handlers.NewProfileHandler(profileService, cfg.Storage.MaxFileSize, logger)

	app := fiber.New(fiber.Config{
		AppName:      "TalentForge HR Platform API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/search/candidates", searchHandler.HandleSearchCandidates)
	api.Post("/vacancies/:id/search-candidates", searchHandler.HandleSearchForVacancy)

	api.Post("/assistant/chat", assistantHandler.HandleChat)
	api.Get("/assistant/analytics", assistantHandler.HandleAnalytics)
	api.Get("/assistant/sessions", assistantHandler.HandleListSessions)
	api.Get("/assistant/sessions/:id/messages", assistantHandler.HandleSessionMessages)

	api.Post("/profile/:id/resume", profileHandler.HandleResumeImport)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("shutting down server")
		if refresher != nil {
			refresher.Stop()
		}
		if err := app.Shutdown(); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

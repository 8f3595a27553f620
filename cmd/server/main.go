package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/valdisnipers-collab/immuno-survey/internal/config"
	"github.com/valdisnipers-collab/immuno-survey/internal/database"
	"github.com/valdisnipers-collab/immuno-survey/internal/handler"
	"github.com/valdisnipers-collab/immuno-survey/internal/logger"
	"github.com/valdisnipers-collab/immuno-survey/internal/repository"
	"github.com/valdisnipers-collab/immuno-survey/internal/router"
	"github.com/valdisnipers-collab/immuno-survey/internal/service"
	"github.com/valdisnipers-collab/immuno-survey/internal/survey"
	"github.com/valdisnipers-collab/immuno-survey/internal/validator"
	"github.com/valdisnipers-collab/immuno-survey/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Bool("demo", cfg.DemoMode()).
		Msg("Starting ImmunoSurvey Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Select Store Backend ──────────────────────────────────────────
	// Without DATABASE_URL the whole service runs against in-memory stores
	// seeded with the default question set. That mode is fully functional
	// but loses everything on restart.
	var (
		questionStore   repository.QuestionStore
		submissionStore repository.SubmissionStore
		adminStore      repository.AdminStore
		votedStore      repository.VotedFlagStore
		questionService *service.QuestionService
	)

	if cfg.DemoMode() {
		log.Warn().Msg("DATABASE_URL is not set; running in demo mode with in-memory stores")

		mem := repository.NewMemory(cfg.DemoLatency)
		questionStore = mem
		submissionStore = mem.SubmissionsView()
		adminStore = mem.AdminsView()
		votedStore = mem.VotedFlagsView()

		questionService = service.NewQuestionService(questionStore, nil, log)
	} else {
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()

		redisClient, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		questionStore = repository.NewQuestionRepository(pool)
		submissionStore = repository.NewSubmissionRepository(pool)
		adminStore = repository.NewAdminRepository(pool)
		votedStore = repository.NewRedisVotedFlagStore(redisClient)

		questionService = service.NewQuestionService(questionStore, redisClient, log)
	}

	// ─── Initialize Services ──────────────────────────────────────────
	manager := survey.NewManager(cfg.SessionTTL)

	authService := service.NewAuthService(cfg, adminStore)
	submissionService := service.NewSubmissionService(submissionStore, votedStore, log)
	surveyService := service.NewSurveyService(questionService, manager)
	exportService := service.NewExportService(submissionService, questionService)

	// ─── Initialize Handlers ──────────────────────────────────────────
	resultsHub := handler.NewResultsHub()
	submissionService.SetNotify(resultsHub.BroadcastCount)

	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Survey:   handler.NewSurveyHandler(surveyService, questionService, submissionService),
		Question: handler.NewQuestionHandler(questionService),
		Export:   handler.NewExportHandler(exportService, submissionService),
		WS:       handler.NewWSHandler(resultsHub, submissionService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	janitor := worker.NewSessionJanitor(manager, time.Minute, log)
	go janitor.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

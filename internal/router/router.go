package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/valdisnipers-collab/immuno-survey/internal/config"
	"github.com/valdisnipers-collab/immuno-survey/internal/handler"
	"github.com/valdisnipers-collab/immuno-survey/internal/middleware"
	"github.com/valdisnipers-collab/immuno-survey/internal/response"
	"github.com/valdisnipers-collab/immuno-survey/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Survey   *handler.SurveyHandler
	Question *handler.QuestionHandler
	Export   *handler.ExportHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"status": "ok",
			"demo":   cfg.DemoMode(),
		})
	})

	// Rate limiter for the submit endpoint (10 requests per minute per IP).
	submitLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ─── 1. Public Survey Group (No Auth) ──────────────────────────────
	surveyAPI := router.Group("/api/v1/survey")
	{
		surveyAPI.GET("/questions", middleware.CacheControl(60), handlers.Survey.GetQuestions)
		surveyAPI.GET("/status", handlers.Survey.GetStatus)

		surveyAPI.POST("/sessions", handlers.Survey.StartSession)
		surveyAPI.GET("/sessions/:id", handlers.Survey.GetSession)
		surveyAPI.POST("/sessions/:id/answer", handlers.Survey.Answer)
		surveyAPI.POST("/sessions/:id/advance", handlers.Survey.Advance)
		surveyAPI.POST("/sessions/:id/retreat", handlers.Survey.Retreat)
		surveyAPI.POST("/sessions/:id/submit", submitLimiter.Middleware(), handlers.Survey.Submit)
	}

	// ─── 2. Auth Group (Public) ────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/admin/login", handlers.Auth.AdminLogin)
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.GetAdminProfile)
	}

	// ─── 3. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		adminAPI.GET("/questions", handlers.Question.ListQuestions)
		adminAPI.POST("/questions", handlers.Question.CreateQuestion)
		adminAPI.PUT("/questions/:id", handlers.Question.UpdateQuestion)
		adminAPI.DELETE("/questions/:id", handlers.Question.DeleteQuestion)
		adminAPI.PUT("/questions", handlers.Question.SaveAllQuestions)
		adminAPI.POST("/questions/seed", handlers.Question.SeedDefaults)

		adminAPI.GET("/responses/count", handlers.Export.GetResponseCount)
		adminAPI.GET("/export", handlers.Export.DownloadExport)
	}

	// ─── 4. WebSocket Group (Admin WS Auth) ────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAdminWSAuth(authService))
	{
		ws.GET("/admin/results/stream", handlers.WS.ResultsStream)
	}

	return router
}

package handlers

import (
	"net/http"
	"time"

	"github.com/Rtx09x/Meow-Mocks/internal/services"
	"github.com/Rtx09x/Meow-Mocks/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	sessionHandler *SessionHandler
	resultHandler  *ResultHandler
	sessionService services.SessionService
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		sessionHandler: NewSessionHandler(serviceManager.Session(), logger),
		resultHandler:  NewResultHandler(serviceManager.Result(), logger),
		sessionService: serviceManager.Session(),
	}
}

// NewRouter builds the gin engine with logging, recovery and CORS middleware
func NewRouter(logger utils.Logger, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(utils.ContextLogger(logger))
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", utils.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", utils.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	return router
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/tests", hm.sessionHandler.ListTests)

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.StartSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.GET("/:id/summary", hm.sessionHandler.GetSummary)
			sessions.POST("/:id/actions", hm.sessionHandler.PerformAction)
			sessions.POST("/:id/submit", hm.sessionHandler.SubmitSession)
		}

		results := v1.Group("/results")
		{
			results.GET("", hm.resultHandler.ListResults)
			results.GET("/:id", hm.resultHandler.GetResult)
			results.DELETE("/:id", hm.resultHandler.DeleteResult)
			results.PUT("/:id/notes/:index", hm.resultHandler.AddNote)
			results.GET("/:id/analysis", hm.resultHandler.GetAnalysis)
			results.GET("/:id/export", hm.resultHandler.ExportResult)
		}
	}
}

func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"service":         "meow-mocks",
		"active_sessions": hm.sessionService.ActiveSessions(),
	})
}

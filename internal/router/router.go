package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/schema-studio/schema-studio/docs"
	"github.com/schema-studio/schema-studio/internal/config"
	"github.com/schema-studio/schema-studio/internal/middleware"
	"github.com/schema-studio/schema-studio/internal/modules/handler"
	"github.com/schema-studio/schema-studio/internal/modules/serializer"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config          *config.Config
	Log             *zap.Logger
	WorkflowHandler *handler.WorkflowHandler
	SessionHandler  *handler.SessionHandler
	LanguageHandler *handler.LanguageHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// the browser frontend is served from another origin
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
	}))

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/generate-questions", d.WorkflowHandler.GenerateQuestions)
		v1.POST("/generate-detailed-prompt", d.WorkflowHandler.GenerateDetailedPrompt)
		v1.POST("/generate-table-schema", d.WorkflowHandler.GenerateTableSchema)
		v1.POST("/generate-database-code", d.WorkflowHandler.GenerateDatabaseCode)

		v1.GET("/supported-languages", d.LanguageHandler.GetSupportedLanguages)

		v1.GET("/sessions", d.SessionHandler.GetSessions)
		v1.GET("/session/:session_id", d.SessionHandler.GetSession)
		v1.DELETE("/session/:session_id", d.SessionHandler.DeleteSession)
	}
	return r
}

package handlers

import (
	"time"

	_ "nlsqlchat/docs" // Swagger docs
	"nlsqlchat/metrics"
	"nlsqlchat/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router wires pages, the JSON API and the operational endpoints.
func (h *Handlers) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), metrics.Middleware())
	// Registered globally so preflight OPTIONS requests are answered before routing.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", SessionHeader},
		ExposeHeaders:   []string{SessionHeader},
		MaxAge:          12 * time.Hour,
	}))
	r.SetHTMLTemplate(web.Templates())
	r.MaxMultipartMemory = h.cfg.MaxUploadSize

	r.GET("/health", h.HealthHandler)
	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	pages := r.Group("/", h.SessionMiddleware())
	pages.GET("/", h.IndexPage)
	pages.POST("/upload", h.UploadForm)
	pages.POST("/query", h.QueryForm)
	pages.POST("/history/:index/rerun", h.RerunForm)

	api := r.Group("/api", h.SessionMiddleware())
	api.GET("/session", h.GetSessionHandler)
	api.POST("/upload", h.UploadHandler)
	api.POST("/query", h.QueryHandler)
	api.GET("/results", h.ResultsHandler)
	api.GET("/history", h.HistoryHandler)
	api.POST("/history/:index/rerun", h.RerunHandler)

	return r
}

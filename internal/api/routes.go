package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/pitchviz/internal/api/handlers"
	"github.com/playmatatu/pitchviz/internal/catalog"
	"github.com/playmatatu/pitchviz/internal/config"
	"github.com/playmatatu/pitchviz/internal/middleware"
	"github.com/playmatatu/pitchviz/internal/ws"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SetupRoutes configures all API routes. db and rdb may be nil when the
// server runs from a catalog file without Redis.
func SetupRoutes(router *gin.Engine, db *sqlx.DB, rdb *redis.Client, cfg *config.Config, holder *catalog.Holder, hub *ws.Hub) {
	router.Use(middleware.CORSMiddleware(cfg))

	if !cfg.IsProduction() {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Debug().Str("component", "api").Msg("no-cache headers enabled for all routes")
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(holder))

		// Viewer socket
		v1.GET("/ws", middleware.WebSocketCORSCheck(cfg), ws.HandleWebSocket(hub))

		// Catalog browsing
		teams := v1.Group("/teams")
		{
			teams.GET("", handlers.ListTeams(holder))
			teams.GET("/:team/pitchers", handlers.ListPitchers(holder))
			teams.GET("/:team/pitchers/:pitcher/pitches", handlers.ListPitches(holder))
			teams.GET("/:team/pitchers/:pitcher/pitches/:id", handlers.GetPitch(holder, cfg))
			teams.GET("/:team/pitchers/:pitcher/pitches/:id/path", handlers.GetPitchPath(holder, cfg))
		}

		adm := v1.Group("/admin")
		{
			adm.POST("/login", handlers.AdminLogin(db, cfg))

			protected := adm.Group("", middleware.AdminAuth(cfg))
			protected.POST("/catalog/reload", handlers.ReloadCatalog(db, rdb, holder, hub))
			protected.GET("/audit", handlers.AdminAuditLogs(db))
		}
	}
}

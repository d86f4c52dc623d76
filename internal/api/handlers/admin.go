package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/pitchviz/internal/admin"
	"github.com/playmatatu/pitchviz/internal/catalog"
	"github.com/playmatatu/pitchviz/internal/config"
	"github.com/playmatatu/pitchviz/internal/ws"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AdminLogin checks the admin password and issues a bearer token.
func AdminLogin(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		if err := admin.VerifyPassword(cfg.AdminPasswordHash, req.Password); err != nil {
			admin.LogAdminAction(db, c.ClientIP(), c.FullPath(), "login", nil, false)
			if errors.Is(err, admin.ErrNotConfigured) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin login disabled"})
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		ttl := time.Duration(cfg.SessionTimeoutMin) * time.Minute
		token, exp, err := admin.IssueToken(cfg.JWTSecret, ttl)
		if err != nil {
			log.Error().Str("component", "admin").Err(err).Msg("failed to sign token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		admin.LogAdminAction(db, c.ClientIP(), c.FullPath(), "login", nil, true)
		c.JSON(http.StatusOK, gin.H{"token": token, "expires_at": exp.UTC().Format(time.RFC3339)})
	}
}

// ReloadCatalog reloads from the configured source, pushes the result to
// every local viewer and tells the other instances.
func ReloadCatalog(db *sqlx.DB, rdb *redis.Client, holder *catalog.Holder, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		cat, err := holder.Reload(ctx)
		if err != nil {
			log.Error().Str("component", "admin").Err(err).Msg("catalog reload failed")
			admin.LogAdminAction(db, c.ClientIP(), c.FullPath(), "catalog_reload", map[string]interface{}{"error": err.Error()}, false)
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog reload failed"})
			return
		}

		sessions := hub.ReloadAll(cat)
		if err := ws.PublishCatalogReload(ctx, rdb, hub.InstanceID(), cat.Len()); err != nil {
			log.Warn().Str("component", "admin").Err(err).Msg("failed to publish catalog reload")
		}

		details := map[string]interface{}{"pitches": cat.Len(), "sessions": sessions}
		admin.LogAdminAction(db, c.ClientIP(), c.FullPath(), "catalog_reload", details, true)
		c.JSON(http.StatusOK, gin.H{
			"source":   holder.Source().Name(),
			"teams":    len(cat.Teams()),
			"pitches":  cat.Len(),
			"sessions": sessions,
		})
	}
}

// AdminAuditLogs lists recent admin actions.
func AdminAuditLogs(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit log requires a database"})
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if limit <= 0 || limit > 500 {
			limit = 50
		}
		if offset < 0 {
			offset = 0
		}

		logs, err := admin.GetAdminAuditLogs(db, limit, offset)
		if err != nil {
			log.Error().Str("component", "admin").Err(err).Msg("failed to read audit log")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"logs": logs, "limit": limit, "offset": offset})
	}
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/pitchviz/internal/catalog"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthCheck returns server health status and what catalog is being served.
func HealthCheck(holder *catalog.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat := holder.Get()
		info := gin.H{
			"pitches": cat.Len(),
			"teams":   len(cat.Teams()),
		}
		if src := holder.Source(); src != nil {
			info["source"] = src.Name()
		}
		if at := holder.LoadedAt(); !at.IsZero() {
			info["loaded_at"] = at.UTC().Format(time.RFC3339)
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "pitchviz-api",
			"version": version,
			"uptime":  time.Since(startTime).String(),
			"catalog": info,
		})
	}
}

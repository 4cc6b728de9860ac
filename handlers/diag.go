package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devfolio/devfolio/backend/internal/storage"
)

// RegisterDiagnostics mounts connectivity probes for the backing stores.
// Either dependency may be nil when not configured.
func RegisterDiagnostics(rg *gin.Engine, mongoClient *mongo.Client, archive *storage.MinIOStorage) {
	rg.GET("/api/test-db", func(c *gin.Context) {
		if mongoClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": "database not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := mongoClient.Ping(ctx, nil); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rg.GET("/api/test-storage", func(c *gin.Context) {
		if archive == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": "object storage not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		probe := "diag/probe-" + time.Now().UTC().Format("20060102T150405")
		if err := archive.UploadFile(ctx, probe, strings.NewReader("ok"), 2, "text/plain"); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": "object storage unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "probe": probe})
	})
}

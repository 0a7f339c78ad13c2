package http

import (
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Prajapati29/syncroom/internal/config"
	"github.com/Prajapati29/syncroom/internal/core"
	"github.com/Prajapati29/syncroom/internal/media"
)

// NewServer builds the HTTP server: health probe, a read-only sync
// endpoint and the WebSocket entry point.
func NewServer(dispatcher *core.Dispatcher, resolver media.Resolver, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	router.GET("/health", healthHandler)
	router.GET("/api/rooms/:room/sync", syncHandler(dispatcher))

	ws := NewWSHandler(dispatcher, resolver, logger)
	router.GET("/ws", gin.WrapH(ws))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

// syncHandler answers "where should I be?" without mutating the room.
func syncHandler(dispatcher *core.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		room := c.Param("room")
		snap, err := dispatcher.Apply(room, &core.Command{Kind: core.CommandQuerySync}, time.Now())
		if err != nil {
			c.JSON(stdhttp.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(stdhttp.StatusOK, syncFromSnapshot(snap))
	}
}

// requestLogger logs one line per request with zerolog.
func requestLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	}
}

// Package httpapi wires the HTTP transport (Gin) to the webhook handler and
// middleware. It centralizes cross-cutting concerns such as tracing,
// correlation IDs, logging, panic recovery, metrics, CORS, security headers,
// and rate limiting.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per IP)
//  8. CORS and security headers
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/iman0037/PotyBot/internal/bot"
	"github.com/iman0037/PotyBot/internal/config"
	"github.com/iman0037/PotyBot/internal/http/middleware"
	"github.com/iman0037/PotyBot/internal/repo"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine: observability (tracing, metrics), rate limiting, CORS and security
// headers, health and metrics endpoints, and the Telegram webhook.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, h *bot.Handler, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": "not_found", "message": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"code": "method_not_allowed", "message": "method not allowed"})
	})

	// Liveness/health
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Telegram webhook
	r.POST("/webhook/:token", webhook(db, h, cfg.BotToken))
}

// webhook returns the Telegram update endpoint. The path token must match
// the bot token so only Telegram's configured webhook can post updates.
// Updates are deduplicated by update id and dispatched asynchronously: the
// webhook always acknowledges so Telegram does not redeliver on slow
// downstream work.
func webhook(db *gorm.DB, h *bot.Handler, token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("token") != token {
			c.JSON(http.StatusNotFound, gin.H{"code": "not_found", "message": "route not found"})
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "bad_request", "message": "unreadable body"})
			return
		}

		var upd tgbotapi.Update
		if err := json.Unmarshal(body, &upd); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("malformed webhook update")
			c.JSON(http.StatusBadRequest, gin.H{"code": "bad_request", "message": "malformed update"})
			return
		}

		first, err := repo.MarkUpdateProcessed(c.Request.Context(), db, upd.UpdateID, time.Now())
		if err != nil {
			middleware.LoggerFrom(c).Error().Err(err).Int("update_id", upd.UpdateID).Msg("dedup check failed")
			// Fail open: processing twice beats dropping an update.
			first = true
		}
		if !first {
			middleware.LoggerFrom(c).Debug().Int("update_id", upd.UpdateID).Msg("duplicate update dropped")
			c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
			return
		}

		go h.HandleUpdate(context.Background(), upd)

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

package server

import (
	"github.com/gin-gonic/gin"

	"querium-backend/internal/chat"
	"querium-backend/internal/documents"
	"querium-backend/internal/services/health"
	"querium-backend/internal/shared/config"
	"querium-backend/internal/shared/metrics"
	"querium-backend/internal/shared/server/middleware"
	"querium-backend/internal/shared/server/respond"
)

// RouterDeps holds handlers and dependencies for routing.
type RouterDeps struct {
	Config          config.Config
	Metrics         *metrics.Metrics
	Health          *health.Service
	DocumentHandler *documents.Handler
	ChatHandler     *chat.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		deps.Metrics.Middleware(),
		middleware.RateLimit(rateLimitConfig(deps.Config)),
	)

	r.GET("/", func(c *gin.Context) {
		respond.Message(c, "Querium API is running")
	})
	r.GET("/metrics", deps.Metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, deps.Health.Status())
	})
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(api)
	}

	return r
}

func rateLimitConfig(cfg config.Config) middleware.RateLimitConfig {
	rules := map[string]middleware.RateLimitRule{}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
		rules[middleware.RateLimitGroupDefault] = middleware.RateLimitRule{Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst}
	}
	if cfg.UploadRateLimitRPS > 0 && cfg.UploadRateLimitBurst > 0 {
		rules[middleware.RateLimitGroupUpload] = middleware.RateLimitRule{Rate: cfg.UploadRateLimitRPS, Burst: cfg.UploadRateLimitBurst}
	}
	return middleware.RateLimitConfig{
		Rules:    rules,
		GroupFor: middleware.UploadGroup,
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

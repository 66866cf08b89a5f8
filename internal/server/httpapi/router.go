package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
	"github.com/gin-gonic/gin"
)

// ServiceName is reported by / and /health.
const ServiceName = "GameKeeper Backend"

const healthTimeout = 2 * time.Second

type handler struct {
	accounts AccountService
	saves    SaveService
	presence PresenceService
	db       Pinger
	now      func() time.Time
}

// NewRouter wires the middleware chain and routes onto a fresh gin engine.
func NewRouter(log logging.Logger, opts Options, tokens TokenValidator, accounts AccountService,
	saves SaveService, presence PresenceService, db Pinger) *gin.Engine {
	h := &handler{accounts: accounts, saves: saves, presence: presence, db: db, now: time.Now}

	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		log.Error(context.Background(), "invalid trusted proxies, using peer address", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(
		requestID(),
		requestLogger(log),
		recovery(log),
		securityHeaders(),
		corsMiddleware(opts.AllowedOrigins),
		bodyLimit(opts.BodyLimitBytes),
	)

	r.GET("/", h.root)
	r.GET("/health", h.health)

	api := r.Group("/api")
	api.Use(rateLimit(opts.RateLimitRequests, opts.RateLimitWindow))

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)
	authGroup.POST("/logout", h.logout)
	authGroup.GET("/verify", h.verify)

	player := api.Group("/player")
	player.Use(requireAuth(tokens, accounts))
	player.GET("/data", h.getData)
	player.PUT("/data", h.putData)
	player.POST("/character", h.createCharacter)
	player.GET("/online", h.online)
	player.POST("/heartbeat", h.heartbeat)

	r.NoRoute(func(c *gin.Context) {
		respondKind(c, http.StatusNotFound, common.KindNotFound, "Endpoint not found")
	})

	return r
}

func (h *handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": ServiceName + " API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"health": "/health",
			"auth": gin.H{
				"register": "POST /api/auth/register",
				"login":    "POST /api/auth/login",
				"logout":   "POST /api/auth/logout",
				"verify":   "GET /api/auth/verify",
			},
			"player": gin.H{
				"data":      "GET /api/player/data",
				"save":      "PUT /api/player/data",
				"character": "POST /api/player/character",
				"online":    "GET /api/player/online",
				"heartbeat": "POST /api/player/heartbeat",
			},
		},
	})
}

func (h *handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status, code := "healthy", http.StatusOK
	if err := h.db.PingContext(ctx); err != nil {
		_ = c.Error(err)
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"service":   ServiceName,
		"timestamp": h.now().UTC().Format(time.RFC3339Nano),
	})
}

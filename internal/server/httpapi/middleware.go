package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
	"github.com/dmitrijs2005/gamekeeper/internal/server/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the middleware.
const (
	requestIDKey = "request_id"
	claimsKey    = "claims"
)

// requestID propagates X-Request-ID, generating a UUID when absent.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

// requestLogger logs one line per request after it completes.
func requestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error(c.Request.Context(), "request failed", args...)
		default:
			log.Info(c.Request.Context(), "request", args...)
		}
	}
}

// recovery turns panics into a 500 error body.
func recovery(log logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error(c.Request.Context(), "panic recovered", "request_id", c.GetString(requestIDKey), "panic", recovered)
		respondKind(c, http.StatusInternalServerError, common.KindStorage, "internal server error")
	})
}

// securityHeaders sets conservative response headers. Cross-origin embedding
// and CSP are left alone so web game exports can load the API.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Referrer-Policy", "no-referrer")
		c.Next()
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	return cors.New(cors.Config{
		// A function rather than AllowOrigins: "null" is not a URL and
		// would fail the library's origin validation.
		AllowOriginFunc: func(origin string) bool {
			_, ok := allowed[origin]
			return ok
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", common.AuthorizationHeaderName, "X-Requested-With", common.RequestIDHeaderName},
		ExposeHeaders:    []string{common.RequestIDHeaderName},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// bodyLimit caps request bodies at n bytes.
func bodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(c.GetHeader(common.AuthorizationHeaderName), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// requireAuth validates the bearer token, stores its claims and refreshes
// the caller's presence. A missing token is 401; a bad or expired one 403.
func requireAuth(tokens TokenValidator, accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respondKind(c, http.StatusUnauthorized, common.KindInvalidSignature, "access token required")
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			respondKind(c, http.StatusForbidden, common.Kind(err), "invalid or expired token")
			return
		}

		c.Set(claimsKey, claims)
		accounts.Touch(c.Request.Context(), claims.AccountID)
		c.Next()
	}
}

func currentClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

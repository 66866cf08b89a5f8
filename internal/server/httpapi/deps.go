// Package httpapi is the JSON-over-HTTP boundary of the game backend, built
// on gin. It translates requests into service calls and service errors into
// status codes.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/server/auth"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
)

// AccountService is the account and session surface used by the handlers.
type AccountService interface {
	Register(ctx context.Context, username, email, password string) (*models.Account, string, error)
	Login(ctx context.Context, username, password string) (*models.Account, string, error)
	Logout(ctx context.Context, token string)
	Verify(ctx context.Context, token string) (*auth.Claims, error)
	Touch(ctx context.Context, accountID string)
}

// SaveService is the save store surface used by the handlers.
type SaveService interface {
	Get(ctx context.Context, accountID string) (*models.SaveRecord, error)
	Create(ctx context.Context, accountID, name, class string) (*models.SaveRecord, error)
	Save(ctx context.Context, accountID string, rec *models.SaveRecord) (*models.SaveRecord, error)
}

// PresenceService is the presence surface used by the handlers.
type PresenceService interface {
	MarkOnline(ctx context.Context, accountID string) error
	ListOnline(ctx context.Context) ([]models.OnlinePlayer, error)
}

// TokenValidator checks bearer tokens without touching storage.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// Pinger reports database reachability for /health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options tunes the router's cross-cutting middleware.
type Options struct {
	AllowedOrigins    []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	BodyLimitBytes    int64
	// TrustedProxies lists proxy IPs or CIDRs whose forwarding headers are
	// believed. Empty means the client IP is always the peer address.
	TrustedProxies []string
}

package common

import "time"

const (
	// AuthorizationHeaderName carries "Bearer <token>" on API requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName is echoed back on every HTTP response.
	RequestIDHeaderName = "X-Request-ID"

	// PresenceWindow is how long a presence entry counts as online after
	// its last heartbeat.
	PresenceWindow = 5 * time.Minute

	// TokenValidity is the default session token lifetime.
	TokenValidity = 7 * 24 * time.Hour
)

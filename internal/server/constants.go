package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
	ErrMsgUnknownGame     = "unknown game"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "⚠️ SECURITY ALERT: Multiple failed authentication attempts"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Ops server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgRateLimited      = "Client rate limited"
	LogMsgForcedDrop       = "Forced drop via ops API"
	LogMsgEncodeFailed     = "Failed to encode response"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Health states
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
	StatusReady    = "ready"
	StatusNotReady = "not ready"
)

// Limits
const (
	FailedAuthAlertThreshold = 5
	FailedAuthWindow         = 5 * time.Minute
	ClientRatePerSecond      = 10
	ClientBurst              = 50
	ClientCacheSize          = 1024
	ClientIdleTTL            = 10 * time.Minute
	MaxRequestBytes          = 1 << 10
	ReadHeaderTimeout        = 5 * time.Second
	ReadinessTimeout         = 2 * time.Second
)

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)

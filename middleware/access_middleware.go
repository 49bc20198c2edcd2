package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/upb/moltbot-gateway/access"
	"github.com/upb/moltbot-gateway/utils"
	"go.uber.org/zap"
)

// TokenValidator defines the interface for validating Access tokens
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*access.Identity, error)
}

// AccessMiddleware guards routes behind Cloudflare Access
type AccessMiddleware struct {
	validator TokenValidator
	logger    *zap.Logger
	dev       bool
}

// NewAccessMiddleware creates a new AccessMiddleware
func NewAccessMiddleware(validator TokenValidator, logger *zap.Logger) *AccessMiddleware {
	return &AccessMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// NewDevAccessMiddleware admits every request as a local developer, with or
// without a token.
func NewDevAccessMiddleware(logger *zap.Logger) *AccessMiddleware {
	return &AccessMiddleware{
		validator: devValidator{},
		logger:    logger,
		dev:       true,
	}
}

// DevIdentity is attached to requests admitted in dev mode
var DevIdentity = access.Identity{Subject: "dev", Email: "dev@localhost"}

type devValidator struct{}

func (devValidator) ValidateToken(context.Context, string) (*access.Identity, error) {
	id := DevIdentity
	return &id, nil
}

const (
	// accessHeaderName is set by Cloudflare on every request it proxies
	accessHeaderName = "Cf-Access-Jwt-Assertion"
	// accessCookieName is set in the browser after an Access login
	accessCookieName = "CF_Authorization"
)

// RequireAccess is a middleware that requires a valid Access token
func (m *AccessMiddleware) RequireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		token := extractToken(r)
		if token == "" && !m.dev {
			m.logger.Warn("missing access token",
				zap.String("request_id", requestID),
				zap.String("path", r.URL.Path))
			_ = utils.WriteUnauthorized(w, "Missing Cloudflare Access token")
			return
		}

		id, err := m.validator.ValidateToken(ctx, token)
		if err != nil {
			m.logger.Warn("access token validation failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, "Invalid or expired token")
			return
		}

		ctx = WithIdentity(ctx, id)

		m.logger.Debug("access granted",
			zap.String("request_id", requestID),
			zap.String("identity", id.Name()))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken looks in the Access header, then the Authorization header,
// then the CF_Authorization cookie.
func extractToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(accessHeaderName)); token != "" {
		return token
	}
	if token := extractBearerToken(r); token != "" {
		return token
	}
	if cookie, err := r.Cookie(accessCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

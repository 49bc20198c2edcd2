package middleware

import (
	"context"

	"github.com/upb/moltbot-gateway/access"
)

// Context key type to avoid collisions
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"

	// IdentityKey is the context key for the Access identity
	IdentityKey contextKey = "identity"
)

// GetRequestIDFromContext retrieves the request ID from context
func GetRequestIDFromContext(ctx context.Context) string {
	if val := ctx.Value(RequestIDKey); val != nil {
		if requestID, ok := val.(string); ok {
			return requestID
		}
	}
	return ""
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetIdentityFromContext retrieves the Access identity from context
func GetIdentityFromContext(ctx context.Context) *access.Identity {
	if val := ctx.Value(IdentityKey); val != nil {
		if id, ok := val.(*access.Identity); ok {
			return id
		}
	}
	return nil
}

// WithIdentity adds the Access identity to the context
func WithIdentity(ctx context.Context, id *access.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

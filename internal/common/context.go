package common

import (
	"context"
	"time"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
	ContextKeyIntakeID  contextKey = "intake_id"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// WithIntakeID adds an intake ID to the context
func WithIntakeID(ctx context.Context, intakeID string) context.Context {
	return context.WithValue(ctx, ContextKeyIntakeID, intakeID)
}

// IntakeIDFromContext extracts the intake ID from context
func IntakeIDFromContext(ctx context.Context) string {
	if intakeID, ok := ctx.Value(ContextKeyIntakeID).(string); ok {
		return intakeID
	}
	return ""
}

// WithTimeout creates a context with the specified timeout
func WithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

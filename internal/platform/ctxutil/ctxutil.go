// Copyright (c) 2026 Aethercal. All rights reserved.

// Package ctxutil reads and writes the request-scoped values Aethercal
// carries through [context.Context]: the request ID, the per-request logger,
// and the authenticated caller's claims. Middleware writes them once at the
// edge; handlers and services only ever read.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/aetherialcal/aethercal/internal/platform/ctxkey"
	"github.com/aetherialcal/aethercal/internal/platform/sec"
)

// # Request Tracing

// WithRequestID attaches the correlation ID assigned to this request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the request's correlation ID, or "" when the request
// never passed through the RequestID middleware.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger attaches the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request-scoped logger, falling back to
// [slog.Default] so callers never need a nil check.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithAuthUser attaches the verified token claims for the caller.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser returns the caller's [*sec.AuthClaims], or nil for an
// unauthenticated request.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

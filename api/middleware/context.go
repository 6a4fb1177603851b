package middleware

import (
	"context"

	"github.com/aurelia-jewels/storefront-gateway/internal/auth"
)

type ctxKey int

const (
	ctxSession ctxKey = iota
)

// WithSession seeds the request context with a resolved gateway session.
func WithSession(ctx context.Context, session *auth.Session) context.Context {
	return context.WithValue(ctx, ctxSession, session)
}

// SessionFromContext returns the resolved session, or nil outside the auth
// middleware.
func SessionFromContext(ctx context.Context) *auth.Session {
	if session, ok := ctx.Value(ctxSession).(*auth.Session); ok {
		return session
	}
	return nil
}

package api

import (
	"context"

	"github.com/musicbox-io/musicbox/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// WithSession adds the session to the context
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// GetSession retrieves the session from the context
func GetSession(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok
}

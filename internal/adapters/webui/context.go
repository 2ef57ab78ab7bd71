package webui

import (
	"context"

	"github.com/revquotes/console/internal/domain"
)

type sessionKey struct{}

type sessionInfo struct {
	Session domain.Session
	State   domain.AuthState
}

func withSession(ctx context.Context, sess domain.Session, state domain.AuthState) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionInfo{Session: sess, State: state})
}

// SessionFromContext returns the session the loader middleware attached.
// The zero session (anonymous) is returned when the loader did not run.
func SessionFromContext(ctx context.Context) (domain.Session, domain.AuthState) {
	v, ok := ctx.Value(sessionKey{}).(sessionInfo)
	if !ok {
		return domain.Session{}, domain.AuthAnonymous
	}
	return v.Session, v.State
}

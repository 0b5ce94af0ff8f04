package auth

import "context"

// Session holds the authenticated identity extracted from a request. It is
// attached to the request context by the middleware; handlers read it back
// with FromContext instead of relying on any ambient global.
type Session struct {
	Username string
}

type sessionContextKey struct{}

// WithSession returns a new context with the Session attached.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// FromContext retrieves the Session from the context, returning nil if not
// present.
func FromContext(ctx context.Context) *Session {
	val := ctx.Value(sessionContextKey{})
	if val == nil {
		return nil
	}
	session, ok := val.(*Session)
	if !ok {
		return nil
	}
	return session
}

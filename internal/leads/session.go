package leads

import "context"

// SessionStore hands out the lead collection owned by a client session.
type SessionStore interface {
	// Collection returns the session's collection, creating an empty one on first use.
	Collection(ctx context.Context, sessionID string) (*Collection, error)
	// Drop discards the session and its leads.
	Drop(ctx context.Context, sessionID string) error
}

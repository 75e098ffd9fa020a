// Package identity carries the authenticated caller through a request's
// context. The auth guard is the only writer.
package identity

import (
	"context"

	"github.com/ErlanBelekov/task-api/internal/domain"
)

type ctxKey struct{}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the authenticated user, or nil outside a guarded route.
func FromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(ctxKey{}).(*domain.User)
	return u
}

// UserID is a convenience for FromContext(ctx).ID. Returns "" if absent.
func UserID(ctx context.Context) string {
	if u := FromContext(ctx); u != nil {
		return u.ID
	}
	return ""
}

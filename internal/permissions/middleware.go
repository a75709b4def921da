package permissions

import (
	"context"
	"net/http"

	"github.com/irevlogix/irevlogix-console/internal/credential"
)

// Source resolves UserPermissions for a token.
type Source interface {
	Resolve(ctx context.Context, token string) UserPermissions
}

type contextKey struct{}

// ContextWith stores resolved permissions in context.
func ContextWith(ctx context.Context, up UserPermissions) context.Context {
	return context.WithValue(ctx, contextKey{}, up)
}

// FromContext returns the permissions resolved for this request, or Empty.
func FromContext(ctx context.Context) UserPermissions {
	up, _ := ctx.Value(contextKey{}).(UserPermissions)
	return up
}

// Middleware resolves permissions once per page load and threads them through
// the request context for rendering code.
type Middleware struct {
	Source Source
}

// Load resolves the caller's permissions when a bearer credential is present.
// Requests without a credential carry Empty.
func (m Middleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		up := Empty()
		if cred, ok := credential.FromRequest(r); ok {
			ctx = credential.ContextWith(ctx, cred)
			if m.Source != nil {
				up = m.Source.Resolve(ctx, cred.Token)
			}
		}
		next.ServeHTTP(w, r.WithContext(ContextWith(ctx, up)))
	})
}

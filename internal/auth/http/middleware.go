package http

import (
	"context"
	"net/http"

	"github.com/snapvault/snapvault/internal/auth/domain"
	"github.com/snapvault/snapvault/internal/auth/service"
	"github.com/snapvault/snapvault/pkg/httpx"
	"github.com/snapvault/snapvault/pkg/jwtx"
)

type userCtxKey struct{}

// userFromCtx returns the identity placed in the context by requireSession.
func userFromCtx(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(domain.User)
	return u, ok
}

// requireSession authenticates the request with an access-scope bearer token
// via the session resolver and stores the resulting identity in the request
// context.
func (r *Router) requireSession() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			raw := httpx.BearerToken(req)
			if raw == "" {
				httpx.WriteBearerError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			user, _, err := r.SessionService.Resolve(req.Context(), raw, jwtx.ScopeAccess)
			if err != nil {
				writeServiceError(w, err)
				return
			}

			ctx := context.WithValue(req.Context(), userCtxKey{}, user)
			ctx = httpx.WithSubject(ctx, user.Email, user.Role.String())
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// requireRole gates a route on the authenticated user's role. Must sit inside
// requireSession in the chain.
func (r *Router) requireRole(allowed ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			user, ok := userFromCtx(req.Context())
			if !ok {
				httpx.WriteBearerError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			if err := service.RequireRole(user, allowed...); err != nil {
				writeServiceError(w, err)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

package auth

import (
	"context"
	"net/http"
)

type contextKey string

const identityKey contextKey = "identity"

// RequireAuth is middleware that redirects unauthenticated requests to the
// login page. Public paths pass through untouched. The validated Identity is
// stored on the request context for downstream handlers.
//
// This is a pure guard: it reads session state only and never queries
// business tables.
func RequireAuth(sessions *SessionStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		ident, err := sessions.Validate(r)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
	})
}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFromContext returns the identity attached by RequireAuth,
// or the anonymous identity when none is present.
func IdentityFromContext(ctx context.Context) Identity {
	if ident, ok := ctx.Value(identityKey).(Identity); ok {
		return ident
	}
	return Anonymous()
}

func isPublicPath(path string) bool {
	switch path {
	case "/", "/login", "/register", "/logout", "/health":
		return true
	}
	return false
}

package auth

import (
	"net/http"
	"strings"
)

// Scopes recognized by the dashboard API.
const (
	ScopeExportsWrite = "exports:write"
	ScopeExportsRead  = "exports:read"
)

// Skipper allows callers to bypass authentication for specific
// requests. Health checks and the metrics scrape stay open.
type Skipper func(r *http.Request) bool

// DefaultSkipper exempts the unauthenticated operational endpoints
// and CORS preflights, which never carry an Authorization header.
func DefaultSkipper(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return true
	}
	return r.URL.Path == "/healthz" || r.URL.Path == "/metrics"
}

// Middleware provides HTTP middleware for bearer-token validation.
type Middleware struct {
	Config  Config
	Skipper Skipper
}

// NewMiddleware constructs a middleware with the default skipper.
func NewMiddleware(cfg Config) Middleware {
	return Middleware{Config: cfg, Skipper: DefaultSkipper}
}

// Wrap wraps an http.Handler with authentication.
func (m Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Skipper != nil && m.Skipper(r) {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.parseRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		ctx := WithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m Middleware) parseRequest(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrMissingToken
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return nil, ErrInvalidToken
	}
	token := strings.TrimSpace(header[len("Bearer "):])
	return Parse(token, m.Config)
}

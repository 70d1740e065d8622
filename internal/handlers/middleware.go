package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/drewham94/AMai-Code/internal/auth"
	"github.com/drewham94/AMai-Code/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserEmailContextKey ContextKey = "userEmail"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens *auth.TokenManager
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *auth.TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireSession is middleware that requires a valid session cookie.
// Requests without one get 401 with a JSON message body.
func (m *Middleware) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.SessionCookieName)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}

		email, err := m.tokens.Verify(cookie.Value)
		if err != nil {
			// Clear the bad cookie so the client stops sending it
			http.SetCookie(w, auth.CreateDeleteCookie(r))
			respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}

		ctx := context.WithValue(r.Context(), UserEmailContextKey, email)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects requests from clients that exceed the limiter's
// budget. Used on the login route, which has no credential to brute
// force but can still be hammered.
func RateLimit(limiter *security.RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(security.GetClientIP(r)) {
			respondJSON(w, http.StatusTooManyRequests, map[string]string{"message": "Too many requests"})
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// EmailFromContext retrieves the authenticated email from the request
// context
func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailContextKey).(string)
	return email
}

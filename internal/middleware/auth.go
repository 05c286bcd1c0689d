// internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jason-s-yu/pushups/internal/auth"
	"github.com/sirupsen/logrus"
)

type ctxKey int

const sessionKey ctxKey = iota

// TokenVerifier validates a session token.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Session is attached to the request context for authenticated requests.
type Session struct {
	auth.Claims
	Token string
}

// SessionFrom returns the session attached by OptionalAuth, if any.
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}

// UserID returns the authenticated user id, if any.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	s, ok := SessionFrom(ctx)
	return s.UserID, ok
}

// WithSession returns ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// Authenticator resolves the auth_token cookie into a Session.
type Authenticator struct {
	Verifier TokenVerifier
	Revoked  RevocationChecker // optional
	Logger   *logrus.Logger
}

// OptionalAuth attaches the session when a valid, unrevoked token is present.
// Requests without one continue anonymously.
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, ok := a.session(r); ok {
			r = r.WithContext(WithSession(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without a valid session with 401.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return a.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFrom(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"Unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (a *Authenticator) session(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}
	claims, err := a.Verifier.Verify(cookie.Value)
	if err != nil {
		return Session{}, false
	}
	if a.Revoked != nil {
		revoked, err := a.Revoked.IsRevoked(r.Context(), claims.TokenID)
		if err != nil {
			// fail closed
			if a.Logger != nil {
				a.Logger.WithError(err).Warn("could not check token revocation")
			}
			return Session{}, false
		}
		if revoked {
			return Session{}, false
		}
	}
	return Session{Claims: claims, Token: cookie.Value}, true
}

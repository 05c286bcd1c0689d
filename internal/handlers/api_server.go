// internal/handlers/api_server.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/pushups/internal/auth"
	"github.com/jason-s-yu/pushups/internal/database"
	"github.com/jason-s-yu/pushups/internal/middleware"
	"github.com/jason-s-yu/pushups/internal/models"
	"github.com/jason-s-yu/pushups/internal/pushup"
	"github.com/jason-s-yu/pushups/internal/realtime"
	"github.com/sirupsen/logrus"
)

// UserStore is the account persistence used by the handlers.
type UserStore interface {
	CreateUser(ctx context.Context, username, password string) (*models.User, error)
	AuthenticateUser(ctx context.Context, username, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// PushupStore is the progress persistence used by the handlers.
type PushupStore interface {
	GetUserStats(ctx context.Context, userID uuid.UUID) (models.UserStats, error)
	RecordSubmission(ctx context.Context, userID uuid.UUID, sub pushup.Submission) (database.Submission, error)
	RecentPushupRecords(ctx context.Context, userID uuid.UUID, limit int) ([]models.PushupRecord, error)
}

// SettingsStore persists user preferences.
type SettingsStore interface {
	GetUserSettings(ctx context.Context, userID uuid.UUID) (models.UserSettings, error)
	UpdateUserSettings(ctx context.Context, userID uuid.UUID, patch models.SettingsPatch) (models.UserSettings, error)
}

// Store is everything the API needs from the database. *database.Store implements it.
type Store interface {
	UserStore
	PushupStore
	SettingsStore
}

// SessionIssuer signs session tokens.
type SessionIssuer interface {
	middleware.TokenVerifier
	Issue(userID uuid.UUID) (string, auth.Claims, error)
	TTL() time.Duration
}

// TokenRevoker records logged-out tokens.
type TokenRevoker interface {
	middleware.RevocationChecker
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// EventPublisher queues rank change events for the historian.
type EventPublisher interface {
	PublishRankEvent(ctx context.Context, ev models.RankEvent) error
}

// APIServer holds the dependencies of the HTTP API.
type APIServer struct {
	Store     Store
	Sessions  SessionIssuer
	Revoker   TokenRevoker   // optional; logout is cookie-only without it
	Events    EventPublisher // optional
	Hub       *realtime.Hub  // optional
	Logger    *logrus.Logger
	StaticDir string
	// SecureCookies marks the session cookie Secure (production).
	SecureCookies bool
	// OriginPatterns are passed to websocket.Accept.
	OriginPatterns []string

	now func() time.Time
}

// NewAPIServer returns an APIServer with the required dependencies set.
func NewAPIServer(store Store, sessions SessionIssuer, logger *logrus.Logger) *APIServer {
	return &APIServer{
		Store:    store,
		Sessions: sessions,
		Logger:   logger,
		now:      time.Now,
	}
}

func (s *APIServer) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Routes builds the HTTP handler tree.
func (s *APIServer) Routes() http.Handler {
	authn := &middleware.Authenticator{Verifier: s.Sessions, Logger: s.Logger}
	if s.Revoker != nil {
		authn.Revoked = s.Revoker
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.HealthHandler)

	// rank
	mux.HandleFunc("GET /api/calculate-rank", s.CalculateRankHandler)
	mux.HandleFunc("GET /api/anonymous-template", s.AnonymousTemplateHandler)

	// pushups
	mux.Handle("POST /api/pushups", authn.OptionalAuth(http.HandlerFunc(s.SubmitPushupsHandler)))
	mux.Handle("GET /api/pushups", authn.RequireAuth(http.HandlerFunc(s.ListPushupsHandler)))

	// accounts
	mux.HandleFunc("POST /api/register", s.RegisterHandler)
	mux.HandleFunc("POST /api/login", s.LoginHandler)
	mux.Handle("POST /api/logout", authn.OptionalAuth(http.HandlerFunc(s.LogoutHandler)))
	mux.Handle("GET /api/profile", authn.RequireAuth(http.HandlerFunc(s.ProfileHandler)))

	// settings
	mux.Handle("GET /api/settings", authn.RequireAuth(http.HandlerFunc(s.GetSettingsHandler)))
	mux.Handle("PUT /api/settings", authn.RequireAuth(http.HandlerFunc(s.UpdateSettingsHandler)))

	// realtime
	if s.Hub != nil {
		mux.Handle("GET /api/ws", authn.RequireAuth(http.HandlerFunc(s.WebsocketHandler)))
	}

	mux.HandleFunc("GET /api/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	if s.StaticDir != "" {
		mux.Handle("GET /", s.StaticHandler())
	}

	return mux
}

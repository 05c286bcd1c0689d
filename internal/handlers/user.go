package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/pushups/internal/auth"
	"github.com/jason-s-yu/pushups/internal/database"
	"github.com/jason-s-yu/pushups/internal/middleware"
	"github.com/jason-s-yu/pushups/internal/models"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *credentials) validate() error {
	c.Username = strings.TrimSpace(c.Username)
	if len(c.Username) < minUsernameLength {
		return errors.New("username must contain at least 3 characters")
	}
	if len(c.Password) < minPasswordLength {
		return errors.New("password must contain at least 6 characters")
	}
	return nil
}

// setSessionCookie issues a token for userID and sends it as the auth_token cookie.
func (s *APIServer) setSessionCookie(w http.ResponseWriter, userID uuid.UUID) error {
	token, _, err := s.Sessions.Issue(userID)
	if err != nil {
		return err
	}
	cookie := &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl := s.Sessions.TTL(); ttl > 0 {
		cookie.MaxAge = int(ttl / time.Second)
	}
	http.SetCookie(w, cookie)
	return nil
}

func (s *APIServer) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// RegisterHandler creates an account and signs it in.
//
// Request payload:
//
//	{
//	  "username": "alice",
//	  "password": "hunter22"
//	}
func (s *APIServer) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.Store.CreateUser(r.Context(), req.Username, req.Password)
	if errors.Is(err, database.ErrUsernameTaken) {
		writeError(w, http.StatusConflict, "Username already exists")
		return
	}
	if err != nil {
		s.Logger.WithError(err).Error("error registering user")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := s.setSessionCookie(w, user.ID); err != nil {
		s.Logger.WithError(err).Error("failed to issue session token")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.Logger.WithField("user", user.ID).Info("user registered")
	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "User registered successfully",
		"userId":  user.ID,
	})
}

// LoginHandler checks the credentials, sets the session cookie and returns the user's progress.
func (s *APIServer) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.Store.AuthenticateUser(r.Context(), req.Username, req.Password)
	if errors.Is(err, database.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		s.Logger.WithError(err).Error("error logging in")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := s.setSessionCookie(w, user.ID); err != nil {
		s.Logger.WithError(err).Error("failed to issue session token")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	view, err := s.loadUserView(r, user)
	if err != nil {
		s.Logger.WithError(err).Error("failed to load user progress")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Login successful",
		"user":    view,
	})
}

// LogoutHandler revokes the current token (when there is one) and clears the cookie.
func (s *APIServer) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.SessionFrom(r.Context()); ok && s.Revoker != nil {
		var ttl time.Duration
		if !sess.ExpiresAt.IsZero() {
			ttl = sess.ExpiresAt.Sub(s.clock())
		}
		if err := s.Revoker.Revoke(r.Context(), sess.TokenID, ttl); err != nil {
			s.Logger.WithError(err).Error("error logging out")
			writeError(w, http.StatusInternalServerError, "Error logging out")
			return
		}
	}

	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Logged out successfully",
	})
}

type userView struct {
	ID       uuid.UUID           `json:"id"`
	Username string              `json:"username"`
	Stats    models.UserStats    `json:"stats"`
	Settings models.UserSettings `json:"settings"`
}

func (s *APIServer) loadUserView(r *http.Request, u *models.User) (userView, error) {
	stats, err := s.Store.GetUserStats(r.Context(), u.ID)
	if err != nil {
		return userView{}, err
	}
	settings, err := s.Store.GetUserSettings(r.Context(), u.ID)
	if err != nil {
		return userView{}, err
	}
	return userView{ID: u.ID, Username: u.Username, Stats: stats, Settings: settings}, nil
}

// ProfileHandler returns the signed-in user with stats, settings, rank and recent sets.
func (s *APIServer) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	user, err := s.Store.GetUserByID(r.Context(), userID)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		s.Logger.WithError(err).Error("error fetching profile")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	view, err := s.loadUserView(r, user)
	if err != nil {
		s.Logger.WithError(err).Error("error fetching profile")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	info, err := view.Stats.Totals().Rank()
	if err != nil {
		s.Logger.WithError(err).Error("stored stats are invalid")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	records, err := s.Store.RecentPushupRecords(r.Context(), userID, defaultHistoryLimit)
	if err != nil {
		s.Logger.WithError(err).Error("error fetching profile")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if records == nil {
		records = []models.PushupRecord{}
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"user": struct {
			userView
			RecentRecords []models.PushupRecord `json:"recentRecords"`
			Rank          rankView              `json:"rank"`
		}{view, records, viewOf(info)},
	})
}

package handlers

import (
	"net/http"

	"github.com/jason-s-yu/pushups/internal/middleware"
	"github.com/jason-s-yu/pushups/internal/models"
)

// GetSettingsHandler returns the signed-in user's preferences.
func (s *APIServer) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	settings, err := s.Store.GetUserSettings(r.Context(), userID)
	if err != nil {
		s.Logger.WithError(err).Error("failed to load settings")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "settings": settings})
}

// UpdateSettingsHandler applies a partial update; omitted fields keep their value.
func (s *APIServer) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var patch models.SettingsPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	settings, err := s.Store.UpdateUserSettings(r.Context(), userID, patch)
	if err != nil {
		s.Logger.WithError(err).Error("failed to update settings")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "settings": settings})
}

package models

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/pushups/internal/pushup"
)

// UserSettings are a registered user's stored preferences.
type UserSettings struct {
	UserID uuid.UUID `json:"userId"`
	pushup.Settings
}

// SettingsPatch is a partial update; nil fields are left unchanged.
type SettingsPatch struct {
	SoundEnabled         *bool `json:"soundEnabled"`
	NotificationsEnabled *bool `json:"notificationsEnabled"`
	AnimationsEnabled    *bool `json:"animationsEnabled"`
	DarkModeEnabled      *bool `json:"darkModeEnabled"`
}

// Apply returns s with the non-nil fields of p.
func (p SettingsPatch) Apply(s pushup.Settings) pushup.Settings {
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.AnimationsEnabled != nil {
		s.AnimationsEnabled = *p.AnimationsEnabled
	}
	if p.DarkModeEnabled != nil {
		s.DarkModeEnabled = *p.DarkModeEnabled
	}
	return s
}

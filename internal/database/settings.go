// internal/database/settings.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/pushups/internal/models"
	"github.com/jason-s-yu/pushups/internal/pushup"
)

const selectSettings = `
	SELECT sound_enabled, notifications_enabled, animations_enabled, dark_mode_enabled
	FROM user_settings
	WHERE user_id = $1`

func scanSettings(row pgx.Row) (pushup.Settings, error) {
	var st pushup.Settings
	err := row.Scan(&st.SoundEnabled, &st.NotificationsEnabled, &st.AnimationsEnabled, &st.DarkModeEnabled)
	return st, err
}

// GetUserSettings returns the stored settings, or the defaults when none were saved.
func (s *Store) GetUserSettings(ctx context.Context, userID uuid.UUID) (models.UserSettings, error) {
	st, err := scanSettings(s.Pool.QueryRow(ctx, selectSettings, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserSettings{UserID: userID, Settings: pushup.DefaultSettings()}, nil
	}
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("query settings for %s: %w", userID, err)
	}
	return models.UserSettings{UserID: userID, Settings: st}, nil
}

// UpdateUserSettings applies patch to the stored settings, creating the row if needed.
func (s *Store) UpdateUserSettings(ctx context.Context, userID uuid.UUID, patch models.SettingsPatch) (models.UserSettings, error) {
	var out models.UserSettings
	err := pgx.BeginTxFunc(ctx, s.Pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO user_settings (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
		if err != nil {
			return fmt.Errorf("ensure settings row: %w", err)
		}

		cur, err := scanSettings(tx.QueryRow(ctx, selectSettings+` FOR UPDATE`, userID))
		if err != nil {
			return fmt.Errorf("lock settings row: %w", err)
		}
		next := patch.Apply(cur)

		_, err = tx.Exec(ctx, `
			UPDATE user_settings
			SET sound_enabled = $2, notifications_enabled = $3, animations_enabled = $4, dark_mode_enabled = $5
			WHERE user_id = $1`,
			userID, next.SoundEnabled, next.NotificationsEnabled, next.AnimationsEnabled, next.DarkModeEnabled,
		)
		if err != nil {
			return fmt.Errorf("update settings: %w", err)
		}
		out = models.UserSettings{UserID: userID, Settings: next}
		return nil
	})
	if err != nil {
		return models.UserSettings{}, err
	}
	return out, nil
}

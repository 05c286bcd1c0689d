package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/pushups/internal/models"
)

// RecentPushupRecords returns up to limit of the user's sets, newest first.
func (s *Store) RecentPushupRecords(ctx context.Context, userID uuid.UUID, limit int) ([]models.PushupRecord, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, user_id, count, raw_count, difficulty_level, created_at
		FROM pushup_records
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query pushup records: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PushupRecord, error) {
		var r models.PushupRecord
		err := row.Scan(&r.ID, &r.UserID, &r.Count, &r.RawCount, &r.DifficultyLevel, &r.CreatedAt)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan pushup records: %w", err)
	}
	return records, nil
}

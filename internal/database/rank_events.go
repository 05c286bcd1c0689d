// internal/database/rank_events.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/pushups/internal/models"
)

// InsertRankEvents writes a batch of rank changes in a single transaction.
func (s *Store) InsertRankEvents(ctx context.Context, events []models.RankEvent) error {
	if len(events) == 0 {
		return nil
	}
	return pgx.BeginTxFunc(ctx, s.Pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, ev := range events {
			batch.Queue(`
				INSERT INTO rank_events
				    (user_id, from_tier, from_level, to_tier, to_level, total_pushups, max_set, occurred_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				ev.UserID, ev.FromTier, ev.FromLevel, ev.ToTier, ev.ToLevel,
				ev.TotalPushups, ev.MaxSet, time.UnixMilli(ev.Timestamp).UTC(),
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert rank events: %w", err)
		}
		return nil
	})
}

// internal/database/stats.go
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

const selectStats = `
	SELECT user_id, total_pushups, max_set, current_rank_tier, current_rank_level, current_progress
	FROM user_stats
	WHERE user_id = $1`

func scanStats(row pgx.Row) (models.UserStats, error) {
	var s models.UserStats
	err := row.Scan(&s.UserID, &s.TotalPushups, &s.MaxSet, &s.CurrentRankTier, &s.CurrentRankLevel, &s.CurrentProgress)
	return s, err
}

// GetUserStats returns the stats row for userID, or the zero row if none exists yet.
func (s *Store) GetUserStats(ctx context.Context, userID uuid.UUID) (models.UserStats, error) {
	stats, err := scanStats(s.Pool.QueryRow(ctx, selectStats, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewUserStats(userID), nil
	}
	if err != nil {
		return models.UserStats{}, fmt.Errorf("query stats for %s: %w", userID, err)
	}
	return stats, nil
}

// Submission is the result of RecordSubmission.
type Submission struct {
	Record  models.PushupRecord
	Stats   models.UserStats
	Outcome pushup.Outcome
}

// RecordSubmission inserts a pushup record and updates the user's stats in one transaction.
// The stats row is locked so concurrent submissions for the same user serialize.
func (s *Store) RecordSubmission(ctx context.Context, userID uuid.UUID, sub pushup.Submission) (Submission, error) {
	sub, err := sub.Normalize()
	if err != nil {
		return Submission{}, err
	}

	var res Submission
	err = pgx.BeginTxFunc(ctx, s.Pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		zero := models.NewUserStats(userID)
		_, err := tx.Exec(ctx, `
			INSERT INTO user_stats (user_id, current_rank_tier, current_rank_level)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO NOTHING`,
			userID, zero.CurrentRankTier, zero.CurrentRankLevel,
		)
		if err != nil {
			return fmt.Errorf("ensure stats row: %w", err)
		}

		prev, err := scanStats(tx.QueryRow(ctx, selectStats+` FOR UPDATE`, userID))
		if err != nil {
			return fmt.Errorf("lock stats row: %w", err)
		}

		out, err := pushup.Apply(prev.Totals(), sub)
		if err != nil {
			return err
		}
		next := prev.WithOutcome(out)

		_, err = tx.Exec(ctx, `
			UPDATE user_stats
			SET total_pushups = $2, max_set = $3, current_rank_tier = $4,
			    current_rank_level = $5, current_progress = $6
			WHERE user_id = $1`,
			userID, next.TotalPushups, next.MaxSet, next.CurrentRankTier, next.CurrentRankLevel, next.CurrentProgress,
		)
		if err != nil {
			return fmt.Errorf("update stats: %w", err)
		}

		rec := models.PushupRecord{
			UserID:          userID,
			Count:           out.EffectiveCount,
			RawCount:        sub.Count,
			DifficultyLevel: sub.DifficultyLevel,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO pushup_records (user_id, count, raw_count, difficulty_level)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			rec.UserID, rec.Count, rec.RawCount, rec.DifficultyLevel,
		).Scan(&rec.ID, &rec.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert pushup record: %w", err)
		}

		res = Submission{Record: rec, Stats: next, Outcome: out}
		return nil
	})
	if err != nil {
		return Submission{}, err
	}
	return res, nil
}

// internal/models/stats.go
package models

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/pushups/internal/pushup"
	"github.com/jason-s-yu/pushups/internal/rank"
)

// UserStats is the persisted progress row, one per user.
// The rank fields are a cache of rank.Calculate over the totals.
type UserStats struct {
	UserID           uuid.UUID `json:"userId"`
	TotalPushups     int       `json:"totalPushups"`
	MaxSet           int       `json:"maxSet"`
	CurrentRankTier  rank.Tier `json:"currentRankTier"`
	CurrentRankLevel int       `json:"currentRankLevel"`
	CurrentProgress  int       `json:"currentProgress"`
}

// NewUserStats returns the zero row for a user that has not submitted anything yet.
func NewUserStats(userID uuid.UUID) UserStats {
	return UserStats{
		UserID:           userID,
		CurrentRankTier:  rank.Bronze,
		CurrentRankLevel: 1,
	}
}

// Totals returns the counters the rank is derived from.
func (s UserStats) Totals() pushup.Totals {
	return pushup.Totals{TotalPushups: s.TotalPushups, MaxSet: s.MaxSet}
}

// WithOutcome returns s updated with the totals and rank of a submission.
func (s UserStats) WithOutcome(out pushup.Outcome) UserStats {
	s.TotalPushups = out.Totals.TotalPushups
	s.MaxSet = out.Totals.MaxSet
	s.CurrentRankTier = out.Rank.Tier
	s.CurrentRankLevel = out.Rank.Level
	s.CurrentProgress = out.Rank.Progress
	return s
}

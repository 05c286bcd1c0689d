// internal/models/rank_event.go
package models

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/pushups/internal/rank"
)

// RankEvent records a user moving to a new tier or level.
type RankEvent struct {
	UserID       uuid.UUID `json:"userId"`
	FromTier     rank.Tier `json:"fromTier"`
	FromLevel    int       `json:"fromLevel"`
	ToTier       rank.Tier `json:"toTier"`
	ToLevel      int       `json:"toLevel"`
	TotalPushups int       `json:"totalPushups"`
	MaxSet       int       `json:"maxSet"`
	Timestamp    int64     `json:"timestamp"` // unix millis
}

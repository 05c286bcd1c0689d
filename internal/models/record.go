package models

import (
	"time"

	"github.com/google/uuid"
)

// PushupRecord is one persisted set. Count is the difficulty-weighted value.
type PushupRecord struct {
	ID              int64     `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	Count           int       `json:"count"`
	RawCount        int       `json:"rawCount"`
	DifficultyLevel string    `json:"difficultyLevel"`
	CreatedAt       time.Time `json:"createdAt"`
}

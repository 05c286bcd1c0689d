package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/pushups/internal/pushup"
	"github.com/jason-s-yu/pushups/internal/rank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStatsWithOutcome(t *testing.T) {
	s := NewUserStats(uuid.New())
	out, err := pushup.Apply(s.Totals(), pushup.Submission{Count: 30, DifficultyLevel: "decline"})
	require.NoError(t, err)

	s2 := s.WithOutcome(out)
	assert.Equal(t, 39, s2.TotalPushups)
	assert.Equal(t, 39, s2.MaxSet)
	assert.Equal(t, rank.Bronze, s2.CurrentRankTier)
	assert.Equal(t, 3, s2.CurrentRankLevel)
	assert.Equal(t, 56, s2.CurrentProgress)
	assert.Equal(t, s.UserID, s2.UserID)
	assert.Equal(t, 0, s.TotalPushups)
}

func TestSettingsPatch(t *testing.T) {
	off := false
	got := SettingsPatch{DarkModeEnabled: &off}.Apply(pushup.DefaultSettings())
	assert.False(t, got.DarkModeEnabled)
	assert.True(t, got.SoundEnabled)
	assert.Equal(t, pushup.DefaultSettings(), SettingsPatch{}.Apply(pushup.DefaultSettings()))
}

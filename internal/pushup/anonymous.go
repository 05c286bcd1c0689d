// internal/pushup/anonymous.go
package pushup

import (
	"fmt"
	"time"

	"github.com/jason-s-yu/pushups/internal/rank"
)

// Settings are the user-facing preferences stored alongside progress.
type Settings struct {
	SoundEnabled         bool `json:"soundEnabled"`
	NotificationsEnabled bool `json:"notificationsEnabled"`
	AnimationsEnabled    bool `json:"animationsEnabled"`
	DarkModeEnabled      bool `json:"darkModeEnabled"`
}

// DefaultSettings has every preference switched on.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:         true,
		NotificationsEnabled: true,
		AnimationsEnabled:    true,
		DarkModeEnabled:      true,
	}
}

// HistoryEntry is one set in an anonymous user's history.
type HistoryEntry struct {
	Date            time.Time `json:"date"`
	Timestamp       int64     `json:"timestamp"` // unix millis
	Count           int       `json:"count"`
	RawCount        int       `json:"rawCount"`
	DifficultyLevel string    `json:"difficultyLevel"`
}

// AnonymousUserData is the progress record kept by clients without an account.
// The server never stores it; it is sent with each submission and returned updated.
type AnonymousUserData struct {
	TotalPushups     int            `json:"totalPushups"`
	MaxSet           int            `json:"maxSet"`
	CurrentRankTier  rank.Tier      `json:"currentRankTier"`
	CurrentRankLevel int            `json:"currentRankLevel"`
	CurrentProgress  int            `json:"currentProgress"`
	History          []HistoryEntry `json:"history"`
	Settings         Settings       `json:"settings"`
}

// NewAnonymousUserData returns the zero-progress template.
func NewAnonymousUserData() AnonymousUserData {
	d := AnonymousUserData{
		History:  []HistoryEntry{},
		Settings: DefaultSettings(),
	}
	return d.withRank(mustCalculate(0, 0))
}

func mustCalculate(total, maxSet int) rank.Info {
	info, err := rank.Calculate(total, maxSet)
	if err != nil {
		panic(fmt.Sprintf("pushup: rank for %d/%d: %v", total, maxSet, err))
	}
	return info
}

// Totals returns the counters the rank is computed from.
func (d AnonymousUserData) Totals() Totals {
	return Totals{TotalPushups: d.TotalPushups, MaxSet: d.MaxSet}
}

// Validate checks a client-supplied record before it is used.
func (d AnonymousUserData) Validate() error {
	if err := d.Totals().Validate(); err != nil {
		return err
	}
	for i, h := range d.History {
		if h.Count < 0 || h.RawCount < 0 {
			return fmt.Errorf("%w: history entry %d has a negative count", ErrInvalidSubmission, i)
		}
		if h.Count > MaxTotal || h.RawCount > MaxTotal {
			return fmt.Errorf("%w: history entry %d exceeds %d pushups", ErrInvalidSubmission, i, MaxTotal)
		}
	}
	return nil
}

// Submit applies sub at time now and returns the updated record. d is not modified.
// The rank before the submission is derived from d's totals, not its cached rank fields.
func (d AnonymousUserData) Submit(sub Submission, now time.Time) (AnonymousUserData, Outcome, error) {
	if err := d.Validate(); err != nil {
		return d, Outcome{}, err
	}
	sub, err := sub.Normalize()
	if err != nil {
		return d, Outcome{}, err
	}
	out, err := Apply(d.Totals(), sub)
	if err != nil {
		return d, Outcome{}, err
	}

	next := d
	next.TotalPushups = out.Totals.TotalPushups
	next.MaxSet = out.Totals.MaxSet

	history := make([]HistoryEntry, 0, len(d.History)+1)
	history = append(history, HistoryEntry{
		Date:            now.UTC(),
		Timestamp:       now.UnixMilli(),
		Count:           out.EffectiveCount,
		RawCount:        sub.Count,
		DifficultyLevel: sub.DifficultyLevel,
	})
	next.History = append(history, d.History...)

	return next.withRank(out.Rank), out, nil
}

func (d AnonymousUserData) withRank(info rank.Info) AnonymousUserData {
	d.CurrentRankTier = info.Tier
	d.CurrentRankLevel = info.Level
	d.CurrentProgress = info.Progress
	return d
}

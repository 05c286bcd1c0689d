// internal/pushup/pushup.go
package pushup

import (
	"errors"
	"fmt"
	"math"

	"github.com/jason-s-yu/pushups/internal/rank"
)

// ErrInvalidSubmission indicates a submission or client record failed validation.
var ErrInvalidSubmission = errors.New("invalid pushup submission")

const (
	// MaxSetCount is the largest raw count accepted for one set.
	MaxSetCount = 10000
	// MaxTotal bounds cumulative and per-set totals; they are stored as 32-bit integers.
	MaxTotal = math.MaxInt32
)

// Submission is a single set reported by a user.
type Submission struct {
	Count           int    `json:"count"`
	DifficultyLevel string `json:"difficultyLevel"`
}

// Normalize fills the default difficulty and validates the count.
func (s Submission) Normalize() (Submission, error) {
	if s.Count < 1 {
		return s, fmt.Errorf("%w: please enter at least 1 pushup", ErrInvalidSubmission)
	}
	if s.Count > MaxSetCount {
		return s, fmt.Errorf("%w: a set cannot exceed %d pushups", ErrInvalidSubmission, MaxSetCount)
	}
	if s.DifficultyLevel == "" {
		s.DifficultyLevel = DefaultDifficulty
	}
	return s, nil
}

// Totals are the two counters a rank is derived from.
type Totals struct {
	TotalPushups int `json:"totalPushups"`
	MaxSet       int `json:"maxSet"`
}

// Validate checks that t is non-negative and storable.
func (t Totals) Validate() error {
	if t.TotalPushups < 0 || t.MaxSet < 0 {
		return fmt.Errorf("%w: pushup totals must not be negative", ErrInvalidSubmission)
	}
	if t.TotalPushups > MaxTotal || t.MaxSet > MaxTotal {
		return fmt.Errorf("%w: pushup totals must not exceed %d", ErrInvalidSubmission, MaxTotal)
	}
	return nil
}

// Add returns the totals after a set of effectiveCount pushups.
func (t Totals) Add(effectiveCount int) Totals {
	return Totals{
		TotalPushups: t.TotalPushups + effectiveCount,
		MaxSet:       max(t.MaxSet, effectiveCount),
	}
}

// Rank computes the rank for t with the default table.
func (t Totals) Rank() (rank.Info, error) {
	return rank.Calculate(t.TotalPushups, t.MaxSet)
}

// Outcome describes the effect of one submission.
type Outcome struct {
	EffectiveCount int       `json:"effectiveCount"`
	Previous       rank.Info `json:"previous"`
	Rank           rank.Info `json:"rank"`
	Totals         Totals    `json:"totals"`
	RankedUp       bool      `json:"rankedUp"`
}

// Apply weights sub by difficulty and folds it into prev.
// RankedUp is set when tier or level changed.
func Apply(prev Totals, sub Submission) (Outcome, error) {
	sub, err := sub.Normalize()
	if err != nil {
		return Outcome{}, err
	}
	before, err := prev.Rank()
	if err != nil {
		return Outcome{}, err
	}
	if err := prev.Validate(); err != nil {
		return Outcome{}, err
	}

	eff := EffectiveCount(sub.Count, sub.DifficultyLevel)
	if prev.TotalPushups > MaxTotal-eff {
		return Outcome{}, fmt.Errorf("%w: total would exceed %d pushups", ErrInvalidSubmission, MaxTotal)
	}
	next := prev.Add(eff)
	after, err := next.Rank()
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		EffectiveCount: eff,
		Previous:       before,
		Rank:           after,
		Totals:         next,
		RankedUp:       !before.SameRank(after),
	}, nil
}

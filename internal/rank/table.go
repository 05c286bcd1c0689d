// internal/rank/table.go
package rank

import (
	"fmt"
)

const (
	// DiamondLevelWidth is the number of pushups per diamond sub-level.
	DiamondLevelWidth = 100
	// DiamondMaxLevel is the terminal diamond level.
	DiamondMaxLevel = 5
)

// Step is a single breakpoint: counts at or above Threshold, and below the next step's
// Threshold, rank as Tier/Level.
type Step struct {
	Threshold int  `json:"threshold"`
	Tier      Tier `json:"tier"`
	Level     int  `json:"level"`
}

// Table maps pushup counts onto ranks. The last step is open ended and is split into
// sub-levels of OpenWidth pushups, capped at OpenMaxLevel.
//
// A Table is immutable once built; use NewTable or Default.
type Table struct {
	steps        []Step
	openWidth    int
	openMaxLevel int
}

var defaultTable = mustTable([]Step{
	{0, Bronze, 1},
	{10, Bronze, 2},
	{25, Bronze, 3},
	{50, Silver, 1},
	{75, Silver, 2},
	{100, Gold, 1},
	{150, Gold, 2},
	{200, Platinum, 1},
	{250, Platinum, 2},
	{300, Diamond, 1},
}, DiamondLevelWidth, DiamondMaxLevel)

// Default returns the standard pushup rank table.
func Default() Table {
	return defaultTable
}

// NewTable validates steps and builds a Table. Thresholds must start at 0 and be strictly
// increasing, every level must be >= 1 and the open-ended step must start at level 1.
func NewTable(steps []Step, openWidth, openMaxLevel int) (Table, error) {
	if len(steps) == 0 {
		return Table{}, fmt.Errorf("%w: table has no steps", ErrInvalidArgument)
	}
	if steps[0].Threshold != 0 {
		return Table{}, fmt.Errorf("%w: first threshold must be 0, got %d", ErrInvalidArgument, steps[0].Threshold)
	}
	if openWidth <= 0 || openMaxLevel < 1 {
		return Table{}, fmt.Errorf("%w: open tier width %d / max level %d", ErrInvalidArgument, openWidth, openMaxLevel)
	}
	for i, s := range steps {
		if !s.Tier.Valid() {
			return Table{}, fmt.Errorf("%w: unknown tier %q", ErrInvalidArgument, s.Tier)
		}
		if s.Level < 1 {
			return Table{}, fmt.Errorf("%w: level %d at step %d", ErrInvalidArgument, s.Level, i)
		}
		if i > 0 && s.Threshold <= steps[i-1].Threshold {
			return Table{}, fmt.Errorf("%w: thresholds not increasing at step %d", ErrInvalidArgument, i)
		}
	}
	if steps[len(steps)-1].Level != 1 {
		return Table{}, fmt.Errorf("%w: open-ended step must start at level 1", ErrInvalidArgument)
	}

	cp := make([]Step, len(steps))
	copy(cp, steps)
	return Table{steps: cp, openWidth: openWidth, openMaxLevel: openMaxLevel}, nil
}

func mustTable(steps []Step, openWidth, openMaxLevel int) Table {
	t, err := NewTable(steps, openWidth, openMaxLevel)
	if err != nil {
		panic(err)
	}
	return t
}

// Steps returns a copy of the table's breakpoints.
func (t Table) Steps() []Step {
	cp := make([]Step, len(t.steps))
	copy(cp, t.steps)
	return cp
}

// Calculate maps max(totalPushups, maxSet) onto the table.
//
// Within a bounded step, progress is the truncated percentage of the way from the step's
// threshold to the next one. In the open-ended step, level grows by one every openWidth
// pushups up to openMaxLevel, which is terminal: progress 100 and no next threshold.
func (t Table) Calculate(totalPushups, maxSet int) (Info, error) {
	if totalPushups < 0 || maxSet < 0 {
		return Info{}, fmt.Errorf("%w: negative pushup count (total=%d, maxSet=%d)", ErrInvalidArgument, totalPushups, maxSet)
	}
	if len(t.steps) == 0 {
		return Info{}, fmt.Errorf("%w: empty rank table", ErrInvalidArgument)
	}
	count := max(totalPushups, maxSet)

	idx := 0
	for i := len(t.steps) - 1; i >= 0; i-- {
		if count >= t.steps[i].Threshold {
			idx = i
			break
		}
	}
	step := t.steps[idx]

	if idx < len(t.steps)-1 {
		low, high := step.Threshold, t.steps[idx+1].Threshold
		next := high
		return Info{
			Tier:          step.Tier,
			Level:         step.Level,
			Progress:      clampProgress((count - low) * 100 / (high - low)),
			NextThreshold: &next,
		}, nil
	}

	over := count - step.Threshold
	level := min(t.openMaxLevel, 1+over/t.openWidth)
	if level == t.openMaxLevel {
		return Info{Tier: step.Tier, Level: level, Progress: 100}, nil
	}
	next := step.Threshold + level*t.openWidth
	return Info{
		Tier:          step.Tier,
		Level:         level,
		Progress:      clampProgress((over % t.openWidth) * 100 / t.openWidth),
		NextThreshold: &next,
	}, nil
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// internal/pushup/difficulty.go
package pushup

import "math"

// Difficulty describes a pushup variation and how heavily it counts.
type Difficulty struct {
	Value    string  `json:"value"`
	Label    string  `json:"label"`
	Modifier float64 `json:"modifier"`
}

// DefaultDifficulty is used when a submission omits its difficulty level.
const DefaultDifficulty = "standard"

var difficulties = []Difficulty{
	{Value: "standard", Label: "Standard", Modifier: 1.0},
	{Value: "knee", Label: "Knee Pushups", Modifier: 0.5},
	{Value: "incline", Label: "Incline", Modifier: 0.7},
	{Value: "decline", Label: "Decline", Modifier: 1.3},
	{Value: "diamond", Label: "Diamond", Modifier: 1.5},
	{Value: "oneArm", Label: "One Arm", Modifier: 2.0},
}

// Difficulties returns a copy of the known difficulty levels in display order.
func Difficulties() []Difficulty {
	cp := make([]Difficulty, len(difficulties))
	copy(cp, difficulties)
	return cp
}

// KnownDifficulty reports whether level is a recognised difficulty value.
func KnownDifficulty(level string) bool {
	for _, d := range difficulties {
		if d.Value == level {
			return true
		}
	}
	return false
}

// Modifier returns the multiplier for a difficulty level. Unknown levels count as 1.0.
func Modifier(level string) float64 {
	for _, d := range difficulties {
		if d.Value == level {
			return d.Modifier
		}
	}
	return 1.0
}

// EffectiveCount weights a raw count by difficulty, rounding half up.
func EffectiveCount(rawCount int, level string) int {
	return int(math.Floor(float64(rawCount)*Modifier(level) + 0.5))
}

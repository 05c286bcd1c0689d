// internal/rank/rank.go
package rank

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is returned when a pushup count is negative.
var ErrInvalidArgument = errors.New("invalid argument")

// Tier is a coarse rank category. Tiers are ordered bronze < silver < gold < platinum < diamond.
type Tier string

const (
	Bronze   Tier = "bronze"
	Silver   Tier = "silver"
	Gold     Tier = "gold"
	Platinum Tier = "platinum"
	Diamond  Tier = "diamond"
)

var tierOrder = map[Tier]int{
	Bronze:   0,
	Silver:   1,
	Gold:     2,
	Platinum: 3,
	Diamond:  4,
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	_, ok := tierOrder[t]
	return ok
}

// Ordinal returns the position of t in the tier ordering, or -1 for an unknown tier.
func (t Tier) Ordinal() int {
	if o, ok := tierOrder[t]; ok {
		return o
	}
	return -1
}

// Info is the computed rank for a pushup count.
//
// NextThreshold is nil once the final level has been reached.
type Info struct {
	Tier          Tier `json:"tier"`
	Level         int  `json:"level"`
	Progress      int  `json:"progress"`
	NextThreshold *int `json:"nextThreshold"`
}

// Compare orders two ranks by tier then level. It returns -1, 0 or 1.
// Progress is not part of the ordering.
func (i Info) Compare(other Info) int {
	a, b := i.Tier.Ordinal(), other.Tier.Ordinal()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case i.Level < other.Level:
		return -1
	case i.Level > other.Level:
		return 1
	}
	return 0
}

// SameRank reports whether i and other share tier and level.
func (i Info) SameRank(other Info) bool {
	return i.Tier == other.Tier && i.Level == other.Level
}

// FormattedRank is FormatName applied to the rank's tier and level.
func (i Info) FormattedRank() string {
	return FormatName(i.Tier, i.Level)
}

// FormatName renders a tier and level for display, e.g. "Bronze Level 2".
func FormatName(tier Tier, level int) string {
	s := string(tier)
	if s != "" {
		s = strings.ToUpper(s[:1]) + s[1:]
	}
	return fmt.Sprintf("%s Level %d", s, level)
}

// Calculate computes the rank for the given counts using the default table.
func Calculate(totalPushups, maxSet int) (Info, error) {
	return defaultTable.Calculate(totalPushups, maxSet)
}

package rank

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCalculateBoundaries(t *testing.T) {
	cases := []struct {
		name  string
		count int
		want  Info
	}{
		{"zero", 0, Info{Bronze, 1, 0, intPtr(10)}},
		{"bronze1 top", 9, Info{Bronze, 1, 90, intPtr(10)}},
		{"bronze2 start", 10, Info{Bronze, 2, 0, intPtr(25)}},
		{"bronze2 truncates", 11, Info{Bronze, 2, 6, intPtr(25)}},
		{"bronze3", 37, Info{Bronze, 3, 48, intPtr(50)}},
		{"silver1", 50, Info{Silver, 1, 0, intPtr(75)}},
		{"silver2", 99, Info{Silver, 2, 96, intPtr(100)}},
		{"gold1", 125, Info{Gold, 1, 50, intPtr(150)}},
		{"gold2", 199, Info{Gold, 2, 98, intPtr(200)}},
		{"platinum1", 200, Info{Platinum, 1, 0, intPtr(250)}},
		{"platinum2", 299, Info{Platinum, 2, 98, intPtr(300)}},
		{"diamond1", 300, Info{Diamond, 1, 0, intPtr(400)}},
		{"diamond1 mid", 342, Info{Diamond, 1, 42, intPtr(400)}},
		{"diamond2", 400, Info{Diamond, 2, 0, intPtr(500)}},
		{"diamond4 top", 699, Info{Diamond, 4, 99, intPtr(700)}},
		{"diamond5 start", 700, Info{Diamond, 5, 100, nil}},
		{"diamond5 terminal", 799, Info{Diamond, 5, 100, nil}},
		{"far beyond", 100000, Info{Diamond, 5, 100, nil}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Calculate(tc.count, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculateUsesMaxOfInputs(t *testing.T) {
	for a := 0; a <= 900; a += 7 {
		for _, b := range []int{0, 5, 60, 310, 650} {
			got, err := Calculate(a, b)
			require.NoError(t, err)
			m := max(a, b)
			want, err := Calculate(m, m)
			require.NoError(t, err)
			assert.Equal(t, want, got, "a=%d b=%d", a, b)
		}
	}

	// a set of 60 outranks a lifetime total of 20
	got, err := Calculate(20, 60)
	require.NoError(t, err)
	assert.Equal(t, Silver, got.Tier)
	assert.Equal(t, 1, got.Level)
}

func TestCalculateInvariants(t *testing.T) {
	prev, err := Calculate(0, 0)
	require.NoError(t, err)

	for count := 0; count <= 1200; count++ {
		info, err := Calculate(count, 0)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, info.Progress, 0, "count=%d", count)
		assert.LessOrEqual(t, info.Progress, 100, "count=%d", count)
		assert.GreaterOrEqual(t, info.Level, 1, "count=%d", count)
		assert.True(t, info.Tier.Valid(), "count=%d", count)
		assert.GreaterOrEqual(t, info.Compare(prev), 0, "rank regressed at count=%d", count)

		if info.NextThreshold != nil {
			assert.Greater(t, *info.NextThreshold, count, "count=%d", count)
		} else {
			assert.Equal(t, 100, info.Progress)
		}
		prev = info
	}
}

func TestCalculateRejectsNegative(t *testing.T) {
	_, err := Calculate(-1, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = Calculate(10, -5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFormatName(t *testing.T) {
	assert.Equal(t, "Bronze Level 2", FormatName(Bronze, 2))
	assert.Equal(t, "Diamond Level 5", FormatName(Diamond, 5))
	assert.Equal(t, " Level 1", FormatName("", 1))

	info, err := Calculate(160, 0)
	require.NoError(t, err)
	assert.Equal(t, "Gold Level 2", info.FormattedRank())
}

func TestCompare(t *testing.T) {
	b3 := Info{Tier: Bronze, Level: 3}
	s1 := Info{Tier: Silver, Level: 1}
	assert.Equal(t, -1, b3.Compare(s1))
	assert.Equal(t, 1, s1.Compare(b3))
	assert.Equal(t, 0, s1.Compare(Info{Tier: Silver, Level: 1, Progress: 40}))
	assert.True(t, s1.SameRank(Info{Tier: Silver, Level: 1, Progress: 99}))
}

func TestNewTableValidation(t *testing.T) {
	_, err := NewTable(nil, 100, 5)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewTable([]Step{{5, Bronze, 1}}, 100, 5)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewTable([]Step{{0, Bronze, 1}, {0, Silver, 1}}, 100, 5)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewTable([]Step{{0, "wood", 1}}, 100, 5)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewTable([]Step{{0, Bronze, 1}}, 0, 5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCustomTable(t *testing.T) {
	tbl, err := NewTable([]Step{
		{0, Bronze, 1},
		{20, Gold, 1},
	}, 10, 3)
	require.NoError(t, err)

	info, err := tbl.Calculate(5, 0)
	require.NoError(t, err)
	assert.Equal(t, Info{Bronze, 1, 25, intPtr(20)}, info)

	info, err = tbl.Calculate(35, 0)
	require.NoError(t, err)
	assert.Equal(t, Info{Gold, 2, 50, intPtr(40)}, info)

	info, err = tbl.Calculate(40, 0)
	require.NoError(t, err)
	assert.Equal(t, Info{Gold, 3, 100, nil}, info)
}

func TestDefaultTableIsImmutable(t *testing.T) {
	steps := Default().Steps()
	require.Len(t, steps, 10)
	steps[0].Threshold = 999

	info, err := Calculate(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Bronze, info.Tier)
	assert.Equal(t, 0, Default().Steps()[0].Threshold)
}

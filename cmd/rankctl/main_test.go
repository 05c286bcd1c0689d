package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRankCommand(t *testing.T) {
	out, err := execute(t, "rank", "9")
	require.NoError(t, err)
	assert.Equal(t, "Bronze Level 1 (90%, next at 10)\n", out)

	out, err = execute(t, "rank", "--total", "900")
	require.NoError(t, err)
	assert.Equal(t, "Diamond Level 5 (100%, next at max)\n", out)

	out, err = execute(t, "rank", "10", "-d", "knee", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"tier":"bronze","level":1,"progress":50,"nextThreshold":10,"formattedRank":"Bronze Level 1"}`, out)

	_, err = execute(t, "rank", "--total", "-1")
	assert.Error(t, err)
	_, err = execute(t, "rank", "10", "-d", "planche")
	assert.Error(t, err)
	_, err = execute(t, "rank", "ten")
	assert.Error(t, err)
}

func TestTableCommand(t *testing.T) {
	out, err := execute(t, "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Platinum Level 2")
	assert.Contains(t, out, "oneArm")

	out, err = execute(t, "migrate", "--print")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS rank_events")
}

package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaDefinesTables(t *testing.T) {
	ddl := Schema()
	for _, table := range []string{"users", "pushup_records", "user_stats", "user_settings", "rank_events"} {
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS "+table+" ", table)
	}
	assert.Equal(t, strings.Count(ddl, "CREATE TABLE"), strings.Count(ddl, "IF NOT EXISTS")-1,
		"every table and the index should be idempotent")
}

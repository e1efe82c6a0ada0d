package iocache

import (
	"testing"
	"time"

	"github.com/huangsam/chartkit/schema"
	"github.com/stretchr/testify/assert"
)

func TestValidateTableName(t *testing.T) {
	for _, name := range []string{"chart_geometry_cache", "_t", "T1"} {
		assert.NoError(t, validateTableName(name), name)
	}
	for _, name := range []string{"", "1abc", "a-b", "a;DROP TABLE x", "a b"} {
		assert.Error(t, validateTableName(name), name)
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`t`", quoteTableName("t", schema.MySQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.PostgreSQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.SQLiteBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"$1", "$2"}, placeholders(schema.PostgreSQLBackend, 2))
	assert.Equal(t, []string{"?", "?"}, placeholders(schema.MySQLBackend, 2))
	assert.Empty(t, placeholders(schema.SQLiteBackend, 0))
}

func TestDriverFor(t *testing.T) {
	d, err := driverFor(schema.PostgreSQLBackend)
	assert.NoError(t, err)
	assert.Equal(t, "pgx", d)
	_, err = driverFor(schema.NoneBackend)
	assert.Error(t, err)
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC)
	s, ok := formatTime(ts, schema.SQLiteBackend).(string)
	assert.True(t, ok)
	parsed, err := parseTime(s)
	assert.NoError(t, err)
	assert.True(t, ts.Equal(parsed))
	assert.Equal(t, ts, formatTime(ts, schema.PostgreSQLBackend))
}

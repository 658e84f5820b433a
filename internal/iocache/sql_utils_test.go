package iocache

import (
	"testing"
	"time"

	"github.com/huangsam/solarsite/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"solarsite_analysis_runs", false},
		{"_private", false},
		{"Table1", false},
		{"", true},
		{"1table", true},
		{"drop table; --", true},
		{"name-with-dash", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`runs`", quoteTableName("runs", schema.MySQLBackend))
	assert.Equal(t, `"runs"`, quoteTableName("runs", schema.PostgreSQLBackend))
	assert.Equal(t, `"runs"`, quoteTableName("runs", schema.SQLiteBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?, ?, ?", placeholders(schema.SQLiteBackend, 3))
	assert.Equal(t, "?, ?", placeholders(schema.MySQLBackend, 2))
	assert.Equal(t, "$1, $2, $3", placeholders(schema.PostgreSQLBackend, 3))
}

func TestDriverFor(t *testing.T) {
	assert.Equal(t, "sqlite", driverFor(schema.SQLiteBackend))
	assert.Equal(t, "mysql", driverFor(schema.MySQLBackend))
	assert.Equal(t, "pgx", driverFor(schema.PostgreSQLBackend))
}

func TestTimeScanner(t *testing.T) {
	now := time.Date(2026, 5, 4, 3, 2, 1, 123456789, time.UTC)

	ts := newTimeScanner(schema.SQLiteBackend)
	text := formatTime(now, schema.SQLiteBackend).(string)
	*(ts.dest().(**string)) = &text
	got, err := ts.value()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, now.Equal(*got))

	empty := newTimeScanner(schema.SQLiteBackend)
	got, err = empty.value()
	require.NoError(t, err)
	assert.Nil(t, got)

	bad := "yesterday"
	broken := newTimeScanner(schema.SQLiteBackend)
	*(broken.dest().(**string)) = &bad
	_, err = broken.value()
	assert.Error(t, err)

	native := newTimeScanner(schema.PostgreSQLBackend)
	*(native.dest().(**time.Time)) = &now
	got, err = native.value()
	require.NoError(t, err)
	assert.Equal(t, now, *got)
	assert.Equal(t, now, formatTime(now, schema.PostgreSQLBackend))
}

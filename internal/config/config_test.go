package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1", c.DBHost)
	assert.Equal(t, 5432, c.DBPort)
	assert.Equal(t, "pg_dump", c.DumpBinary)
	assert.Equal(t, "pg_restore", c.RestoreBinary)
	assert.Equal(t, 30, c.RetentionDays)
	assert.Equal(t, 6, c.Compression)
	assert.Equal(t, 3, c.RetryAttempts)
	assert.Equal(t, 2*time.Second, c.RetryBackoff)
	assert.Equal(t, int64(1<<30), c.MinFreeBytes)
}

func TestEffectiveDatabases(t *testing.T) {
	tests := []struct {
		name    string
		dbs     []string
		exclude []string
		want    []string
	}{
		{"no exclusions", []string{"a", "b"}, nil, []string{"a", "b"}},
		{"one excluded", []string{"a", "b", "c"}, []string{"b"}, []string{"a", "c"}},
		{"all excluded", []string{"a", "b"}, []string{"a", "b"}, []string{}},
		{"exclusion of absent name", []string{"a"}, []string{"z"}, []string{"a"}},
		{"order preserved", []string{"c", "a", "b"}, []string{"a"}, []string{"c", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Databases: tt.dbs, ExcludeDatabases: tt.exclude}
			assert.Equal(t, tt.want, c.EffectiveDatabases())
		})
	}
}

func TestCutoffFrom(t *testing.T) {
	c := Config{RetentionDays: 7}
	now := time.Date(2024, 2, 8, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC), c.CutoffFrom(now))
}

func TestCutoffFrom_ZeroDays(t *testing.T) {
	c := Config{RetentionDays: 0}
	now := time.Now().UTC()

	assert.Equal(t, now, c.CutoffFrom(now), "zero retention makes everything before now prunable")
}

func TestParseRetention(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"30", 30, false},
		{"30 days", 30, false},
		{"7 Days", 7, false},
		{"0", 0, false},
		{"-1", 0, true},
		{"", 0, true},
		{"many days", 0, true},
		{"30 whole days", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRetention(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package naming

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_WireFormat(t *testing.T) {
	ts := time.Date(2024, 2, 1, 13, 45, 59, 0, time.UTC)

	assert.Equal(t, "2024-02-01-at-13-45-59_orders.dump", Key("", ts, "orders"))
	assert.Equal(t, "nightly/2024-02-01-at-13-45-59_orders.dump", Key("nightly/", ts, "orders"))
}

func TestKey_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2024, 2, 1, 14, 45, 59, 0, loc)

	assert.Equal(t, "2024-02-01-at-13-45-59_orders.dump", Key("", ts, "orders"))
}

func TestSidecarKey(t *testing.T) {
	assert.Equal(t, "a/b.dump.sha256", SidecarKey("a/b.dump"))
}

func TestIsDumpIsSidecar(t *testing.T) {
	assert.True(t, IsDump("x.dump"))
	assert.False(t, IsDump("x.dump.sha256"))
	assert.True(t, IsSidecar("x.dump.sha256"))
	assert.False(t, IsSidecar("x.dump"))
}

func TestParse_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 2, 1, 13, 45, 59, 0, time.UTC)
	key := Key("backups/daily/", ts, "orders_eu")

	got, db, ok := Parse(key)
	require.True(t, ok)
	assert.Equal(t, ts, got)
	assert.Equal(t, "orders_eu", db)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"sidecar", "2024-02-01-at-13-45-59_orders.dump.sha256"},
		{"no suffix", "2024-02-01-at-13-45-59_orders"},
		{"no database", "2024-02-01-at-13-45-59_.dump"},
		{"no separator", "2024-02-01-at-13-45-59orders.dump"},
		{"garbage stamp", "2024-99-99-at-13-45-59_orders.dump"},
		{"too short", "x.dump"},
		{"directory marker", "backups/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := Parse(tt.key)
			assert.False(t, ok)
		})
	}
}

func TestLexicographicOrderIsChronological(t *testing.T) {
	older := Key("", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "x")
	newer := Key("", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "x")

	assert.Less(t, older, newer)
}

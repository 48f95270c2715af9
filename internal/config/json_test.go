package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/pgbackup/internal/common"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"pgbackup-test"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o660))
	return path
}

func TestParseJSON_NoFlagIsNoop(t *testing.T) {
	withArgs(t)

	c := validConfig()
	want := c
	require.NoError(t, parseJSON(&c))
	assert.Equal(t, want.DBHost, c.DBHost)
	assert.Equal(t, want.RetentionDays, c.RetentionDays)
}

func TestParseJSON_Overlay(t *testing.T) {
	path := writeConfigFile(t, `{
		"db_host": "pg.internal",
		"db_port": 5433,
		"databases": ["orders", "billing"],
		"exclude_databases": ["billing"],
		"destination": "archive/nightly",
		"retention": "14 days",
		"compression": 9,
		"retry_attempts": 5,
		"retry_backoff_seconds": 3,
		"hook_command": "curl -fsS https://hc.example/ping"
	}`)
	withArgs(t, "-c", path)

	c := validConfig()
	require.NoError(t, parseJSON(&c))

	assert.Equal(t, "pg.internal", c.DBHost)
	assert.Equal(t, 5433, c.DBPort)
	assert.Equal(t, []string{"orders", "billing"}, c.Databases)
	assert.Equal(t, []string{"billing"}, c.ExcludeDatabases)
	assert.Equal(t, "archive/nightly", c.Destination)
	assert.Equal(t, 14, c.RetentionDays)
	assert.Equal(t, 9, c.Compression)
	assert.Equal(t, 5, c.RetryAttempts)
	assert.Equal(t, 3*time.Second, c.RetryBackoff)
	assert.Equal(t, "curl -fsS https://hc.example/ping", c.HookCommand)

	// Untouched fields keep their defaults.
	assert.Equal(t, "pg_dump", c.DumpBinary)
}

func TestParseJSON_MissingFile(t *testing.T) {
	withArgs(t, "-c", filepath.Join(t.TempDir(), "absent.json"))

	c := validConfig()
	err := parseJSON(&c)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConfiguration)
}

func TestParseJSON_Malformed(t *testing.T) {
	path := writeConfigFile(t, "{not json")
	withArgs(t, "-c", path)

	c := validConfig()
	err := parseJSON(&c)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConfiguration)
}

func TestParseJSON_BadRetention(t *testing.T) {
	path := writeConfigFile(t, `{"retention": "-2 days"}`)
	withArgs(t, "-c", path)

	c := validConfig()
	err := parseJSON(&c)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConfiguration)
}

func TestParseFlags_Overlay(t *testing.T) {
	withArgs(t, "-host", "flag-host", "-databases", "a,b", "-retention", "7 days", "-dry-run", "-q")

	c := validConfig()
	require.NoError(t, parseFlags(&c))

	assert.Equal(t, "flag-host", c.DBHost)
	assert.Equal(t, []string{"a", "b"}, c.Databases)
	assert.Equal(t, 7, c.RetentionDays)
	assert.True(t, c.DryRun)
	assert.True(t, c.Quiet)
}

func TestLoadConfig_LayerPrecedence(t *testing.T) {
	path := writeConfigFile(t, `{"db_host": "from-json", "db_port": 5433}`)
	withArgs(t, "-c", path, "-host", "from-flag")
	t.Setenv("PGBACKUP_DB_HOST", "from-env")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-flag", c.DBHost, "flags beat env and JSON")
	assert.Equal(t, 5433, c.DBPort, "JSON beats defaults")
}

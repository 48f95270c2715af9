package restore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/pgbackup/internal/common"
)

func TestParseRequest_Explicit(t *testing.T) {
	req, err := ParseRequest([]string{"orders", "2024-01-01-at-00-00-00_orders.dump"})
	require.NoError(t, err)
	assert.Equal(t, ModeExplicit, req.Mode)
	assert.Equal(t, "orders", req.Database)
	assert.Equal(t, "2024-01-01-at-00-00-00_orders.dump", req.Artifact)
}

func TestParseRequest_ExplicitWithConfigFlags(t *testing.T) {
	req, err := ParseRequest([]string{"-host", "db.local", "orders", "a.dump", "-dry-run"})
	require.NoError(t, err)
	assert.Equal(t, ModeExplicit, req.Mode)
	assert.Equal(t, "orders", req.Database)
	assert.Equal(t, "a.dump", req.Artifact)
}

func TestParseRequest_Latest(t *testing.T) {
	for _, args := range [][]string{
		{"--latest", "orders"},
		{"-latest", "orders"},
		{"--latest=orders"},
	} {
		req, err := ParseRequest(args)
		require.NoError(t, err, "%v", args)
		assert.Equal(t, ModeLatest, req.Mode)
		assert.Equal(t, "orders", req.Database)
	}
}

func TestParseRequest_LatestWithoutDatabase(t *testing.T) {
	_, err := ParseRequest([]string{"--latest"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConfiguration)

	_, err = ParseRequest([]string{"--latest", "--dry-run"})
	require.Error(t, err)
}

func TestParseRequest_List(t *testing.T) {
	req, err := ParseRequest([]string{"--list"})
	require.NoError(t, err)
	assert.Equal(t, ModeList, req.Mode)
	assert.Equal(t, "", req.ListPrefix)

	req, err = ParseRequest([]string{"--list", "nightly/"})
	require.NoError(t, err)
	assert.Equal(t, ModeList, req.Mode)
	assert.Equal(t, "nightly/", req.ListPrefix)
}

func TestParseRequest_Help(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"--help"}, {"orders", "a.dump", "-h"}} {
		req, err := ParseRequest(args)
		require.NoError(t, err, "%v", args)
		assert.Equal(t, ModeHelp, req.Mode)
	}
}

func TestParseRequest_ConflictingModes(t *testing.T) {
	_, err := ParseRequest([]string{"--latest", "orders", "--list"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConfiguration)
}

func TestParseRequest_WrongPositionalCount(t *testing.T) {
	for _, args := range [][]string{{}, {"orders"}, {"orders", "a.dump", "extra"}} {
		_, err := ParseRequest(args)
		require.Error(t, err, "%v", args)
		assert.ErrorIs(t, err, common.ErrConfiguration)
	}
}

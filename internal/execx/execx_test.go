package execx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirect_Command(t *testing.T) {
	cmd := Direct{}.Command(context.Background(), "pg_dump", "-h", "db.local", "-Z", "6", "orders")
	assert.Equal(t, []string{"pg_dump", "-h", "db.local", "-Z", "6", "orders"}, cmd.Args)
}

func TestShell_Command(t *testing.T) {
	cmd := Shell{}.Command(context.Background(), "docker exec pg pg_dump", "-h", "db.local", "orders")

	require.Len(t, cmd.Args, 3)
	assert.Equal(t, "sh", cmd.Args[0])
	assert.Equal(t, "-c", cmd.Args[1])
	assert.Equal(t, "docker exec pg pg_dump '-h' 'db.local' 'orders'", cmd.Args[2])
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "'plain'", Quote("plain"))
	assert.Equal(t, `'with space'`, Quote("with space"))
	assert.Equal(t, `'it'\''s'`, Quote("it's"))
}

func TestNew(t *testing.T) {
	assert.IsType(t, Direct{}, New(false))
	assert.IsType(t, Shell{}, New(true))
}

func TestLookPath(t *testing.T) {
	require.NoError(t, LookPath("sh"))
	require.NoError(t, LookPath("sh -c something"), "only the leading word is checked")
	require.Error(t, LookPath("definitely-not-a-binary-45134"))
}

// Package hook runs the optional post-run command. The hook fires only
// after a fully successful non-dry-run operation; its failure is still
// a run failure, reported distinctly, because it signals broken
// monitoring or integration rather than a broken backup.
package hook

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/pgbackup/internal/common"
	"github.com/dmitrijs2005/pgbackup/internal/execx"
	"github.com/dmitrijs2005/pgbackup/internal/logging"
)

// Run executes command as a shell command line. The hook is a
// user-authored one-liner ("curl -fsS https://hc.example/ping"), so it
// always goes through the shell regardless of the invoker used for the
// database binaries.
func Run(ctx context.Context, log logging.Logger, command string) error {
	if command == "" {
		return nil
	}

	log.Info(ctx, "running post-run hook", "command", command)

	cmd := execx.Shell{}.Command(ctx, command)
	var stderr bytes.Buffer
	cmd.Stdout = os.Stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v: %s", common.ErrHook, command, err, stderr.String())
	}
	return nil
}

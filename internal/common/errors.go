// Package common defines the shared sentinel errors of the backup and
// restore pipelines. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Configuration is missing or malformed; the run never starts.
	ErrConfiguration = errors.New("configuration error")

	// A precondition failed before any remote action (missing binary,
	// insufficient disk space, empty database selection).
	ErrPreflight = errors.New("preflight error")

	// The dump subprocess failed.
	ErrCapture = errors.New("capture error")

	// An object-store operation failed after exhausting retries.
	ErrTransfer = errors.New("transfer error")

	// The remote digest does not match the locally computed one. This
	// signals silent corruption and must never be downgraded to a warning.
	ErrIntegrity = errors.New("integrity error")

	// The post-run hook failed after the primary operation succeeded.
	ErrHook = errors.New("hook error")
)

// ExitCode maps a run outcome to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

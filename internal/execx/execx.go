// Package execx builds external commands. The Invoker abstraction is
// selected once at configuration time: Direct spawns the binary as-is,
// Shell wraps the whole command line in "sh -c" for installations where
// the configured binary is itself a compound command.
package execx

import (
	"context"
	"os/exec"
	"strings"
)

// Invoker turns a binary name and arguments into a runnable command.
type Invoker interface {
	Command(ctx context.Context, name string, args ...string) *exec.Cmd
}

// New selects the invoker implementation.
func New(useShell bool) Invoker {
	if useShell {
		return Shell{}
	}
	return Direct{}
}

// Direct execs the binary without any shell in between.
type Direct struct{}

func (Direct) Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

// Shell runs the command line through "sh -c". The binary name is
// spliced in unquoted so that compound commands like
// "docker exec pg pg_dump" keep working; arguments are quoted.
type Shell struct{}

func (Shell) Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		parts = append(parts, Quote(a))
	}
	return exec.CommandContext(ctx, "sh", "-c", strings.Join(parts, " "))
}

// Quote wraps s in single quotes, escaping embedded single quotes, so
// it survives one level of shell evaluation unchanged.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// LookPath reports whether the first word of name resolves to an
// executable. For shell-wrapped compound commands only the leading
// word is checked.
func LookPath(name string) error {
	first := name
	if i := strings.IndexByte(first, ' '); i >= 0 {
		first = first[:i]
	}
	_, err := exec.LookPath(first)
	return err
}

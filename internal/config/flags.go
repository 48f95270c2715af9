package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/pgbackup/internal/common"
	"github.com/dmitrijs2005/pgbackup/internal/flagx"
)

// valueFlags are the configuration flags that consume a following
// argument. The restore CLI needs this list to tell flag values apart
// from its positional arguments.
var valueFlags = []string{
	"-host", "-port", "-user",
	"-databases", "-exclude",
	"-dest", "-bucket", "-prefix", "-region", "-endpoint",
	"-storage-class", "-sse", "-sse-kms-key-id",
	"-retention", "-compression", "-retry-attempts", "-retry-backoff",
	"-min-free", "-temp-dir", "-hook",
	"-dump-bin", "-restore-bin",
}

// fileFlags select the JSON config file and are consumed by the JSON
// layer, not by parseFlags.
var fileFlags = []string{"-c", "-config"}

// boolFlags are the configuration flags that take no value.
var boolFlags = []string{"-shell", "-dry-run", "-q"}

// ValueFlags returns the flags that consume a following argument,
// including the double-dash spellings and the config-file flags.
func ValueFlags() []string {
	return bothSpellings(valueFlags, fileFlags)
}

// bothSpellings expands flag lists with their double-dash variants.
func bothSpellings(lists ...[]string) []string {
	var out []string
	for _, list := range lists {
		for _, f := range list {
			out = append(out, f, "-"+f)
		}
	}
	return out
}

// parseFlags populates cfg from command-line flags. Args are filtered
// first so mode flags of the restore CLI and positional arguments do
// not interfere.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], bothSpellings(valueFlags, boolFlags))

	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	fs.StringVar(&cfg.DBHost, "host", cfg.DBHost, "database server host")
	fs.IntVar(&cfg.DBPort, "port", cfg.DBPort, "database server port")
	fs.StringVar(&cfg.DBUser, "user", cfg.DBUser, "database user")

	databases := fs.String("databases", "", "comma-separated databases to back up")
	exclude := fs.String("exclude", "", "comma-separated databases to skip")

	fs.StringVar(&cfg.Destination, "dest", cfg.Destination, "destination as bucket or bucket/prefix")
	fs.StringVar(&cfg.Bucket, "bucket", cfg.Bucket, "destination bucket")
	fs.StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "destination key prefix")
	fs.StringVar(&cfg.Region, "region", cfg.Region, "object store region")
	fs.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "alternate object store endpoint URL")

	fs.StringVar(&cfg.StorageClass, "storage-class", cfg.StorageClass, "storage class for uploads")
	fs.StringVar(&cfg.SSE, "sse", cfg.SSE, "server-side encryption algorithm")
	fs.StringVar(&cfg.SSEKMSKeyID, "sse-kms-key-id", cfg.SSEKMSKeyID, "KMS key id for SSE")

	retention := fs.String("retention", "", "minimum artifact age in days before deletion, unit word optional")
	fs.IntVar(&cfg.Compression, "compression", cfg.Compression, "dump compression level 0-9")
	fs.IntVar(&cfg.RetryAttempts, "retry-attempts", cfg.RetryAttempts, "attempt budget for network operations")
	backoffSec := fs.Int("retry-backoff", int(cfg.RetryBackoff.Seconds()), "retry backoff base in seconds")
	fs.Int64Var(&cfg.MinFreeBytes, "min-free", cfg.MinFreeBytes, "minimum free bytes required in the temp dir")

	fs.StringVar(&cfg.TempDir, "temp-dir", cfg.TempDir, "directory for local dump files")
	fs.StringVar(&cfg.HookCommand, "hook", cfg.HookCommand, "command to run after a fully successful run")
	fs.StringVar(&cfg.DumpBinary, "dump-bin", cfg.DumpBinary, "dump binary or compound command")
	fs.StringVar(&cfg.RestoreBinary, "restore-bin", cfg.RestoreBinary, "restore binary or compound command")
	fs.BoolVar(&cfg.UseShell, "shell", cfg.UseShell, "run external binaries through sh -c")

	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "report intended actions without executing them")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "suppress log output")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfiguration, err)
	}

	if *databases != "" {
		cfg.Databases = splitList(*databases)
	}
	if *exclude != "" {
		cfg.ExcludeDatabases = splitList(*exclude)
	}
	if *retention != "" {
		days, err := ParseRetention(*retention)
		if err != nil {
			return err
		}
		cfg.RetentionDays = days
	}
	cfg.RetryBackoff = time.Duration(*backoffSec) * time.Second

	return nil
}

// NoPositionals rejects positional arguments. The backup CLI is
// flag-only, so a stray word is most likely a typo for a flag or a
// detached flag value and must not be ignored.
func NoPositionals(args []string) error {
	if pos := Positionals(args); len(pos) > 0 {
		return fmt.Errorf("%w: unexpected arguments: %s", common.ErrConfiguration, strings.Join(pos, " "))
	}
	return nil
}

// Positionals returns the non-flag arguments of args, skipping values
// that belong to value-taking configuration or mode flags.
func Positionals(args []string, extraValueFlags ...string) []string {
	valueTaking := make(map[string]struct{})
	for _, f := range ValueFlags() {
		valueTaking[f] = struct{}{}
	}
	for _, f := range extraValueFlags {
		valueTaking[f] = struct{}{}
	}

	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			if strings.Contains(arg, "=") {
				continue
			}
			if _, ok := valueTaking[arg]; ok && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}

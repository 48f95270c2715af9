package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/pgbackup/internal/common"
	"github.com/dmitrijs2005/pgbackup/internal/flagx"
)

// parseEnv overlays cfg from PGBACKUP_* environment variables (plus
// PGPASSWORD, which the database tooling already understands). Runs
// between the JSON and flag layers, so a flag always beats its env
// counterpart. A malformed value is a configuration error, the same as
// in the file and flag layers: the run must not start on a setting that
// did not take effect.
func parseEnv(cfg *Config) error {
	flagx.EnvString("PGBACKUP_DB_HOST", &cfg.DBHost)
	flagx.EnvString("PGBACKUP_DB_USER", &cfg.DBUser)
	flagx.EnvString("PGPASSWORD", &cfg.DBPassword)
	flagx.EnvString("PGBACKUP_DB_PASSWORD", &cfg.DBPassword)

	flagx.EnvString("PGBACKUP_DUMP_BINARY", &cfg.DumpBinary)
	flagx.EnvString("PGBACKUP_RESTORE_BINARY", &cfg.RestoreBinary)

	if v, ok := os.LookupEnv("PGBACKUP_DATABASES"); ok {
		cfg.Databases = splitList(v)
	}
	if v, ok := os.LookupEnv("PGBACKUP_EXCLUDE_DATABASES"); ok {
		cfg.ExcludeDatabases = splitList(v)
	}

	flagx.EnvString("PGBACKUP_DESTINATION", &cfg.Destination)
	flagx.EnvString("PGBACKUP_BUCKET", &cfg.Bucket)
	flagx.EnvString("PGBACKUP_PREFIX", &cfg.Prefix)
	flagx.EnvString("PGBACKUP_REGION", &cfg.Region)
	flagx.EnvString("PGBACKUP_ACCESS_KEY", &cfg.AccessKey)
	flagx.EnvString("PGBACKUP_SECRET_KEY", &cfg.SecretKey)
	flagx.EnvString("PGBACKUP_ENDPOINT", &cfg.Endpoint)

	flagx.EnvString("PGBACKUP_STORAGE_CLASS", &cfg.StorageClass)
	flagx.EnvString("PGBACKUP_SSE", &cfg.SSE)
	flagx.EnvString("PGBACKUP_SSE_KMS_KEY_ID", &cfg.SSEKMSKeyID)

	flagx.EnvString("PGBACKUP_TEMP_DIR", &cfg.TempDir)
	flagx.EnvString("PGBACKUP_HOOK_COMMAND", &cfg.HookCommand)

	if v, ok := os.LookupEnv("PGBACKUP_RETENTION"); ok && strings.TrimSpace(v) != "" {
		days, err := ParseRetention(v)
		if err != nil {
			return err
		}
		cfg.RetentionDays = days
	}

	var backoffSec int
	errs := []error{
		flagx.EnvInt("PGBACKUP_DB_PORT", &cfg.DBPort),
		flagx.EnvBool("PGBACKUP_USE_SHELL", &cfg.UseShell),
		flagx.EnvInt("PGBACKUP_COMPRESSION", &cfg.Compression),
		flagx.EnvInt("PGBACKUP_RETRY_ATTEMPTS", &cfg.RetryAttempts),
		flagx.EnvInt("PGBACKUP_RETRY_BACKOFF_SECONDS", &backoffSec),
		flagx.EnvInt64("PGBACKUP_MIN_FREE_BYTES", &cfg.MinFreeBytes),
		flagx.EnvBool("PGBACKUP_DRY_RUN", &cfg.DryRun),
		flagx.EnvBool("PGBACKUP_QUIET", &cfg.Quiet),
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfiguration, err)
	}
	if backoffSec > 0 {
		cfg.RetryBackoff = time.Duration(backoffSec) * time.Second
	}

	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

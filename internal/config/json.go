package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/pgbackup/internal/common"
	"github.com/dmitrijs2005/pgbackup/internal/flagx"
)

// jsonConfig is the DTO used exclusively for JSON unmarshalling.
// Retention is a string so the file can say "30 days"; the backoff is
// whole seconds. Only fields present in the file overlay the Config.
type jsonConfig struct {
	DBHost     *string `json:"db_host"`
	DBPort     *int    `json:"db_port"`
	DBUser     *string `json:"db_user"`
	DBPassword *string `json:"db_password"`

	DumpBinary    *string `json:"dump_binary"`
	RestoreBinary *string `json:"restore_binary"`
	UseShell      *bool   `json:"use_shell"`

	Databases        []string `json:"databases"`
	ExcludeDatabases []string `json:"exclude_databases"`

	Destination *string `json:"destination"`
	Bucket      *string `json:"bucket"`
	Prefix      *string `json:"prefix"`
	Region      *string `json:"region"`
	AccessKey   *string `json:"access_key"`
	SecretKey   *string `json:"secret_key"`
	Endpoint    *string `json:"endpoint"`

	StorageClass *string `json:"storage_class"`
	SSE          *string `json:"sse"`
	SSEKMSKeyID  *string `json:"sse_kms_key_id"`

	Retention       *string `json:"retention"`
	Compression     *int    `json:"compression"`
	RetryAttempts   *int    `json:"retry_attempts"`
	RetryBackoffSec *int    `json:"retry_backoff_seconds"`
	MinFreeBytes    *int64  `json:"min_free_bytes"`

	TempDir     *string `json:"temp_dir"`
	HookCommand *string `json:"hook_command"`
}

// parseJSON overlays cfg with values from the file named by -c/-config.
// No file flag means no overlay. Read and parse failures are
// configuration errors: the run must not start on a half-read file.
func parseJSON(cfg *Config) error {
	path := flagx.JSONConfigPath()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", common.ErrConfiguration, path, err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("%w: parse %s: %v", common.ErrConfiguration, path, err)
	}

	setString(&cfg.DBHost, jc.DBHost)
	setInt(&cfg.DBPort, jc.DBPort)
	setString(&cfg.DBUser, jc.DBUser)
	setString(&cfg.DBPassword, jc.DBPassword)

	setString(&cfg.DumpBinary, jc.DumpBinary)
	setString(&cfg.RestoreBinary, jc.RestoreBinary)
	if jc.UseShell != nil {
		cfg.UseShell = *jc.UseShell
	}

	if jc.Databases != nil {
		cfg.Databases = jc.Databases
	}
	if jc.ExcludeDatabases != nil {
		cfg.ExcludeDatabases = jc.ExcludeDatabases
	}

	setString(&cfg.Destination, jc.Destination)
	setString(&cfg.Bucket, jc.Bucket)
	setString(&cfg.Prefix, jc.Prefix)
	setString(&cfg.Region, jc.Region)
	setString(&cfg.AccessKey, jc.AccessKey)
	setString(&cfg.SecretKey, jc.SecretKey)
	setString(&cfg.Endpoint, jc.Endpoint)

	setString(&cfg.StorageClass, jc.StorageClass)
	setString(&cfg.SSE, jc.SSE)
	setString(&cfg.SSEKMSKeyID, jc.SSEKMSKeyID)

	if jc.Retention != nil {
		days, err := ParseRetention(*jc.Retention)
		if err != nil {
			return err
		}
		cfg.RetentionDays = days
	}
	setInt(&cfg.Compression, jc.Compression)
	setInt(&cfg.RetryAttempts, jc.RetryAttempts)
	if jc.RetryBackoffSec != nil {
		cfg.RetryBackoff = time.Duration(*jc.RetryBackoffSec) * time.Second
	}
	if jc.MinFreeBytes != nil {
		cfg.MinFreeBytes = *jc.MinFreeBytes
	}

	setString(&cfg.TempDir, jc.TempDir)
	setString(&cfg.HookCommand, jc.HookCommand)

	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

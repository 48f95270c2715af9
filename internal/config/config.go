// Package config builds the immutable run configuration: defaults,
// then a JSON file overlay, then environment, then command-line flags.
// Later layers win. Components receive the resulting Config and never
// look anything up ambiently.
package config

import (
	"os"
	"time"
)

// Config holds every setting of a backup or restore run.
//
// Destination can be given either combined ("bucket" or
// "bucket/some/prefix") or as the separate Bucket/Prefix pair; the
// combined form wins when both are set. Normalize() resolves this.
type Config struct {
	// Database server.
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string

	// External binaries. UseShell wraps invocations in "sh -c" so a
	// compound command ("docker exec pg pg_dump") can stand in for the
	// binary path.
	DumpBinary    string
	RestoreBinary string
	UseShell      bool

	// Database selection for backup runs.
	Databases        []string
	ExcludeDatabases []string

	// Object store.
	Destination string
	Bucket      string
	Prefix      string
	Region      string
	AccessKey   string
	SecretKey   string
	Endpoint    string

	// Upload attributes.
	StorageClass string
	SSE          string
	SSEKMSKeyID  string

	// Policy.
	RetentionDays int
	Compression   int
	RetryAttempts int
	RetryBackoff  time.Duration
	MinFreeBytes  int64

	// Run behavior.
	TempDir     string
	HookCommand string
	DryRun      bool
	Quiet       bool
}

// LoadDefaults populates c with development defaults. Credentials and
// destination must come from a later layer.
func (c *Config) LoadDefaults() {
	c.DBHost = "127.0.0.1"
	c.DBPort = 5432
	c.DBUser = "postgres"
	c.DumpBinary = "pg_dump"
	c.RestoreBinary = "pg_restore"
	c.Region = "us-east-1"
	c.RetentionDays = 30
	c.Compression = 6
	c.RetryAttempts = 3
	c.RetryBackoff = 2 * time.Second
	c.MinFreeBytes = 1 << 30
	c.TempDir = os.TempDir()
}

// LoadConfig builds a Config by applying defaults, then overlaying
// values from an optional JSON file (-c/-config), the environment, and
// command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EffectiveDatabases returns Databases minus ExcludeDatabases with the
// configured order preserved.
func (c *Config) EffectiveDatabases() []string {
	excluded := make(map[string]struct{}, len(c.ExcludeDatabases))
	for _, d := range c.ExcludeDatabases {
		excluded[d] = struct{}{}
	}

	out := make([]string, 0, len(c.Databases))
	for _, d := range c.Databases {
		if _, ok := excluded[d]; !ok {
			out = append(out, d)
		}
	}
	return out
}

// CutoffFrom derives the absolute retention cutoff from the run start
// instant. It is computed once per run so every deletion decision uses
// the same boundary.
func (c *Config) CutoffFrom(now time.Time) time.Time {
	return now.UTC().Add(-time.Duration(c.RetentionDays) * 24 * time.Hour)
}

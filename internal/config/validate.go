package config

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pgbackup/internal/common"
)

// Normalize resolves the destination forms into Bucket/Prefix. The
// combined Destination string wins over the separate pair; a non-empty
// prefix always ends with "/" so key construction can concatenate.
func (c *Config) Normalize() {
	if c.Destination != "" {
		bucket, prefix, _ := strings.Cut(c.Destination, "/")
		c.Bucket = bucket
		c.Prefix = prefix
	}
	if c.Prefix != "" && !strings.HasSuffix(c.Prefix, "/") {
		c.Prefix += "/"
	}
}

// Validate normalizes c and enforces the invariants every run depends
// on. All failures wrap ErrConfiguration.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Bucket == "" {
		return fmt.Errorf("%w: no destination: set a bucket or a combined bucket/prefix destination", common.ErrConfiguration)
	}
	if c.RetentionDays < 0 {
		return fmt.Errorf("%w: retention days must be non-negative, got %d", common.ErrConfiguration, c.RetentionDays)
	}
	if c.Compression < 0 || c.Compression > 9 {
		return fmt.Errorf("%w: compression level must be in [0,9], got %d", common.ErrConfiguration, c.Compression)
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("%w: retry attempts must be at least 1, got %d", common.ErrConfiguration, c.RetryAttempts)
	}
	if c.RetryBackoff <= 0 {
		return fmt.Errorf("%w: retry backoff must be positive, got %s", common.ErrConfiguration, c.RetryBackoff)
	}
	if c.MinFreeBytes < 0 {
		return fmt.Errorf("%w: min free bytes must be non-negative, got %d", common.ErrConfiguration, c.MinFreeBytes)
	}
	if c.DBHost == "" || c.DBUser == "" {
		return fmt.Errorf("%w: database host and user are required", common.ErrConfiguration)
	}
	return nil
}

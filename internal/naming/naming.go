// Package naming implements the artifact key contract. Keys must stay
// bit-exact with existing archives:
//
//	{prefix}{YYYY-MM-DD-at-HH-MM-SS}_{database}.dump
//	{prefix}{YYYY-MM-DD-at-HH-MM-SS}_{database}.dump.sha256
//
// The timestamp prefix makes lexicographic key order equal to
// chronological order, which the latest-selection logic relies on.
package naming

import (
	"strings"
	"time"
)

const (
	// StampLayout renders the run timestamp inside a key.
	StampLayout = "2006-01-02-at-15-04-05"

	// DumpSuffix terminates every artifact key.
	DumpSuffix = ".dump"

	// SidecarSuffix is appended to the artifact key for the digest sidecar.
	SidecarSuffix = ".sha256"
)

// Key builds the object key for one artifact. prefix may be empty; a
// non-empty prefix must already carry its trailing separator.
func Key(prefix string, ts time.Time, database string) string {
	return prefix + ts.UTC().Format(StampLayout) + "_" + database + DumpSuffix
}

// SidecarKey returns the key of the digest sidecar for artifactKey.
func SidecarKey(artifactKey string) string {
	return artifactKey + SidecarSuffix
}

// IsDump reports whether key names an artifact (not a sidecar).
func IsDump(key string) bool {
	return strings.HasSuffix(key, DumpSuffix)
}

// IsSidecar reports whether key names a digest sidecar.
func IsSidecar(key string) bool {
	return strings.HasSuffix(key, SidecarSuffix)
}

// Parse recovers the timestamp and database name from an artifact key.
// Any leading prefix (path components before the final element) is
// tolerated. ok is false for keys that do not follow the contract.
func Parse(key string) (ts time.Time, database string, ok bool) {
	base := key
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}

	base, found := strings.CutSuffix(base, DumpSuffix)
	if !found {
		return time.Time{}, "", false
	}

	if len(base) < len(StampLayout)+1 {
		return time.Time{}, "", false
	}
	stamp, rest := base[:len(StampLayout)], base[len(StampLayout):]
	if !strings.HasPrefix(rest, "_") {
		return time.Time{}, "", false
	}
	database = rest[1:]
	if database == "" {
		return time.Time{}, "", false
	}

	ts, err := time.ParseInLocation(StampLayout, stamp, time.UTC)
	if err != nil {
		return time.Time{}, "", false
	}
	return ts, database, true
}

package restore

import (
	"sort"

	"github.com/dmitrijs2005/pgbackup/internal/naming"
	"github.com/dmitrijs2005/pgbackup/internal/storage"
)

// LatestKey projects a listing onto the newest artifact of database.
// Candidates are keys with the dump suffix whose parsed database name
// matches; the timestamp-prefixed naming scheme makes ascending key
// order chronological, so the last key wins. ok is false when the
// database has no artifact.
func LatestKey(entries []storage.Entry, database string) (string, bool) {
	var keys []string
	for _, e := range entries {
		if !naming.IsDump(e.Key) {
			continue
		}
		_, db, parsed := naming.Parse(e.Key)
		if !parsed || db != database {
			continue
		}
		keys = append(keys, e.Key)
	}
	if len(keys) == 0 {
		return "", false
	}

	sort.Strings(keys)
	return keys[len(keys)-1], true
}

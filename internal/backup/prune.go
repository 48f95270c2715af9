package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pgbackup/internal/common"
	"github.com/dmitrijs2005/pgbackup/internal/logging"
	"github.com/dmitrijs2005/pgbackup/internal/storage"
)

// PrunableKeys projects a listing onto the set of keys whose reported
// last-modified instant lies strictly before cutoff; an entry exactly
// at the cutoff is retained. Entries with an unparseable timestamp
// (directory markers, foreign objects) are skipped with a warning.
//
// A .dump and its .sha256 sidecar are evaluated independently against
// the same cutoff. If the pair was uploaded straddling the boundary,
// one can be pruned a run before the other; a known limitation.
func PrunableKeys(ctx context.Context, log logging.Logger, entries []storage.Entry, cutoff time.Time) []string {
	var keys []string
	for _, e := range entries {
		ts, err := time.ParseInLocation(storage.ListedTimeLayout, e.LastModified, time.UTC)
		if err != nil {
			log.Warn(ctx, "skipping entry with unparseable timestamp", "key", e.Key, "last_modified", e.LastModified)
			continue
		}
		if ts.Before(cutoff) {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// prune lists the destination once and deletes every expired object.
func (a *App) prune(ctx context.Context, cutoff time.Time) error {
	var entries []storage.Entry
	err := a.retrier.Do(ctx, "list "+a.cfg.Prefix, func(ctx context.Context) error {
		var err error
		entries, err = a.store.List(ctx, a.cfg.Prefix)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransfer, err)
	}

	keys := PrunableKeys(ctx, a.log, entries, cutoff)
	if len(keys) == 0 {
		a.log.Info(ctx, "retention: nothing to prune", "cutoff", cutoff.Format(storage.ListedTimeLayout))
		return nil
	}

	for _, key := range keys {
		a.log.Info(ctx, "retention: deleting expired object", "key", key)
		err := a.retrier.Do(ctx, "delete "+key, func(ctx context.Context) error {
			return a.store.Delete(ctx, key)
		})
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrTransfer, err)
		}
	}

	a.log.Info(ctx, "retention pruning finished", "deleted", len(keys))
	return nil
}

// Package backup drives one backup run: preflight checks, a serial
// dump-and-upload cycle per database, retention pruning and the
// post-run hook. Databases are processed one at a time so that at most
// one dump is resident on local disk.
package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pgbackup/internal/checksum"
	"github.com/dmitrijs2005/pgbackup/internal/common"
	"github.com/dmitrijs2005/pgbackup/internal/config"
	"github.com/dmitrijs2005/pgbackup/internal/dbadmin"
	"github.com/dmitrijs2005/pgbackup/internal/execx"
	"github.com/dmitrijs2005/pgbackup/internal/filex"
	"github.com/dmitrijs2005/pgbackup/internal/hook"
	"github.com/dmitrijs2005/pgbackup/internal/logging"
	"github.com/dmitrijs2005/pgbackup/internal/naming"
	"github.com/dmitrijs2005/pgbackup/internal/retry"
	"github.com/dmitrijs2005/pgbackup/internal/storage"
)

// Seams for tests.
var (
	now       = time.Now
	freeSpace = filex.FreeSpace
	lookPath  = execx.LookPath
	runHook   = hook.Run
)

// Dumper is the subset of dbadmin.Dumper the producer needs.
type Dumper interface {
	Dump(ctx context.Context, database, destPath string) error
}

type App struct {
	cfg     *config.Config
	log     logging.Logger
	store   storage.ObjectStore
	dumper  Dumper
	retrier *retry.Controller
}

// NewApp wires the run from a validated configuration.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	store, err := storage.NewS3Store(ctx, storage.S3Config{
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Endpoint:  cfg.Endpoint,
	})
	if err != nil {
		return nil, err
	}

	dumper := &dbadmin.Dumper{
		Bin: cfg.DumpBinary,
		Conn: dbadmin.ConnParams{
			Host: cfg.DBHost, Port: cfg.DBPort,
			User: cfg.DBUser, Password: cfg.DBPassword,
		},
		Compression: cfg.Compression,
		Inv:         execx.New(cfg.UseShell),
	}

	return &App{
		cfg:     cfg,
		log:     log,
		store:   store,
		dumper:  dumper,
		retrier: retry.NewController(cfg.RetryAttempts, cfg.RetryBackoff, log),
	}, nil
}

// Run executes one full backup cycle.
func (a *App) Run(ctx context.Context) error {
	if err := a.preflight(ctx); err != nil {
		return err
	}

	// All artifacts of one run share the timestamp of the run start.
	stamp := now().UTC()
	cutoff := a.cfg.CutoffFrom(stamp)

	for _, db := range a.cfg.EffectiveDatabases() {
		if err := a.produce(ctx, db, stamp); err != nil {
			return err
		}
	}

	if a.cfg.DryRun {
		a.log.Info(ctx, "dry-run: retention pruning skipped")
	} else if err := a.prune(ctx, cutoff); err != nil {
		return err
	}

	if a.cfg.DryRun {
		return nil
	}
	return runHook(ctx, a.log, a.cfg.HookCommand)
}

// preflight fails the run before any remote action when a dependency
// is missing, local disk is too small for a dump, or the exclusion
// filter removed every candidate.
func (a *App) preflight(ctx context.Context) error {
	if err := lookPath(a.cfg.DumpBinary); err != nil {
		return fmt.Errorf("%w: dump binary: %v", common.ErrPreflight, err)
	}

	if _, err := filex.EnsureDir(a.cfg.TempDir); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPreflight, err)
	}
	free, err := freeSpace(a.cfg.TempDir)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPreflight, err)
	}
	if free < uint64(a.cfg.MinFreeBytes) {
		return fmt.Errorf("%w: %s has %d bytes free, need %d", common.ErrPreflight, a.cfg.TempDir, free, a.cfg.MinFreeBytes)
	}

	dbs := a.cfg.EffectiveDatabases()
	if len(dbs) == 0 {
		return fmt.Errorf("%w: no databases selected after exclusions", common.ErrPreflight)
	}

	a.log.Info(ctx, "preflight passed", "databases", dbs, "free_bytes", free)
	return nil
}

// produce runs the dump-and-upload cycle for one database. Local files
// are released on every exit path.
func (a *App) produce(ctx context.Context, database string, stamp time.Time) error {
	artifactName := naming.Key("", stamp, database)
	artifactKey := naming.Key(a.cfg.Prefix, stamp, database)
	sidecarKey := naming.SidecarKey(artifactKey)
	log := a.log.With("database", database, "key", artifactKey)

	if a.cfg.DryRun {
		log.Info(ctx, "dry-run: would dump and upload", "sidecar", sidecarKey)
		return nil
	}

	dumpPath := filex.TempPath(a.cfg.TempDir, naming.DumpSuffix)
	defer filex.RemoveQuiet(dumpPath)

	log.Info(ctx, "capturing dump")
	if err := a.dumper.Dump(ctx, database, dumpPath); err != nil {
		return err
	}

	digest, err := checksum.File(dumpPath)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrCapture, err)
	}

	sidecarPath, err := checksum.WriteSidecar(a.cfg.TempDir, digest, artifactName)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrCapture, err)
	}
	defer filex.RemoveQuiet(sidecarPath)

	opts := storage.PutOptions{
		Metadata:     map[string]string{checksum.MetadataKey: digest},
		StorageClass: a.cfg.StorageClass,
		SSE:          a.cfg.SSE,
		SSEKMSKeyID:  a.cfg.SSEKMSKeyID,
	}
	log.Info(ctx, "uploading artifact", "digest", digest)
	err = a.retrier.Do(ctx, "put "+artifactKey, func(ctx context.Context) error {
		return a.store.Put(ctx, artifactKey, dumpPath, opts)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransfer, err)
	}

	sidecarOpts := storage.PutOptions{
		StorageClass: a.cfg.StorageClass,
		SSE:          a.cfg.SSE,
		SSEKMSKeyID:  a.cfg.SSEKMSKeyID,
	}
	err = a.retrier.Do(ctx, "put "+sidecarKey, func(ctx context.Context) error {
		return a.store.Put(ctx, sidecarKey, sidecarPath, sidecarOpts)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransfer, err)
	}

	var meta map[string]string
	err = a.retrier.Do(ctx, "head "+artifactKey, func(ctx context.Context) error {
		var err error
		meta, err = a.store.Metadata(ctx, artifactKey)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransfer, err)
	}
	if err := checksum.Verify(digest, meta[checksum.MetadataKey], artifactKey); err != nil {
		return err
	}

	log.Info(ctx, "artifact verified")
	return nil
}

// Package restore resolves which artifact to bring back and drives the
// create-or-replace restore against the database server.
package restore

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

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

var runHook = hook.Run

// Admin is the subset of dbadmin.Client the executor needs.
type Admin interface {
	DatabaseExists(ctx context.Context, name string) (bool, error)
	CreateDatabase(ctx context.Context, name string) error
}

// Restorer is the subset of dbadmin.Restorer the executor needs.
type Restorer interface {
	Restore(ctx context.Context, database, artifactPath string, clean bool) error
}

type App struct {
	cfg      *config.Config
	log      logging.Logger
	store    storage.ObjectStore
	admin    Admin
	restorer Restorer
	retrier  *retry.Controller
	out      io.Writer
}

// NewApp wires the restore run from a validated configuration. The
// admin connection is opened lazily by pgx on first use.
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

	conn := dbadmin.ConnParams{
		Host: cfg.DBHost, Port: cfg.DBPort,
		User: cfg.DBUser, Password: cfg.DBPassword,
	}
	admin, err := dbadmin.Open(conn)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		log:      log,
		store:    store,
		admin:    admin,
		restorer: &dbadmin.Restorer{Bin: cfg.RestoreBinary, Conn: conn, Inv: execx.New(cfg.UseShell)},
		retrier:  retry.NewController(cfg.RetryAttempts, cfg.RetryBackoff, log),
		out:      os.Stdout,
	}, nil
}

// Run executes the parsed request.
func (a *App) Run(ctx context.Context, req *Request) error {
	switch req.Mode {
	case ModeHelp:
		fmt.Fprintln(a.out, Usage)
		return nil
	case ModeList:
		return a.list(ctx, req.ListPrefix)
	case ModeLatest, ModeExplicit:
		return a.restore(ctx, req)
	default:
		return fmt.Errorf("%w: unknown mode", common.ErrConfiguration)
	}
}

// list prints the remote listing to stdout and performs no side effect.
func (a *App) list(ctx context.Context, prefix string) error {
	if prefix == "" {
		prefix = a.cfg.Prefix
	}

	entries, err := a.listEntries(ctx, prefix)
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Fprintf(a.out, "%s\t%12d\t%s\n", e.LastModified, e.Size, e.Key)
	}
	return nil
}

func (a *App) listEntries(ctx context.Context, prefix string) ([]storage.Entry, error) {
	var entries []storage.Entry
	err := a.retrier.Do(ctx, "list "+prefix, func(ctx context.Context) error {
		var err error
		entries, err = a.store.List(ctx, prefix)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransfer, err)
	}
	return entries, nil
}

// resolveKey turns the request into the object key to download.
func (a *App) resolveKey(ctx context.Context, req *Request) (string, error) {
	if req.Mode == ModeExplicit {
		if strings.HasPrefix(req.Artifact, a.cfg.Prefix) {
			return req.Artifact, nil
		}
		return a.cfg.Prefix + req.Artifact, nil
	}

	entries, err := a.listEntries(ctx, a.cfg.Prefix)
	if err != nil {
		return "", err
	}
	key, ok := LatestKey(entries, req.Database)
	if !ok {
		return "", fmt.Errorf("%w: no artifact found for database %s", common.ErrConfiguration, req.Database)
	}
	return key, nil
}

func (a *App) restore(ctx context.Context, req *Request) error {
	key, err := a.resolveKey(ctx, req)
	if err != nil {
		return err
	}
	log := a.log.With("database", req.Database, "key", key)

	// The existence check is read-only and runs in dry-run mode too.
	exists, err := a.admin.DatabaseExists(ctx, req.Database)
	if err != nil {
		return err
	}

	if a.cfg.DryRun {
		if exists {
			log.Info(ctx, "dry-run: would download and clean-restore into existing database")
		} else {
			log.Info(ctx, "dry-run: would download, create database and restore")
		}
		return nil
	}

	if _, err := filex.EnsureDir(a.cfg.TempDir); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPreflight, err)
	}
	localPath := filex.TempPath(a.cfg.TempDir, naming.DumpSuffix)
	defer filex.RemoveQuiet(localPath)

	log.Info(ctx, "downloading artifact")
	err = a.retrier.Do(ctx, "get "+key, func(ctx context.Context) error {
		return a.store.Get(ctx, key, localPath)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransfer, err)
	}

	if exists {
		// Deliberate overwrite: drop existing objects, then recreate.
		log.Info(ctx, "restoring into existing database with clean semantics")
		if err := a.restorer.Restore(ctx, req.Database, localPath, true); err != nil {
			return err
		}
	} else {
		log.Info(ctx, "creating database and restoring")
		if err := a.admin.CreateDatabase(ctx, req.Database); err != nil {
			return err
		}
		if err := a.restorer.Restore(ctx, req.Database, localPath, false); err != nil {
			return err
		}
	}

	log.Info(ctx, "restore finished")
	return runHook(ctx, a.log, a.cfg.HookCommand)
}

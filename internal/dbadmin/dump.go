package dbadmin

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/pgbackup/internal/common"
	"github.com/dmitrijs2005/pgbackup/internal/execx"
)

// Dumper drives the external dump binary. The binary's stdout is the
// dump byte stream and is redirected straight into the destination
// file; stderr is captured for the error message.
type Dumper struct {
	Bin         string
	Conn        ConnParams
	Compression int
	Inv         execx.Invoker
}

// Dump captures database into destPath in custom format. A non-zero
// exit is a capture failure that aborts the run.
func (d *Dumper) Dump(ctx context.Context, database, destPath string) error {
	f, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o660)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", common.ErrCapture, destPath, err)
	}
	defer f.Close()

	cmd := d.Inv.Command(ctx, d.Bin,
		"-h", d.Conn.Host,
		"-p", strconv.Itoa(d.Conn.Port),
		"-U", d.Conn.User,
		"-Z", strconv.Itoa(d.Compression),
		"-F", "c",
		database,
	)

	var stderr bytes.Buffer
	cmd.Stdout = f
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), "PGPASSWORD="+d.Conn.Password)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: dump of %s: %v: %s", common.ErrCapture, database, err, stderr.String())
	}
	return f.Close()
}

// Restorer drives the external restore binary.
type Restorer struct {
	Bin  string
	Conn ConnParams
	Inv  execx.Invoker
}

// Restore loads artifactPath into database. With clean set, existing
// objects are dropped before being recreated (deliberate overwrite);
// otherwise the restore is additive into a freshly created database.
func (r *Restorer) Restore(ctx context.Context, database, artifactPath string, clean bool) error {
	args := []string{
		"-h", r.Conn.Host,
		"-p", strconv.Itoa(r.Conn.Port),
		"-U", r.Conn.User,
		"-d", database,
	}
	if clean {
		args = append(args, "--clean", "--if-exists")
	}
	args = append(args, artifactPath)

	cmd := r.Inv.Command(ctx, r.Bin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), "PGPASSWORD="+r.Conn.Password)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("restore of %s: %v: %s", database, err, stderr.String())
	}
	return nil
}

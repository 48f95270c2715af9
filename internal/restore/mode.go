package restore

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pgbackup/internal/common"
	"github.com/dmitrijs2005/pgbackup/internal/config"
)

type Mode int

const (
	// ModeExplicit restores a named artifact: <database> <artifact>.
	ModeExplicit Mode = iota
	// ModeLatest restores the newest artifact of a database.
	ModeLatest
	// ModeList prints the remote listing and performs no restore.
	ModeList
	// ModeHelp prints usage and exits successfully.
	ModeHelp
)

// Request is the parsed restore command line.
type Request struct {
	Mode       Mode
	Database   string
	Artifact   string
	ListPrefix string
}

// Usage is printed for -h/--help and argument errors.
const Usage = `usage:
  restore <database> <artifactName>   restore a named artifact
  restore --latest <database>         restore the newest artifact of a database
  restore --list [prefix]             list remote artifacts and exit
options: --dry-run, -q, -c/-config <file>, and all backup configuration flags`

// ParseRequest interprets the restore CLI arguments. Mode flags may
// be mixed with configuration flags; configuration values are never
// mistaken for positionals.
func ParseRequest(args []string) (*Request, error) {
	req := &Request{Mode: ModeExplicit}
	modeSet := ""

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "-help" || arg == "--help":
			return &Request{Mode: ModeHelp}, nil

		case arg == "-latest" || arg == "--latest":
			if modeSet != "" {
				return nil, fmt.Errorf("%w: --latest conflicts with %s", common.ErrConfiguration, modeSet)
			}
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
				return nil, fmt.Errorf("%w: --latest requires a database name", common.ErrConfiguration)
			}
			req.Mode = ModeLatest
			req.Database = args[i+1]
			modeSet = "--latest"
			i++

		case strings.HasPrefix(arg, "-latest=") || strings.HasPrefix(arg, "--latest="):
			if modeSet != "" {
				return nil, fmt.Errorf("%w: --latest conflicts with %s", common.ErrConfiguration, modeSet)
			}
			req.Mode = ModeLatest
			req.Database = arg[strings.Index(arg, "=")+1:]
			modeSet = "--latest"

		case arg == "-list" || arg == "--list":
			if modeSet != "" {
				return nil, fmt.Errorf("%w: --list conflicts with %s", common.ErrConfiguration, modeSet)
			}
			req.Mode = ModeList
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				req.ListPrefix = args[i+1]
				i++
			}
			modeSet = "--list"
		}
	}

	if req.Mode != ModeExplicit {
		return req, nil
	}

	positionals := config.Positionals(args)
	if len(positionals) != 2 {
		return nil, fmt.Errorf("%w: expected <database> <artifactName>, got %d positional arguments", common.ErrConfiguration, len(positionals))
	}
	req.Database = positionals[0]
	req.Artifact = positionals[1]
	return req, nil
}

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pgbackup/internal/common"
)

// ParseRetention parses a retention setting into a day count. The
// value is an integer, optionally followed by a unit word which is
// accepted and ignored ("30", "30 days", "7 Days"). Negative values
// are rejected.
func ParseRetention(s string) (int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, fmt.Errorf("%w: retention %q: want \"<days>\" or \"<days> <unit>\"", common.ErrConfiguration, s)
	}

	days, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("%w: retention %q: %v", common.ErrConfiguration, s, err)
	}
	if days < 0 {
		return 0, fmt.Errorf("%w: retention %q: must be non-negative", common.ErrConfiguration, s)
	}
	return days, nil
}

//go:build unix

package filex

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// FreeSpace reports the number of bytes available to the current user
// on the filesystem holding dir.
func FreeSpace(dir string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", dir, err)
	}
	return st.Bavail * uint64(st.Bsize), nil
}

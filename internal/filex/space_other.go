//go:build !unix

package filex

import "errors"

// FreeSpace is unsupported on this platform; the preflight check
// treats the error as fatal, so set min-free to 0 to disable it.
func FreeSpace(dir string) (uint64, error) {
	return 0, errors.New("free-space probe not supported on this platform")
}

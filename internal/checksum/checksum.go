// Package checksum computes and validates the SHA-256 digests that
// guard the upload boundary. The digest travels twice: as object
// metadata on the artifact itself, and in a human-readable sidecar
// object next to it.
package checksum

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/pgbackup/internal/common"
)

// MetadataKey is the object-metadata attribute carrying the digest.
const MetadataKey = "sha256"

// File returns the lowercase hex SHA-256 digest of the file's content.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteSidecar writes the sidecar file for an artifact into dir and
// returns its path. The content is the fixed one-line format
// "{digest}  {artifactName}" understood by sha256sum -c.
func WriteSidecar(dir, digest, artifactName string) (string, error) {
	path := filepath.Join(dir, artifactName+".sha256")
	line := fmt.Sprintf("%s  %s\n", digest, artifactName)
	if err := os.WriteFile(path, []byte(line), 0o660); err != nil {
		return "", fmt.Errorf("write sidecar %s: %w", path, err)
	}
	return path, nil
}

// ParseSidecar reads a sidecar line back into digest and artifact name.
func ParseSidecar(r io.Reader) (digest, artifactName string, err error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", "", fmt.Errorf("read sidecar: %w", err)
	}
	digest, artifactName, ok := strings.Cut(strings.TrimRight(line, "\n"), "  ")
	if !ok || len(digest) != sha256.Size*2 || artifactName == "" {
		return "", "", fmt.Errorf("malformed sidecar line %q", line)
	}
	return digest, artifactName, nil
}

// Verify compares the locally computed digest with the digest the
// store reports for key. Any difference, including an absent remote
// digest, is an integrity failure that must abort the run.
func Verify(expected, remote, key string) error {
	if remote == "" {
		return fmt.Errorf("%w: no digest metadata on %s", common.ErrIntegrity, key)
	}
	if expected != remote {
		return fmt.Errorf("%w: %s: local %s, remote %s", common.ErrIntegrity, key, expected, remote)
	}
	return nil
}

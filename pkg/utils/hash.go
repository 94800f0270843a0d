// pkg/utils/hash.go - installer checksums.

package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileSHA256 returns the hex SHA256 sum of a file.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ErrHashMismatch is returned by VerifySHA256 when the sums differ.
var ErrHashMismatch = errors.New("sha256 mismatch")

// VerifySHA256 checks a file against an expected hex sum, ignoring case.
func VerifySHA256(path, expected string) error {
	actual, err := FileSHA256(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actual, strings.TrimSpace(expected)) {
		return fmt.Errorf("%w: %s has %s, want %s", ErrHashMismatch, path, actual, expected)
	}
	return nil
}

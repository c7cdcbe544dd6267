// Package fingerprint computes content digests used as the dedup key for
// videos and audio files.
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"dashscribe/internal/apperr"
)

// File returns the md5 hex digest of the file's bytes, the form stored in
// the checksum columns.
// The digest depends only on content, never on name or mtime.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperr.NotFound(path)
		}
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return Reader(f)
}

// Reader returns the hex digest of everything read from r.
func Reader(r io.Reader) (string, error) {
	h := md5.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to hash content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Package digest computes file content fingerprints for duplicate
// detection. Files stream through the hash in fixed-size chunks so memory
// stays bounded regardless of file size.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Algorithm selects the hash used for duplicate detection.
type Algorithm string

const (
	// SHA256 is the default: collision resistance well beyond what
	// accidental-duplicate detection needs.
	SHA256 Algorithm = "sha256"
	// XXH64 trades that margin for speed on very large trees.
	XXH64 Algorithm = "xxh64"
)

// chunkSize is the read buffer used to stream file contents.
const chunkSize = 1 << 20

// Parse maps a configuration value onto an Algorithm.
func Parse(value string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(value))) {
	case SHA256:
		return SHA256, nil
	case XXH64:
		return XXH64, nil
	}
	return "", fmt.Errorf("unknown digest algorithm %q", value)
}

func newHash(algorithm Algorithm) (hash.Hash, error) {
	switch algorithm {
	case SHA256, "":
		return sha256.New(), nil
	case XXH64:
		return xxhash.New(), nil
	}
	return nil, fmt.Errorf("unknown digest algorithm %q", algorithm)
}

// File returns the hex digest of the file at path. Open and read failures
// surface to the caller; treating them as "not a duplicate" is the
// caller's policy.
func File(path string, algorithm Algorithm) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for digest: %w", err)
	}
	defer file.Close()

	hasher, err := newHash(algorithm)
	if err != nil {
		return "", err
	}
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(hasher, file, buf); err != nil {
		return "", fmt.Errorf("read for digest: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

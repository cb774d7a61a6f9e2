// Package checksum computes file digests in the conventional checksum-file
// format ("<hex>  <path>"). It is independent of the audit engine and backs
// the hash subcommand.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/zeebo/blake3"
)

// Algorithm selects the digest function.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	BLAKE3 Algorithm = "blake3"
)

// ParseAlgorithm parses an algorithm name, case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sha256", "sha-256":
		return SHA256, nil
	case "blake3", "b3":
		return BLAKE3, nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm %q", s)
	}
}

func (a Algorithm) newHasher() hash.Hash {
	if a == BLAKE3 {
		return blake3.New()
	}
	return sha256.New()
}

// Result is one hashed file.
type Result struct {
	Path   string
	Digest string
	Size   int64
}

// String renders the result as a checksum-file line.
func (r Result) String() string {
	return fmt.Sprintf("%s  %s", r.Digest, r.Path)
}

// File hashes a single file.
func File(algorithm Algorithm, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer f.Close()

	h := algorithm.newHasher()
	n, err := io.Copy(h, f)
	if err != nil {
		return Result{}, fmt.Errorf("unable to hash %s: %w", path, err)
	}

	return Result{
		Path:   path,
		Digest: hex.EncodeToString(h.Sum(nil)),
		Size:   n,
	}, nil
}

// Files hashes paths in order, continuing past individual failures. The
// returned errors parallel the skipped paths.
func Files(algorithm Algorithm, paths []string) ([]Result, []error) {
	results := make([]Result, 0, len(paths))
	errs := make([]error, 0)
	for _, path := range paths {
		r, err := File(algorithm, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, r)
	}
	return results, errs
}

// Summarize describes how much data a set of results covers.
func Summarize(results []Result) string {
	var total int64
	for _, r := range results {
		total += r.Size
	}
	return fmt.Sprintf("hashed %d file(s), %s", len(results), humanize.Bytes(uint64(total)))
}

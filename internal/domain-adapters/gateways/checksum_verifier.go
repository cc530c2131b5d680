package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// checksumVerifier implements firmware checksum verification
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// VerifyChecksum verifies a file's SHA256 checksum
func (v *checksumVerifier) VerifyChecksum(_ context.Context, filePath, expectedSum string) error {
	actualSum, err := v.CalculateChecksum(filePath)
	if err != nil {
		return err
	}

	if actualSum != strings.ToLower(strings.TrimSpace(expectedSum)) {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expectedSum, actualSum)
	}

	return nil
}

// VerifyChecksumFile verifies a file against a "hash  filename" checksum file
func (v *checksumVerifier) VerifyChecksumFile(ctx context.Context, filePath, checksumFile string) error {
	//nolint:gosec // G304: checksumFile is user-provided path for verification
	data, err := os.ReadFile(checksumFile)
	if err != nil {
		return fmt.Errorf("failed to read checksum file: %w", err)
	}

	expectedSum, err := findChecksum(string(data), filepath.Base(filePath))
	if err != nil {
		return err
	}

	return v.VerifyChecksum(ctx, filePath, expectedSum)
}

// findChecksum picks the hash for name from sha256sum output.
// A single-entry file is accepted regardless of the name it lists.
func findChecksum(data, name string) (string, error) {
	var entries [][]string
	for _, line := range strings.Split(data, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			entries = append(entries, fields)
		}
	}

	if len(entries) == 0 {
		return "", fmt.Errorf("invalid checksum file format")
	}

	for _, fields := range entries {
		if len(fields) < 2 {
			continue
		}
		// sha256sum marks binary mode with a leading '*'
		listed := strings.TrimPrefix(strings.Join(fields[1:], " "), "*")
		if filepath.Base(listed) == name {
			return fields[0], nil
		}
	}

	if len(entries) == 1 {
		return entries[0][0], nil
	}
	return "", fmt.Errorf("no checksum for %s in checksum file", name)
}

// CalculateChecksum calculates the SHA256 checksum of a file
func (v *checksumVerifier) CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: File path is user-provided for checksum calculation
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Package testsupport holds fixture and golden file helpers shared by the
// package tests.
package testsupport

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-profilegen/pkg/content"
)

// LoadPayload parses a YAML fixture. Testing helpers fail the test on error
// to keep table tests concise.
func LoadPayload(t *testing.T, path string) *content.Payload {
	t.Helper()

	payload, err := LoadPayloadFromPath(path)
	if err != nil {
		t.Fatalf("load payload: %v", err)
	}
	return payload
}

// LoadPayloadFromPath returns a Payload without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadPayloadFromPath(path string) (*content.Payload, error) {
	if path == "" {
		return nil, errors.New("testsupport: payload path is required")
	}
	payload, err := content.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: load payload: %w", err)
	}
	return payload, nil
}

// CopyFixture copies a fixture file into dir under name, creating parent
// directories, and returns the destination path.
func CopyFixture(t *testing.T, src, dir, name string) string {
	t.Helper()

	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return WriteFile(t, filepath.Join(dir, filepath.FromSlash(name)), string(data))
}

// WriteFile writes body to path, creating parent directories.
func WriteFile(t *testing.T, path, body string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// AssertNotExist fails the test when path exists.
func AssertNotExist(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected %s not to exist, stat err = %v", path, err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

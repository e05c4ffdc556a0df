package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-domtemplate/pkg/shorthand"
	"github.com/goliatone/go-domtemplate/pkg/value"
)

// MustLoadValue decodes a JSON or YAML fixture into a generic value.
func MustLoadValue(t *testing.T, path string) any {
	t.Helper()

	out, err := LoadValue(path)
	if err != nil {
		t.Fatalf("load value: %v", err)
	}
	return out
}

// LoadValue decodes a JSON or YAML fixture, picking the decoder by extension,
// for callers managing setup outside of *testing.T.
func LoadValue(path string) (any, error) {
	if path == "" {
		return nil, errors.New("testsupport: fixture path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read fixture: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err := value.DecodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("testsupport: decode yaml fixture: %w", err)
		}
		return out, nil
	default:
		out, err := value.DecodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("testsupport: decode json fixture: %w", err)
		}
		return out, nil
	}
}

// MustLoadNode loads a fixture and extracts its shorthand node.
func MustLoadNode(t *testing.T, path string) shorthand.Node {
	t.Helper()

	source := MustLoadValue(t, path)
	node, ok := shorthand.Extract(source)
	if !ok {
		t.Fatalf("fixture %s does not describe a node", path)
	}
	return node
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

// AssertGolden compares got with the golden file at path, rewriting the file
// instead when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path string, got []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := MustReadGoldenString(t, path)
	if diff := CompareGolden(want, string(got)); diff != "" {
		t.Fatalf("golden mismatch for %s (-want +got):\n%s", path, diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput runs fn against a buffer and returns what it wrote.
func CaptureOutput(t *testing.T, fn func(io.Writer) error) string {
	t.Helper()

	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		t.Fatalf("capture output: %v", err)
	}
	return buf.String()
}

// Package golden compares test output with files under testdata/.
package golden

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Update rewrites golden files instead of comparing against them.
var Update = flag.Bool("update", false, "update golden files")

// TestdataDir is the testdata directory next to the calling test file.
func TestdataDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(1)
	if !ok {
		t.Fatalf("runtime.Caller failed")
	}
	return filepath.Join(filepath.Dir(filename), "testdata")
}

// Assert compares got with <dir>/<name>.golden, rewriting it first when -update is set.
func Assert(t *testing.T, dir, name, got string) {
	t.Helper()
	path := goldenPath(t, dir, name)

	if *Update {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("mkdir testdata: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o600); err != nil {
			t.Fatalf("write golden %s: %v", path, err)
		}
	}

	want, err := os.ReadFile(path) //nolint:gosec // testdata path controlled by test
	if err != nil {
		t.Fatalf("read golden %s: %v (run with -update to create it)", path, err)
	}
	if got != string(want) {
		t.Errorf("golden %s mismatch:\nGOT:\n%s\nWANT:\n%s", name, got, want)
	}
}

func goldenPath(t *testing.T, dir, name string) string {
	t.Helper()
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		t.Fatalf("invalid golden name %q", name)
	}
	return filepath.Join(dir, name+".golden")
}

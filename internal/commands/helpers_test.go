package commands_test

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTestFile creates a file and its parent directories, failing the test on error.
func writeTestFile(t *testing.T, filePath string, content string) {
	t.Helper()
	if makeDirError := os.MkdirAll(filepath.Dir(filePath), 0o755); makeDirError != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(filePath), makeDirError)
	}
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		t.Fatalf("write %s: %v", filePath, writeError)
	}
}

// makeTestDirectory creates a directory tree, failing the test on error.
func makeTestDirectory(t *testing.T, directoryPath string) {
	t.Helper()
	if makeDirError := os.MkdirAll(directoryPath, 0o755); makeDirError != nil {
		t.Fatalf("mkdir %s: %v", directoryPath, makeDirError)
	}
}

// skipWhenPrivileged skips permission tests when running as root, which bypasses mode bits.
func skipWhenPrivileged(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed for root")
	}
}

// restrictPermissions chmods path and restores it after the test so TempDir cleanup succeeds.
func restrictPermissions(t *testing.T, path string, mode os.FileMode, restoreMode os.FileMode) {
	t.Helper()
	if chmodError := os.Chmod(path, mode); chmodError != nil {
		t.Fatalf("chmod %s: %v", path, chmodError)
	}
	t.Cleanup(func() {
		_ = os.Chmod(path, restoreMode)
	})
}

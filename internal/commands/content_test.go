package commands_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/snapsource/internal/commands"
	"github.com/temirov/snapsource/internal/ignore"
	"github.com/temirov/snapsource/internal/transform"
	"github.com/temirov/snapsource/internal/types"
)

func newTestCollector(root string, excludes []string) *commands.FileCollector {
	return &commands.FileCollector{
		Root:        root,
		Matcher:     ignore.New(excludes, nil),
		MaxFileSize: types.DefaultMaxFileSize,
	}
}

func assertRecords(t *testing.T, actual []types.FileRecord, expected []types.FileRecord) {
	t.Helper()
	if len(actual) != len(expected) {
		t.Fatalf("expected %d records, got %d: %+v", len(expected), len(actual), actual)
	}
	for index := range expected {
		if actual[index] != expected[index] {
			t.Fatalf("record %d: expected %+v, got %+v", index, expected[index], actual[index])
		}
	}
}

func TestFileCollectorPreservesSelectionOrder(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "src", "index.js"), `console.log("x")`)
	writeTestFile(t, filepath.Join(root, "src", "lib", "util.js"), "util")
	writeTestFile(t, filepath.Join(root, "src", "z.js"), "z")
	writeTestFile(t, filepath.Join(root, "package.json"), `{"a":1}`)

	collector := newTestCollector(root, nil)
	records, collectError := collector.Collect(context.Background(), []string{
		filepath.Join(root, "package.json"),
		filepath.Join(root, "src"),
	})
	if collectError != nil {
		t.Fatalf("Collect error: %v", collectError)
	}
	assertRecords(t, records, []types.FileRecord{
		{RelativePath: "package.json", Content: `{"a":1}`},
		{RelativePath: "src/index.js", Content: `console.log("x")`},
		{RelativePath: "src/lib/util.js", Content: "util"},
		{RelativePath: "src/z.js", Content: "z"},
	})
}

func TestFileCollectorSkipsIgnoredEntries(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "app.log"), "log")
	writeTestFile(t, filepath.Join(root, ".env"), "SECRET=1")
	writeTestFile(t, filepath.Join(root, "node_modules", "pkg", "index.js"), "dep")
	writeTestFile(t, filepath.Join(root, "main.go"), "package main")

	collector := newTestCollector(root, []string{"node_modules", "*.log"})
	records, collectError := collector.Collect(context.Background(), []string{root, filepath.Join(root, "app.log")})
	if collectError != nil {
		t.Fatalf("Collect error: %v", collectError)
	}
	assertRecords(t, records, []types.FileRecord{
		{RelativePath: "main.go", Content: "package main"},
	})
}

func TestFileCollectorOversizedFile(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "big.txt"), "hello world")

	collector := newTestCollector(root, nil)
	collector.MaxFileSize = 4
	records, collectError := collector.Collect(context.Background(), []string{root})
	if collectError != nil {
		t.Fatalf("Collect error: %v", collectError)
	}
	expected := "[File content not included. Size (11 bytes) exceeds the maximum allowed size (4 bytes)]"
	assertRecords(t, records, []types.FileRecord{{RelativePath: "big.txt", Content: expected}})
}

func TestFileCollectorOversizedFileIsNeverRead(t *testing.T) {
	skipWhenPrivileged(t)
	root := t.TempDir()
	filePath := filepath.Join(root, "big.txt")
	writeTestFile(t, filePath, "0123456789")
	restrictPermissions(t, filePath, 0o000, 0o644)

	collector := newTestCollector(root, nil)
	collector.MaxFileSize = 5
	records, collectError := collector.Collect(context.Background(), []string{filePath})
	if collectError != nil {
		t.Fatalf("Collect error: %v", collectError)
	}
	expected := fmt.Sprintf(commands.OversizedPlaceholderFormat, 10, 5)
	assertRecords(t, records, []types.FileRecord{{RelativePath: "big.txt", Content: expected}})
}

func TestFileCollectorBinaryFile(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "image.png"), "\x89PNG\x00\x01\x02")

	records, collectError := newTestCollector(root, nil).Collect(context.Background(), []string{root})
	if collectError != nil {
		t.Fatalf("Collect error: %v", collectError)
	}
	assertRecords(t, records, []types.FileRecord{{RelativePath: "image.png", Content: commands.BinaryPlaceholder}})
}

func TestFileCollectorKeepsLatin1TextAsText(t *testing.T) {
	root := t.TempDir()
	asciiBody := strings.Repeat("ordinary ascii text\n", 60)
	writeTestFile(t, filepath.Join(root, "notes.txt"), asciiBody+"caf\xe9\n")

	records, collectError := newTestCollector(root, nil).Collect(context.Background(), []string{root})
	if collectError != nil {
		t.Fatalf("Collect error: %v", collectError)
	}
	assertRecords(t, records, []types.FileRecord{{RelativePath: "notes.txt", Content: asciiBody + "caf\uFFFD\n"}})
}

func TestFileCollectorAppliesTransforms(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "main.js"), "  let a = 1; // one\n\n  /* block */ let b = 2;\n")

	collector := newTestCollector(root, nil)
	collector.Transform = transform.Options{RemoveComments: true, CompressWhitespace: true}
	records, collectError := collector.Collect(context.Background(), []string{root})
	if collectError != nil {
		t.Fatalf("Collect error: %v", collectError)
	}
	assertRecords(t, records, []types.FileRecord{{RelativePath: "main.js", Content: "let a = 1;\nlet b = 2;"}})
}

func TestFileCollectorReadFailures(t *testing.T) {
	root := t.TempDir()
	missingPath := filepath.Join(root, "missing.txt")

	records, collectError := newTestCollector(root, nil).Collect(context.Background(), []string{missingPath})
	if collectError != nil {
		t.Fatalf("Collect error: %v", collectError)
	}
	assertRecords(t, records, []types.FileRecord{{RelativePath: "missing.txt", Content: "[Error reading file: File not found]"}})
}

func TestFileCollectorPermissionDenied(t *testing.T) {
	skipWhenPrivileged(t)
	root := t.TempDir()
	lockedPath := filepath.Join(root, "locked.txt")
	writeTestFile(t, lockedPath, "secret")
	writeTestFile(t, filepath.Join(root, "open.txt"), "open")
	restrictPermissions(t, lockedPath, 0o000, 0o644)

	records, collectError := newTestCollector(root, nil).Collect(context.Background(), []string{root})
	if collectError != nil {
		t.Fatalf("Collect error: %v", collectError)
	}
	assertRecords(t, records, []types.FileRecord{
		{RelativePath: "locked.txt", Content: "[Error reading file: Permission denied]"},
		{RelativePath: "open.txt", Content: "open"},
	})
}

func TestFileCollectorSymlinkCycle(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "data", "file.txt"), "f")
	if symlinkError := os.Symlink(filepath.Join(root, "data"), filepath.Join(root, "data", "self")); symlinkError != nil {
		t.Skipf("symlinks unavailable: %v", symlinkError)
	}

	records, collectError := newTestCollector(root, nil).Collect(context.Background(), []string{root})
	if collectError != nil {
		t.Fatalf("Collect error: %v", collectError)
	}
	assertRecords(t, records, []types.FileRecord{{RelativePath: "data/file.txt", Content: "f"}})
}

func TestFileCollectorCancelled(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.txt"), "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, collectError := newTestCollector(root, nil).Collect(ctx, []string{root})
	if !errors.Is(collectError, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", collectError)
	}
	if records != nil {
		t.Fatalf("expected no partial records, got %+v", records)
	}
}

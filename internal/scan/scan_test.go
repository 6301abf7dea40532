package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tvetkov/treegen/internal/scan"
	"github.com/tvetkov/treegen/internal/types"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if directoryError := os.MkdirAll(filepath.Dir(path), 0o755); directoryError != nil {
		t.Fatalf("creating directory: %v", directoryError)
	}
	if writeError := os.WriteFile(path, []byte(content), 0o644); writeError != nil {
		t.Fatalf("writing file: %v", writeError)
	}
}

func TestDirectorySnapshot(t *testing.T) {
	rootDirectory := t.TempDir()
	writeFile(t, filepath.Join(rootDirectory, "a.txt"), "0123456789")
	writeFile(t, filepath.Join(rootDirectory, "sub", "b.txt"), "01234567890123456789")

	snapshot, scanError := scan.Directory(context.Background(), rootDirectory)
	if scanError != nil {
		t.Fatalf("unexpected scan error: %v", scanError)
	}

	expectedRootName := filepath.Base(rootDirectory)
	if snapshot.RootName != expectedRootName {
		t.Fatalf("expected root name %q, got %q", expectedRootName, snapshot.RootName)
	}
	if snapshot.RootPath == "" {
		t.Fatal("expected a scanned snapshot to carry its root path")
	}
	if len(snapshot.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(snapshot.Entries))
	}

	entriesByPath := make(map[string]types.PathEntry, len(snapshot.Entries))
	for _, entry := range snapshot.Entries {
		entriesByPath[entry.RelativePath] = entry
	}

	fileEntry, found := entriesByPath[expectedRootName+"/a.txt"]
	if !found {
		t.Fatalf("expected entry for a.txt, got %v", snapshot.Entries)
	}
	if fileEntry.SizeBytes != 10 {
		t.Fatalf("expected 10 bytes, got %d", fileEntry.SizeBytes)
	}
	if _, found := entriesByPath[expectedRootName+"/sub/b.txt"]; !found {
		t.Fatalf("expected entry for sub/b.txt, got %v", snapshot.Entries)
	}
}

func TestDirectoryMissingRoot(t *testing.T) {
	_, scanError := scan.Directory(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if scanError == nil {
		t.Fatal("expected an error for a missing root")
	}
}

func TestDirectoriesScansAllRoots(t *testing.T) {
	firstRoot := t.TempDir()
	secondRoot := t.TempDir()
	writeFile(t, filepath.Join(firstRoot, "one.txt"), "x")
	writeFile(t, filepath.Join(secondRoot, "two.txt"), "xy")

	snapshots, scanError := scan.Directories(context.Background(), []string{firstRoot, secondRoot})
	if scanError != nil {
		t.Fatalf("unexpected scan error: %v", scanError)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}
	if len(snapshots[0].Entries) != 1 || len(snapshots[1].Entries) != 1 {
		t.Fatalf("expected one entry per root, got %d and %d", len(snapshots[0].Entries), len(snapshots[1].Entries))
	}
}

func TestRootNameFromEntries(t *testing.T) {
	testCases := []struct {
		name     string
		entries  []types.PathEntry
		expected string
	}{
		{name: "empty list", entries: nil, expected: ""},
		{name: "nested entry", entries: []types.PathEntry{{RelativePath: "project/src/main.go"}}, expected: "project"},
		{name: "single segment", entries: []types.PathEntry{{RelativePath: "project"}}, expected: "project"},
		{name: "leading separator", entries: []types.PathEntry{{RelativePath: "/project/a"}}, expected: "project"},
		{name: "blank first entry", entries: []types.PathEntry{{RelativePath: "/"}, {RelativePath: "project/a"}}, expected: "project"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := scan.RootNameFromEntries(testCase.entries)
			if result != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, result)
			}
		})
	}
}

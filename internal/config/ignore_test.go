package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tvetkov/treegen/internal/config"
)

func TestLoadIgnoreSegments(t *testing.T) {
	directory := t.TempDir()
	ignorePath := filepath.Join(directory, config.IgnoreFileName)
	content := "# build artifacts\nnode_modules\n\n  dist  \n.git\n"
	if writeError := os.WriteFile(ignorePath, []byte(content), 0o644); writeError != nil {
		t.Fatalf("writing ignore file: %v", writeError)
	}

	segments, loadError := config.LoadIgnoreSegments(ignorePath)
	if loadError != nil {
		t.Fatalf("unexpected load error: %v", loadError)
	}
	expected := []string{"node_modules", "dist", ".git"}
	if len(segments) != len(expected) {
		t.Fatalf("expected %d segments, got %v", len(expected), segments)
	}
	for index, segment := range expected {
		if segments[index] != segment {
			t.Fatalf("expected %q at position %d, got %q", segment, index, segments[index])
		}
	}
}

func TestLoadIgnoreSegmentsMissingFile(t *testing.T) {
	segments, loadError := config.LoadIgnoreSegments(filepath.Join(t.TempDir(), config.IgnoreFileName))
	if loadError != nil {
		t.Fatalf("a missing ignore file must not be an error, got %v", loadError)
	}
	if segments != nil {
		t.Fatalf("expected no segments, got %v", segments)
	}
}

package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tvetkov/treegen/internal/manifest"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	manifestPath := filepath.Join(t.TempDir(), "snapshot.yaml")
	if writeError := os.WriteFile(manifestPath, []byte(content), 0o644); writeError != nil {
		t.Fatalf("writing manifest: %v", writeError)
	}
	return manifestPath
}

func TestLoadManifest(t *testing.T) {
	manifestPath := writeManifest(t, `root: project
entries:
  - path: project/src/main.go
    size: 2048
  - path: project/README.md
    size: 120
`)

	snapshot, loadError := manifest.Load(manifestPath)
	if loadError != nil {
		t.Fatalf("unexpected load error: %v", loadError)
	}
	if snapshot.RootName != "project" {
		t.Fatalf("expected root name %q, got %q", "project", snapshot.RootName)
	}
	if len(snapshot.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(snapshot.Entries))
	}
	if snapshot.Entries[0].RelativePath != "project/src/main.go" || snapshot.Entries[0].SizeBytes != 2048 {
		t.Fatalf("unexpected first entry: %+v", snapshot.Entries[0])
	}
	if snapshot.RootPath != "" {
		t.Fatal("manifest snapshots must not carry a filesystem root path")
	}
}

func TestLoadManifestDerivesRootName(t *testing.T) {
	manifestPath := writeManifest(t, `entries:
  - path: project/a.txt
    size: 1
`)

	snapshot, loadError := manifest.Load(manifestPath)
	if loadError != nil {
		t.Fatalf("unexpected load error: %v", loadError)
	}
	if snapshot.RootName != "project" {
		t.Fatalf("expected derived root name %q, got %q", "project", snapshot.RootName)
	}
}

func TestLoadManifestFailures(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "empty entry list", content: "entries: []\n"},
		{name: "invalid yaml", content: "entries: [\n"},
		{name: "no derivable root", content: "entries:\n  - path: \"/\"\n    size: 1\n"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			manifestPath := writeManifest(t, testCase.content)
			if _, loadError := manifest.Load(manifestPath); loadError == nil {
				t.Fatal("expected a load error")
			}
		})
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	if _, loadError := manifest.Load(filepath.Join(t.TempDir(), "absent.yaml")); loadError == nil {
		t.Fatal("expected an error for a missing manifest")
	}
}

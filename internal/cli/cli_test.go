package cli

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
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

func scenarioDirectory(t *testing.T) string {
	t.Helper()
	rootDirectory := filepath.Join(t.TempDir(), "root")
	writeFile(t, filepath.Join(rootDirectory, "a.txt"), "0123456789")
	writeFile(t, filepath.Join(rootDirectory, "sub", "b.txt"), "01234567890123456789")
	writeFile(t, filepath.Join(rootDirectory, "sub", ".git", "x"), "01234")
	return rootDirectory
}

func runCommand(t *testing.T, arguments ...string) error {
	t.Helper()
	rootCommand := createRootCommand(zap.NewNop())
	rootCommand.SetArgs(arguments)
	return rootCommand.Execute()
}

func TestRenderCommandScenario(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	rootDirectory := scenarioDirectory(t)
	outputPath := filepath.Join(t.TempDir(), "tree.txt")

	executeError := runCommand(t,
		"render", rootDirectory,
		"--ignore", ".git",
		"--style", "classic",
		"--depth", "10",
		"--output", outputPath,
	)
	if executeError != nil {
		t.Fatalf("unexpected command error: %v", executeError)
	}

	renderedBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		t.Fatalf("reading output: %v", readError)
	}
	expected := "root\n" +
		"├── sub\n" +
		"│   └── b.txt\n" +
		"└── a.txt\n"
	if string(renderedBytes) != expected {
		t.Fatalf("expected:\n%s\ngot:\n%s", expected, renderedBytes)
	}
}

func TestRenderCommandStats(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	rootDirectory := scenarioDirectory(t)
	outputPath := filepath.Join(t.TempDir(), "tree.txt")

	executeError := runCommand(t,
		"render", rootDirectory,
		"--ignore", ".git",
		"--stats",
		"--output", outputPath,
	)
	if executeError != nil {
		t.Fatalf("unexpected command error: %v", executeError)
	}

	renderedBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		t.Fatalf("reading output: %v", readError)
	}
	expected := "root\n" +
		"├── sub\n" +
		"│   └── b.txt\n" +
		"└── a.txt\n" +
		"1 directory, 2 files, 30 B\n"
	if string(renderedBytes) != expected {
		t.Fatalf("expected:\n%s\ngot:\n%s", expected, renderedBytes)
	}
}

func TestRenderCommandLocalIgnoreFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	rootDirectory := scenarioDirectory(t)
	writeFile(t, filepath.Join(rootDirectory, ".treeignore"), ".git\nsub\n.treeignore\n")
	outputPath := filepath.Join(t.TempDir(), "tree.txt")

	executeError := runCommand(t, "render", rootDirectory, "--output", outputPath)
	if executeError != nil {
		t.Fatalf("unexpected command error: %v", executeError)
	}

	renderedBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		t.Fatalf("reading output: %v", readError)
	}
	expected := "root\n" +
		"└── a.txt\n"
	if string(renderedBytes) != expected {
		t.Fatalf("expected:\n%s\ngot:\n%s", expected, renderedBytes)
	}
}

func TestRenderCommandManifest(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	manifestPath := filepath.Join(t.TempDir(), "snapshot.yaml")
	writeFile(t, manifestPath, `root: project
entries:
  - path: project/src/main.go
    size: 2048
  - path: project/README.md
    size: 120
`)
	outputPath := filepath.Join(t.TempDir(), "tree.txt")

	executeError := runCommand(t, "render", "--list", manifestPath, "--sizes", "--output", outputPath)
	if executeError != nil {
		t.Fatalf("unexpected command error: %v", executeError)
	}

	renderedBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		t.Fatalf("reading output: %v", readError)
	}
	expected := "project (2.12 KB)\n" +
		"├── src\n" +
		"│   └── main.go (2 KB)\n" +
		"└── README.md (120 B)\n"
	if string(renderedBytes) != expected {
		t.Fatalf("expected:\n%s\ngot:\n%s", expected, renderedBytes)
	}
}

func TestRenderCommandInvalidStyle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if executeError := runCommand(t, "render", scenarioDirectory(t), "--style", "fancy"); executeError == nil {
		t.Fatal("expected an error for an invalid style")
	}
}

func TestRenderCommandNegativeDepth(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if executeError := runCommand(t, "render", scenarioDirectory(t), "--depth", "-1"); executeError == nil {
		t.Fatal("expected an error for a negative depth")
	}
}

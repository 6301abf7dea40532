package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tvetkov/treegen/internal/config"
)

func writeConfig(t *testing.T, directory string, fileName string, content string) string {
	t.Helper()
	configPath := filepath.Join(directory, fileName)
	if writeError := os.WriteFile(configPath, []byte(content), 0o644); writeError != nil {
		t.Fatalf("writing configuration: %v", writeError)
	}
	return configPath
}

func TestLoadApplicationConfigurationLocalFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workingDirectory := t.TempDir()
	writeConfig(t, workingDirectory, config.ConfigFileName, `render:
  style: emoji
  max_depth: 3
  ignore:
    - .git
    - .git
    - dist
  show_sizes: true
`)

	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
	})
	if loadError != nil {
		t.Fatalf("unexpected load error: %v", loadError)
	}
	if configuration.Render.Style != "emoji" {
		t.Fatalf("expected style emoji, got %q", configuration.Render.Style)
	}
	if configuration.Render.MaxDepth == nil || *configuration.Render.MaxDepth != 3 {
		t.Fatalf("expected max depth 3, got %v", configuration.Render.MaxDepth)
	}
	if len(configuration.Render.Ignore) != 2 {
		t.Fatalf("expected deduplicated ignore list of 2, got %v", configuration.Render.Ignore)
	}
	if configuration.Render.ShowSizes == nil || !*configuration.Render.ShowSizes {
		t.Fatal("expected show_sizes to be true")
	}
	if configuration.Render.ShowFiles != nil {
		t.Fatal("expected unset show_files to stay nil")
	}
}

func TestLoadApplicationConfigurationMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: t.TempDir(),
	})
	if loadError != nil {
		t.Fatalf("a missing configuration file must not be an error, got %v", loadError)
	}
	if configuration.Render.Style != "" {
		t.Fatalf("expected empty defaults, got %+v", configuration)
	}
}

func TestLoadApplicationConfigurationExplicitPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workingDirectory := t.TempDir()
	explicitPath := writeConfig(t, workingDirectory, "custom.yaml", `render:
  style: ascii
`)

	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: explicitPath,
	})
	if loadError != nil {
		t.Fatalf("unexpected load error: %v", loadError)
	}
	if configuration.Render.Style != "ascii" {
		t.Fatalf("expected style ascii, got %q", configuration.Render.Style)
	}
}

func TestMergeOverridesOnlySetFields(t *testing.T) {
	baseDepth := 2
	baseTrue := true
	base := config.ApplicationConfiguration{Render: config.RenderConfiguration{
		Style:     "classic",
		MaxDepth:  &baseDepth,
		ShowFiles: &baseTrue,
		Ignore:    []string{".git"},
	}}
	overrideFalse := false
	override := config.ApplicationConfiguration{Render: config.RenderConfiguration{
		Style:     "indent",
		ShowFiles: &overrideFalse,
	}}

	merged := base.Merge(override)
	if merged.Render.Style != "indent" {
		t.Fatalf("expected overridden style indent, got %q", merged.Render.Style)
	}
	if merged.Render.MaxDepth == nil || *merged.Render.MaxDepth != 2 {
		t.Fatalf("expected base max depth to survive, got %v", merged.Render.MaxDepth)
	}
	if merged.Render.ShowFiles == nil || *merged.Render.ShowFiles {
		t.Fatal("expected overridden show_files false")
	}
	if len(merged.Render.Ignore) != 1 || merged.Render.Ignore[0] != ".git" {
		t.Fatalf("expected base ignore list to survive, got %v", merged.Render.Ignore)
	}
}

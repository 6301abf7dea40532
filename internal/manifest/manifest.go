// Package manifest loads pre-materialized path lists from YAML documents, so
// a snapshot produced elsewhere can be rendered without touching the
// filesystem it describes.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tvetkov/treegen/internal/scan"
	"github.com/tvetkov/treegen/internal/types"
)

const (
	readErrorFormat   = "reading manifest %s: %w"
	parseErrorFormat  = "parsing manifest %s: %w"
	emptyErrorFormat  = "manifest %s lists no entries"
	noRootErrorFormat = "manifest %s has no root name and no entry to derive it from"
)

// document is the on-disk manifest shape.
type document struct {
	Root    string          `yaml:"root"`
	Entries []documentEntry `yaml:"entries"`
}

type documentEntry struct {
	Path string `yaml:"path"`
	Size int64  `yaml:"size"`
}

// Load parses a YAML manifest into a snapshot. When the manifest carries no
// explicit root name, the first segment of the first entry is used.
func Load(manifestPath string) (*scan.Snapshot, error) {
	manifestBytes, readError := os.ReadFile(manifestPath)
	if readError != nil {
		return nil, fmt.Errorf(readErrorFormat, manifestPath, readError)
	}

	var parsedDocument document
	if parseError := yaml.Unmarshal(manifestBytes, &parsedDocument); parseError != nil {
		return nil, fmt.Errorf(parseErrorFormat, manifestPath, parseError)
	}
	if len(parsedDocument.Entries) == 0 {
		return nil, fmt.Errorf(emptyErrorFormat, manifestPath)
	}

	entries := make([]types.PathEntry, 0, len(parsedDocument.Entries))
	for _, parsedEntry := range parsedDocument.Entries {
		entries = append(entries, types.PathEntry{
			RelativePath: parsedEntry.Path,
			SizeBytes:    parsedEntry.Size,
		})
	}

	rootName := parsedDocument.Root
	if rootName == "" {
		rootName = scan.RootNameFromEntries(entries)
	}
	if rootName == "" {
		return nil, fmt.Errorf(noRootErrorFormat, manifestPath)
	}
	return &scan.Snapshot{RootName: rootName, Entries: entries}, nil
}

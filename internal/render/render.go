// Package render walks a built hierarchy and emits its textual representation.
package render

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tvetkov/treegen/internal/styles"
	"github.com/tvetkov/treegen/internal/types"
	"github.com/tvetkov/treegen/internal/utils"
)

const (
	// yieldBatchSize is the number of directory entries emitted between
	// cancellation checks.
	yieldBatchSize = 256

	lineBreak           = "\n"
	directorySeparator  = "/"
	sizeSuffixFormat    = " (%s)"
	unknownStyleFormat  = "rendering tree: unknown style %q"
	defaultMaximumDepth = 1 << 30
)

// Render walks the hierarchy in deterministic order and produces the rendered
// string for the configured style. The returned text always ends with a line
// break. The context is checked at fixed batch boundaries while iterating
// directory entries; on cancellation the partial text is discarded.
func Render(ctx context.Context, root *types.TreeNode, statistics types.Statistics, configuration types.Configuration) (string, error) {
	if configuration.Style == types.StyleStructured {
		return renderStructured(ctx, root, configuration)
	}

	decoration, knownStyle := styles.Lookup(configuration.Style)
	if !knownStyle {
		return "", fmt.Errorf(unknownStyleFormat, configuration.Style)
	}

	treeRenderer := &renderer{
		decoration:    decoration,
		configuration: configuration,
		maximumDepth:  effectiveMaximumDepth(configuration.MaxDepth),
		collator:      collate.New(language.Und),
		ctx:           ctx,
	}

	treeRenderer.writeRootLine(statistics)
	if renderError := treeRenderer.renderChildren(root, "", 1); renderError != nil {
		return "", renderError
	}
	return treeRenderer.buffer.String(), nil
}

// effectiveMaximumDepth treats non-positive configured depths as unlimited.
func effectiveMaximumDepth(configuredDepth int) int {
	if configuredDepth <= 0 {
		return defaultMaximumDepth
	}
	return configuredDepth
}

type renderer struct {
	decoration     styles.Decoration
	configuration  types.Configuration
	maximumDepth   int
	collator       *collate.Collator
	ctx            context.Context
	buffer         bytes.Buffer
	processedCount int
}

// sortedEntry pairs a segment name with its node for deterministic iteration.
type sortedEntry struct {
	name string
	node *types.TreeNode
}

// sortedChildren orders a directory's children with directories before files
// and case-aware lexicographic order within each kind. Insertion order never
// influences the result.
func (treeRenderer *renderer) sortedChildren(directory *types.TreeNode) []sortedEntry {
	entries := make([]sortedEntry, 0, len(directory.Children))
	for childName, childNode := range directory.Children {
		entries = append(entries, sortedEntry{name: childName, node: childNode})
	}
	sort.SliceStable(entries, func(firstIndex, secondIndex int) bool {
		firstIsDirectory := entries[firstIndex].node.IsDirectory()
		secondIsDirectory := entries[secondIndex].node.IsDirectory()
		if firstIsDirectory != secondIsDirectory {
			return firstIsDirectory
		}
		return treeRenderer.collator.CompareString(entries[firstIndex].name, entries[secondIndex].name) < 0
	})
	return entries
}

// writeRootLine emits the first output line. The root is depth zero and is
// always emitted regardless of the configured maximum depth.
func (treeRenderer *renderer) writeRootLine(statistics types.Statistics) {
	treeRenderer.buffer.WriteString(treeRenderer.decoration.DirectoryIcon)
	treeRenderer.buffer.WriteString(treeRenderer.configuration.RootName)
	if treeRenderer.configuration.TrailingSlash {
		treeRenderer.buffer.WriteString(directorySeparator)
	}
	if treeRenderer.configuration.ShowSizes {
		fmt.Fprintf(&treeRenderer.buffer, sizeSuffixFormat, utils.FormatByteSize(statistics.TotalBytes))
	}
	treeRenderer.buffer.WriteString(lineBreak)
}

// renderChildren emits the lines for one directory level. Nodes at depth
// greater than or equal to the maximum depth produce no lines and no
// recursion.
func (treeRenderer *renderer) renderChildren(directory *types.TreeNode, ancestorPrefix string, depth int) error {
	if depth >= treeRenderer.maximumDepth {
		return nil
	}

	entries := treeRenderer.sortedChildren(directory)
	visibleEntries := entries
	if !treeRenderer.configuration.ShowFiles {
		visibleEntries = make([]sortedEntry, 0, len(entries))
		for _, entry := range entries {
			if entry.node.IsDirectory() {
				visibleEntries = append(visibleEntries, entry)
			}
		}
	}

	for entryIndex, entry := range visibleEntries {
		treeRenderer.processedCount++
		if treeRenderer.processedCount%yieldBatchSize == 0 {
			if cancellationError := treeRenderer.ctx.Err(); cancellationError != nil {
				return cancellationError
			}
		}

		isLastEntry := entryIndex == len(visibleEntries)-1
		linePrefix, childPrefix := treeRenderer.entryPrefixes(ancestorPrefix, depth, isLastEntry)
		treeRenderer.writeEntryLine(linePrefix, entry)

		if entry.node.IsDirectory() {
			if renderError := treeRenderer.renderChildren(entry.node, childPrefix, depth+1); renderError != nil {
				return renderError
			}
		}
	}
	return nil
}

// entryPrefixes computes the decoration prefix for one line and the prefix
// inherited by the entry's children.
func (treeRenderer *renderer) entryPrefixes(ancestorPrefix string, depth int, isLastEntry bool) (string, string) {
	if treeRenderer.decoration.IndentOnly {
		indent := strings.Repeat(treeRenderer.decoration.IndentUnit, depth)
		return indent, ""
	}
	connector := treeRenderer.decoration.BranchConnector
	childPrefix := ancestorPrefix + treeRenderer.decoration.BranchPadding
	if isLastEntry {
		connector = treeRenderer.decoration.LastConnector
		childPrefix = ancestorPrefix + treeRenderer.decoration.BlankPadding
	}
	return ancestorPrefix + connector, childPrefix
}

// writeEntryLine composes one output line: prefix, optional icon, name,
// optional trailing separator for directories, optional size suffix for files.
func (treeRenderer *renderer) writeEntryLine(linePrefix string, entry sortedEntry) {
	treeRenderer.buffer.WriteString(linePrefix)
	if entry.node.IsDirectory() {
		treeRenderer.buffer.WriteString(treeRenderer.decoration.DirectoryIcon)
		treeRenderer.buffer.WriteString(entry.name)
		if treeRenderer.configuration.TrailingSlash {
			treeRenderer.buffer.WriteString(directorySeparator)
		}
	} else {
		treeRenderer.buffer.WriteString(treeRenderer.decoration.FileIcon)
		treeRenderer.buffer.WriteString(entry.name)
		if treeRenderer.configuration.ShowSizes {
			fmt.Fprintf(&treeRenderer.buffer, sizeSuffixFormat, utils.FormatByteSize(entry.node.SizeBytes))
		}
	}
	treeRenderer.buffer.WriteString(lineBreak)
}

// Package builder folds a flat list of path entries into a nested hierarchy.
package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/tvetkov/treegen/internal/filter"
	"github.com/tvetkov/treegen/internal/types"
)

const (
	// yieldBatchSize is the number of entries processed between cancellation checks.
	yieldBatchSize = 2048

	negativeSizeErrorFormat = "entry %q carries negative size %d"
	buildFailedErrorFormat  = "building tree: %w"
)

// Result pairs the built hierarchy with the statistics accumulated while
// building it. Both always describe the same snapshot.
type Result struct {
	Root       *types.TreeNode
	Statistics types.Statistics
}

// Build folds the provided entries into a directory hierarchy, applying the
// ignore filter before any insertion. Statistics counters grow exactly once
// per newly created node. The context is checked at fixed batch boundaries;
// on cancellation no partial result is returned.
func Build(ctx context.Context, entries []types.PathEntry, ignoredSegments []string) (*Result, error) {
	segmentFilter := filter.NewSegmentFilter(ignoredSegments)
	result := &Result{Root: types.NewDirectoryNode()}

	for entryIndex, entry := range entries {
		if entryIndex%yieldBatchSize == 0 && entryIndex > 0 {
			if cancellationError := ctx.Err(); cancellationError != nil {
				return nil, cancellationError
			}
		}
		if insertionError := insertEntry(result, segmentFilter, entry); insertionError != nil {
			return nil, fmt.Errorf(buildFailedErrorFormat, insertionError)
		}
	}

	if cancellationError := ctx.Err(); cancellationError != nil {
		return nil, cancellationError
	}
	return result, nil
}

// insertEntry walks the hierarchy segment by segment, creating directory nodes
// for all but the last segment and a file leaf for the last one. Entries with
// no segments beyond the root are skipped. When a segment is already present
// with a different kind, the first observed kind wins and the remainder of the
// entry is discarded.
func insertEntry(result *Result, segmentFilter *filter.SegmentFilter, entry types.PathEntry) error {
	pathSegments := splitPathSegments(entry.RelativePath)
	if len(pathSegments) <= 1 {
		return nil
	}
	// The leading segment is the common root name supplied by the enumerator.
	pathSegments = pathSegments[1:]

	if segmentFilter.Excluded(pathSegments) {
		return nil
	}
	if entry.SizeBytes < 0 {
		return fmt.Errorf(negativeSizeErrorFormat, entry.RelativePath, entry.SizeBytes)
	}

	currentNode := result.Root
	for segmentIndex, segment := range pathSegments {
		isLastSegment := segmentIndex == len(pathSegments)-1

		existingChild, childExists := currentNode.Children[segment]
		if childExists {
			if isLastSegment || !existingChild.IsDirectory() {
				return nil
			}
			currentNode = existingChild
			continue
		}

		if isLastSegment {
			currentNode.Children[segment] = types.NewFileNode(entry.SizeBytes)
			result.Statistics.FileCount++
			result.Statistics.TotalBytes += entry.SizeBytes
			return nil
		}

		newDirectory := types.NewDirectoryNode()
		currentNode.Children[segment] = newDirectory
		result.Statistics.DirectoryCount++
		currentNode = newDirectory
	}
	return nil
}

// splitPathSegments breaks a relative path into its non-empty segments.
func splitPathSegments(relativePath string) []string {
	rawSegments := strings.Split(relativePath, types.PathSegmentSeparator)
	segments := rawSegments[:0]
	for _, rawSegment := range rawSegments {
		if rawSegment != "" {
			segments = append(segments, rawSegment)
		}
	}
	return segments
}

// Package scan enumerates a directory into the flat path snapshot the engine
// consumes. It is the only package that touches the filesystem.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tvetkov/treegen/internal/types"
)

const (
	walkErrorFormat    = "scanning %s: %w"
	absPathErrorFormat = "resolving %s: %w"
)

// Snapshot is one static enumeration of a directory: the root's display name
// plus every file beneath it as a (relativePath, size) pair. Relative paths
// start with the root name, matching the shape the builder strips.
type Snapshot struct {
	RootName string
	// RootPath is the absolute scanned directory; empty for snapshots that
	// were loaded from a manifest rather than scanned.
	RootPath string
	Entries  []types.PathEntry
}

// Directory walks rootPath and returns its snapshot. Directories themselves
// produce no entries; the hierarchy is reconstructed from file paths. The
// walk honors context cancellation between entries.
func Directory(ctx context.Context, rootPath string) (*Snapshot, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(absPathErrorFormat, rootPath, absolutePathError)
	}

	rootName := filepath.Base(absoluteRootPath)
	snapshot := &Snapshot{RootName: rootName, RootPath: absoluteRootPath}

	walkError := filepath.WalkDir(absoluteRootPath, func(currentPath string, entry fs.DirEntry, visitError error) error {
		if visitError != nil {
			return visitError
		}
		if cancellationError := ctx.Err(); cancellationError != nil {
			return cancellationError
		}
		if entry.IsDir() {
			return nil
		}
		entryInfo, infoError := entry.Info()
		if infoError != nil {
			return infoError
		}
		relativePath, relativeError := filepath.Rel(absoluteRootPath, currentPath)
		if relativeError != nil {
			return relativeError
		}
		snapshot.Entries = append(snapshot.Entries, types.PathEntry{
			RelativePath: rootName + types.PathSegmentSeparator + filepath.ToSlash(relativePath),
			SizeBytes:    entryInfo.Size(),
		})
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(walkErrorFormat, rootPath, walkError)
	}
	return snapshot, nil
}

// Directories scans several roots concurrently and returns their snapshots in
// input order. The first failing root aborts the remaining scans.
func Directories(ctx context.Context, rootPaths []string) ([]*Snapshot, error) {
	snapshots := make([]*Snapshot, len(rootPaths))
	group, groupContext := errgroup.WithContext(ctx)
	for rootIndex, rootPath := range rootPaths {
		rootIndex, rootPath := rootIndex, rootPath
		group.Go(func() error {
			snapshot, scanError := Directory(groupContext, rootPath)
			if scanError != nil {
				return scanError
			}
			snapshots[rootIndex] = snapshot
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return nil, waitError
	}
	return snapshots, nil
}

// RootNameFromEntries derives a root label from the first entry of a
// pre-materialized path list. It returns an empty string for empty lists.
func RootNameFromEntries(entries []types.PathEntry) string {
	for _, entry := range entries {
		trimmedPath := strings.Trim(entry.RelativePath, types.PathSegmentSeparator)
		if trimmedPath == "" {
			continue
		}
		firstSeparator := strings.Index(trimmedPath, types.PathSegmentSeparator)
		if firstSeparator < 0 {
			return trimmedPath
		}
		return trimmedPath[:firstSeparator]
	}
	return ""
}

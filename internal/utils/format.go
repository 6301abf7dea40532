// Package utils contains general helper functions used across the treegen tool.
package utils

import (
	"fmt"
	"math"
	"strconv"
)

var byteSizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatByteSize converts a byte length into a human-readable string using
// 1024-based unit steps. Values are rounded to two decimals and trailing
// decimal zeros are dropped; zero and negative inputs render as "0 B".
func FormatByteSize(byteCount int64) string {
	if byteCount <= 0 {
		return "0 B"
	}
	value := float64(byteCount)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(byteSizeUnits)-1 {
		value /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return strconv.FormatInt(byteCount, 10) + " " + byteSizeUnits[0]
	}
	roundedValue := math.Round(value*100) / 100
	return strconv.FormatFloat(roundedValue, 'f', -1, 64) + " " + byteSizeUnits[unitIndex]
}

// FormatStatisticsLine renders the aggregate counters as a single summary line.
func FormatStatisticsLine(directoryCount int, fileCount int, totalBytes int64) string {
	directoryLabel := "directories"
	if directoryCount == 1 {
		directoryLabel = "directory"
	}
	fileLabel := "files"
	if fileCount == 1 {
		fileLabel = "file"
	}
	return fmt.Sprintf("%d %s, %d %s, %s", directoryCount, directoryLabel, fileCount, fileLabel, FormatByteSize(totalBytes))
}

// DeduplicateSegments removes duplicate segments from a slice while preserving
// order. The first occurrence of each unique segment is kept.
func DeduplicateSegments(segments []string) []string {
	encounteredSegments := make(map[string]struct{}, len(segments))
	result := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, exists := encounteredSegments[segment]; !exists {
			encounteredSegments[segment] = struct{}{}
			result = append(result, segment)
		}
	}
	return result
}

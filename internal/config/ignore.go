package config

import (
	"bufio"
	"os"
	"strings"
)

const (
	// IgnoreFileName is the per-directory file listing ignored segments.
	IgnoreFileName = ".treeignore"
	// commentPrefix marks an ignore file line as a comment.
	commentPrefix = "#"
)

// LoadIgnoreSegments reads an ignore file and returns one segment per
// non-empty, non-comment line. A missing file yields no segments and no error.
//
// #nosec G304
func LoadIgnoreSegments(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer fileHandle.Close()

	var ignoredSegments []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		ignoredSegments = append(ignoredSegments, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignoredSegments, nil
}

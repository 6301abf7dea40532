// Package filter decides whether a path entry is excluded from a build.
package filter

// SegmentFilter drops any path containing a segment that exactly matches a
// member of the configured ignore set. Matching is case-sensitive; no glob or
// substring semantics are applied.
type SegmentFilter struct {
	ignoredSegments map[string]struct{}
}

// NewSegmentFilter builds a filter from the configured ignore segments.
// Duplicate and empty segments are discarded.
func NewSegmentFilter(segments []string) *SegmentFilter {
	ignoredSegments := make(map[string]struct{}, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		ignoredSegments[segment] = struct{}{}
	}
	return &SegmentFilter{ignoredSegments: ignoredSegments}
}

// Excluded reports whether any of the provided path segments is ignored.
func (segmentFilter *SegmentFilter) Excluded(pathSegments []string) bool {
	if len(segmentFilter.ignoredSegments) == 0 {
		return false
	}
	for _, pathSegment := range pathSegments {
		if _, ignored := segmentFilter.ignoredSegments[pathSegment]; ignored {
			return true
		}
	}
	return false
}

// Size returns the number of distinct ignored segments.
func (segmentFilter *SegmentFilter) Size() int {
	return len(segmentFilter.ignoredSegments)
}

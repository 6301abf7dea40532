// Package types defines the cross-package data structures of the treegen engine.
package types

const (
	StyleClassic    = "classic"
	StyleASCII      = "ascii"
	StyleMinimal    = "minimal"
	StyleIndent     = "indent"
	StyleEmoji      = "emoji"
	StyleStructured = "structured"

	// PathSegmentSeparator separates the segments of a relative path entry.
	PathSegmentSeparator = "/"
)

// NodeKind discriminates the two tree node variants.
type NodeKind int

const (
	// NodeKindDirectory marks a node that carries children.
	NodeKindDirectory NodeKind = iota
	// NodeKindFile marks a leaf node that carries a byte size.
	NodeKindFile
)

// TreeNode is one node of the built hierarchy. Directories own a children
// mapping keyed by segment name; files own a byte size and no children.
type TreeNode struct {
	Kind      NodeKind
	SizeBytes int64
	Children  map[string]*TreeNode
}

// NewDirectoryNode returns an empty directory node.
func NewDirectoryNode() *TreeNode {
	return &TreeNode{Kind: NodeKindDirectory, Children: make(map[string]*TreeNode)}
}

// NewFileNode returns a file leaf carrying the provided size.
func NewFileNode(sizeBytes int64) *TreeNode {
	return &TreeNode{Kind: NodeKindFile, SizeBytes: sizeBytes}
}

// IsDirectory reports whether the node is a directory variant.
func (node *TreeNode) IsDirectory() bool {
	return node != nil && node.Kind == NodeKindDirectory
}

// PathEntry is one externally supplied input pair. The first segment of
// RelativePath is the common root name and is stripped before insertion.
type PathEntry struct {
	RelativePath string
	SizeBytes    int64
}

// Statistics aggregates node counts accumulated during a build. Counts grow
// exactly once per newly created node and are never affected by display-only
// configuration such as ShowFiles or MaxDepth.
type Statistics struct {
	DirectoryCount int
	FileCount      int
	TotalBytes     int64
}

// Configuration is the immutable per-pass option record.
type Configuration struct {
	RootName        string
	Style           string
	MaxDepth        int
	IgnoredSegments []string
	ShowFiles       bool
	ShowSizes       bool
	TrailingSlash   bool
	ShowStats       bool
}

// IsSupportedStyle reports whether the provided style identifier is recognized.
func IsSupportedStyle(style string) bool {
	switch style {
	case StyleClassic, StyleASCII, StyleMinimal, StyleIndent, StyleEmoji, StyleStructured:
		return true
	default:
		return false
	}
}

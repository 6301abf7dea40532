// Package styles maps style identifiers to the glyph sets used by the renderer.
package styles

import (
	"github.com/tvetkov/treegen/internal/types"
)

const (
	classicBranchConnector = "├── "
	classicLastConnector   = "└── "
	classicBranchPadding   = "│   "
	classicBlankPadding    = "    "

	asciiBranchConnector = "|-- "
	asciiLastConnector   = "`-- "
	asciiBranchPadding   = "|   "
	asciiBlankPadding    = "    "

	minimalConnector = "- "
	minimalPadding   = "  "

	indentUnit = "  "

	directoryGlyph = "📁 "
	fileGlyph      = "📄 "
)

// Decoration holds the per-style strings composed into each rendered line.
// IndentOnly styles emit IndentUnit repetitions per depth level and never use
// the connector fields.
type Decoration struct {
	BranchConnector string
	LastConnector   string
	BranchPadding   string
	BlankPadding    string
	DirectoryIcon   string
	FileIcon        string
	IndentOnly      bool
	IndentUnit      string
}

var decorationTable = map[string]Decoration{
	types.StyleClassic: {
		BranchConnector: classicBranchConnector,
		LastConnector:   classicLastConnector,
		BranchPadding:   classicBranchPadding,
		BlankPadding:    classicBlankPadding,
	},
	types.StyleASCII: {
		BranchConnector: asciiBranchConnector,
		LastConnector:   asciiLastConnector,
		BranchPadding:   asciiBranchPadding,
		BlankPadding:    asciiBlankPadding,
	},
	types.StyleMinimal: {
		BranchConnector: minimalConnector,
		LastConnector:   minimalConnector,
		BranchPadding:   minimalPadding,
		BlankPadding:    minimalPadding,
	},
	types.StyleIndent: {
		IndentOnly: true,
		IndentUnit: indentUnit,
	},
	// emoji reuses the classic connector set and adds per-line glyphs.
	types.StyleEmoji: {
		BranchConnector: classicBranchConnector,
		LastConnector:   classicLastConnector,
		BranchPadding:   classicBranchPadding,
		BlankPadding:    classicBlankPadding,
		DirectoryIcon:   directoryGlyph,
		FileIcon:        fileGlyph,
	},
}

// Lookup returns the decoration for a textual style identifier. The structured
// style has no decoration and reports false, as does any unknown identifier.
func Lookup(styleName string) (Decoration, bool) {
	decoration, known := decorationTable[styleName]
	return decoration, known
}

// Names returns every supported style identifier in a fixed presentation order.
func Names() []string {
	return []string{
		types.StyleClassic,
		types.StyleASCII,
		types.StyleMinimal,
		types.StyleIndent,
		types.StyleEmoji,
		types.StyleStructured,
	}
}

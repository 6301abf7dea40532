package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tvetkov/treegen/internal/types"
)

const (
	structuredTypeFile      = "file"
	structuredTypeDirectory = "dir"

	structuredIndentUnit = "  "
)

// renderStructured serializes the hierarchy as a JSON document keyed by the
// root name. Children keys are emitted with directories before files and
// case-aware lexicographic order within each kind, so the document is
// byte-identical across runs for the same input.
func renderStructured(ctx context.Context, root *types.TreeNode, configuration types.Configuration) (string, error) {
	structuredWriter := &structuredWriter{
		collator: collate.New(language.Und),
		ctx:      ctx,
	}

	structuredWriter.buffer.WriteString("{\n")
	structuredWriter.writeIndent(1)
	structuredWriter.writeKey(configuration.RootName)
	if writeError := structuredWriter.writeNode(root, 1); writeError != nil {
		return "", writeError
	}
	structuredWriter.buffer.WriteString("\n}")
	structuredWriter.buffer.WriteString(lineBreak)
	return structuredWriter.buffer.String(), nil
}

type structuredWriter struct {
	collator       *collate.Collator
	ctx            context.Context
	buffer         bytes.Buffer
	processedCount int
}

func (writer *structuredWriter) writeIndent(depth int) {
	writer.buffer.WriteString(strings.Repeat(structuredIndentUnit, depth))
}

// writeKey emits a JSON object key followed by a colon separator.
func (writer *structuredWriter) writeKey(key string) {
	encodedKey, _ := json.Marshal(key)
	writer.buffer.Write(encodedKey)
	writer.buffer.WriteString(": ")
}

// writeNode emits one node object at the given indentation depth.
func (writer *structuredWriter) writeNode(node *types.TreeNode, depth int) error {
	if !node.IsDirectory() {
		fmt.Fprintf(&writer.buffer, `{"type": %q, "size": %d}`, structuredTypeFile, node.SizeBytes)
		return nil
	}

	childNames := writer.sortedChildNames(node)
	if len(childNames) == 0 {
		writer.buffer.WriteString(`{"type": "dir", "children": {}}`)
		return nil
	}

	writer.buffer.WriteString("{\n")
	writer.writeIndent(depth + 1)
	writer.writeKey("type")
	writer.buffer.WriteString(`"` + structuredTypeDirectory + `",` + lineBreak)
	writer.writeIndent(depth + 1)
	writer.writeKey("children")
	writer.buffer.WriteString("{\n")

	for childIndex, childName := range childNames {
		writer.processedCount++
		if writer.processedCount%yieldBatchSize == 0 {
			if cancellationError := writer.ctx.Err(); cancellationError != nil {
				return cancellationError
			}
		}

		writer.writeIndent(depth + 2)
		writer.writeKey(childName)
		if writeError := writer.writeNode(node.Children[childName], depth+2); writeError != nil {
			return writeError
		}
		if childIndex < len(childNames)-1 {
			writer.buffer.WriteString(",")
		}
		writer.buffer.WriteString(lineBreak)
	}

	writer.writeIndent(depth + 1)
	writer.buffer.WriteString("}\n")
	writer.writeIndent(depth)
	writer.buffer.WriteString("}")
	return nil
}

// sortedChildNames orders children with directories before files and
// case-aware lexicographic order within each kind.
func (writer *structuredWriter) sortedChildNames(directory *types.TreeNode) []string {
	childNames := make([]string, 0, len(directory.Children))
	for childName := range directory.Children {
		childNames = append(childNames, childName)
	}
	sort.SliceStable(childNames, func(firstIndex, secondIndex int) bool {
		firstIsDirectory := directory.Children[childNames[firstIndex]].IsDirectory()
		secondIsDirectory := directory.Children[childNames[secondIndex]].IsDirectory()
		if firstIsDirectory != secondIsDirectory {
			return firstIsDirectory
		}
		return writer.collator.CompareString(childNames[firstIndex], childNames[secondIndex]) < 0
	})
	return childNames
}

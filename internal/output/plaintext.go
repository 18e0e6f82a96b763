package output

import (
	"strings"

	"github.com/temirov/snapsource/internal/types"
)

const (
	plaintextStructureHeader = "Project Structure:\n\n"
	plaintextContentsHeader  = "File Contents:\n\n"
	plaintextFilePrefix      = "File: "
)

// FormatPlaintext renders records as labelled blocks separated by blank lines.
func FormatPlaintext(tree string, records []types.FileRecord) string {
	var builder strings.Builder
	if tree != "" {
		builder.WriteString(plaintextStructureHeader)
		builder.WriteString(tree)
		builder.WriteString("\n\n")
	}
	builder.WriteString(plaintextContentsHeader)
	for _, record := range records {
		builder.WriteString(plaintextFilePrefix)
		builder.WriteString(record.RelativePath)
		builder.WriteString("\n\n")
		builder.WriteString(record.Content)
		builder.WriteString("\n\n")
	}
	return builder.String()
}

// FormatPlaintextStructure renders the tree under its header with no file contents.
func FormatPlaintextStructure(tree string) string {
	return plaintextStructureHeader + tree + "\n"
}

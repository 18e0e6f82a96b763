package output

import (
	"path"
	"strings"

	"github.com/temirov/snapsource/internal/types"
)

const (
	markdownStructureHeader = "# Project Structure\n\n"
	markdownContentsHeader  = "# File Contents\n\n"
	markdownFileHeader      = "## "
	markdownFence           = "```"
)

// FormatMarkdown renders each record as a level-two heading and a fenced code block
// tagged with the file extension.
func FormatMarkdown(tree string, records []types.FileRecord) string {
	var builder strings.Builder
	if tree != "" {
		builder.WriteString(markdownStructureHeader)
		builder.WriteString(markdownFence + "\n")
		builder.WriteString(tree)
		builder.WriteString(markdownFence + "\n\n")
	}
	builder.WriteString(markdownContentsHeader)
	for _, record := range records {
		builder.WriteString(markdownFileHeader)
		builder.WriteString(record.RelativePath)
		builder.WriteString("\n\n")
		builder.WriteString(markdownFence)
		builder.WriteString(languageTag(record.RelativePath))
		builder.WriteString("\n")
		builder.WriteString(record.Content)
		builder.WriteString("\n" + markdownFence + "\n\n")
	}
	return builder.String()
}

// FormatMarkdownStructure renders the tree alone inside an unlabelled fenced block.
func FormatMarkdownStructure(tree string) string {
	return markdownStructureHeader + markdownFence + "\n" + tree + markdownFence + "\n"
}

// languageTag returns the text after the last dot of the base name. Names without a
// dot, or whose only dot is the leading one, have no tag.
func languageTag(relativePath string) string {
	baseName := path.Base(relativePath)
	dotIndex := strings.LastIndex(baseName, ".")
	if dotIndex <= 0 {
		return ""
	}
	return baseName[dotIndex+1:]
}

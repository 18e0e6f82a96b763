package output

import (
	"strings"

	"github.com/temirov/snapsource/internal/types"
)

const (
	xmlDeclaration         = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"
	xmlRootOpen            = "<snapsource>\n"
	xmlRootClose           = "</snapsource>"
	xmlStructureOpen       = "  <project_structure>\n"
	xmlStructureClose      = "\n  </project_structure>\n"
	xmlStructureLineIndent = "    "
	xmlContentsOpen        = "  <file_contents>\n"
	xmlContentsClose       = "  </file_contents>\n"
	xmlFileOpenPrefix      = "    <file path=\""
	xmlFileOpenSuffix      = "\">\n"
	xmlFileClose           = "    </file>\n"
	xmlCDATAOpen           = "      <![CDATA["
	xmlCDATAClose          = "]]>\n"
	cdataTerminator        = "]]>"
	cdataTerminatorSplit   = "]]]]><![CDATA[>"
)

var xmlAttributeEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
	"\u00a0", "&#160;",
	"\u2028", "&#8232;",
	"\u2029", "&#8233;",
)

// FormatXML renders a single document with an optional project_structure element and
// one CDATA-wrapped file element per record.
func FormatXML(tree string, records []types.FileRecord) string {
	var builder strings.Builder
	builder.WriteString(xmlDeclaration)
	builder.WriteString(xmlRootOpen)
	if tree != "" {
		builder.WriteString(xmlStructureOpen)
		builder.WriteString(indentedTreeLines(tree))
		builder.WriteString(xmlStructureClose)
		builder.WriteString("\n")
	}
	builder.WriteString(xmlContentsOpen)
	for _, record := range records {
		builder.WriteString(xmlFileOpenPrefix)
		builder.WriteString(escapeXML(record.RelativePath))
		builder.WriteString(xmlFileOpenSuffix)
		builder.WriteString(xmlCDATAOpen)
		builder.WriteString(escapeCDATA(record.Content))
		builder.WriteString(xmlCDATAClose)
		builder.WriteString(xmlFileClose)
	}
	builder.WriteString(xmlContentsClose)
	builder.WriteString(xmlRootClose)
	return builder.String()
}

// FormatXMLStructure renders a document holding only the escaped, indented tree.
func FormatXMLStructure(tree string) string {
	return xmlDeclaration + xmlRootOpen + xmlStructureOpen + indentedTreeLines(tree) + xmlStructureClose + xmlRootClose
}

// indentedTreeLines escapes and indents every line of the tree, including the empty
// line after a trailing newline.
func indentedTreeLines(tree string) string {
	lines := strings.Split(tree, "\n")
	for index, line := range lines {
		lines[index] = xmlStructureLineIndent + escapeXML(line)
	}
	return strings.Join(lines, "\n")
}

func escapeXML(text string) string {
	return xmlAttributeEscaper.Replace(text)
}

// escapeCDATA splits every terminator so the section cannot close early.
func escapeCDATA(text string) string {
	return strings.ReplaceAll(text, cdataTerminator, cdataTerminatorSplit)
}

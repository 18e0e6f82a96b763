// Package output renders a project tree and collected file records into the
// supported text formats. Every renderer is a pure function of its inputs.
package output

import (
	"errors"
	"fmt"

	"github.com/temirov/snapsource/internal/types"
)

// ErrUnsupportedFormat is returned for output kinds other than plaintext, markdown and xml.
var ErrUnsupportedFormat = errors.New("unsupported output format")

const unsupportedFormatMessageFormat = "%w: %q"

// Format renders the tree followed by every record. An empty tree omits the structure section.
func Format(kind string, tree string, records []types.FileRecord) (string, error) {
	switch kind {
	case types.FormatPlaintext:
		return FormatPlaintext(tree, records), nil
	case types.FormatMarkdown:
		return FormatMarkdown(tree, records), nil
	case types.FormatXML:
		return FormatXML(tree, records), nil
	default:
		return "", fmt.Errorf(unsupportedFormatMessageFormat, ErrUnsupportedFormat, kind)
	}
}

// FormatStructure renders only the project tree.
func FormatStructure(kind string, tree string) (string, error) {
	switch kind {
	case types.FormatPlaintext:
		return FormatPlaintextStructure(tree), nil
	case types.FormatMarkdown:
		return FormatMarkdownStructure(tree), nil
	case types.FormatXML:
		return FormatXMLStructure(tree), nil
	default:
		return "", fmt.Errorf(unsupportedFormatMessageFormat, ErrUnsupportedFormat, kind)
	}
}

// Package transform rewrites file text before it is serialized.
//
// Comment removal is a lexical pattern match, not a parser: "//" and "/* */"
// sequences inside string literals (URLs, regular expressions) are removed as well.
package transform

import (
	"regexp"
	"strings"
)

const lineSeparator = "\n"

var commentExpression = regexp.MustCompile(`//.*|/\*[\s\S]*?\*/`)

// Options selects which rewrites Apply performs.
type Options struct {
	RemoveComments     bool
	CompressWhitespace bool
}

// Enabled reports whether any rewrite is requested.
func (options Options) Enabled() bool {
	return options.RemoveComments || options.CompressWhitespace
}

// Apply runs comment removal and then whitespace compression, each only when requested.
func Apply(text string, options Options) string {
	if options.RemoveComments {
		text = RemoveComments(text)
	}
	if options.CompressWhitespace {
		text = CompressWhitespace(text)
	}
	return text
}

// RemoveComments strips line comments to end of line and block comments, including
// block comments spanning several lines.
func RemoveComments(text string) string {
	return commentExpression.ReplaceAllString(text, "")
}

// CompressWhitespace trims every line and drops the lines left empty.
func CompressWhitespace(text string) string {
	lines := strings.Split(text, lineSeparator)
	kept := lines[:0]
	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "" {
			continue
		}
		kept = append(kept, trimmedLine)
	}
	return strings.Join(kept, lineSeparator)
}

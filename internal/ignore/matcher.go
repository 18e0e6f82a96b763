// Package ignore answers whether a root-relative path is excluded from traversal.
//
// Rules are gitignore lines evaluated by go-git's gitignore matcher: the last
// matching rule wins, a leading "!" re-includes a path, "?" and "*" match within a
// single segment, and a pattern with a slash before its last character is anchored
// at the traversal root.
package ignore

import (
	"path"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// DotFilePattern hides every file or directory whose name starts with a dot.
const DotFilePattern = ".*"

const (
	pathSegmentSeparator = "/"
	commentPrefix        = "#"
)

// Matcher is an immutable compiled rule set.
type Matcher struct {
	patterns []string
	compiled gitignore.Matcher
}

// New compiles explicit exclusion patterns, the dot-file rule and the lines of a
// root .gitignore file, in that order. Blank lines and comments are skipped.
func New(explicitPatterns []string, gitignoreLines []string) *Matcher {
	patterns := make([]string, 0, len(explicitPatterns)+len(gitignoreLines)+1)
	patterns = append(patterns, explicitPatterns...)
	patterns = append(patterns, DotFilePattern)
	patterns = append(patterns, gitignoreLines...)

	parsedPatterns := make([]gitignore.Pattern, 0, len(patterns))
	for _, patternLine := range patterns {
		trimmedLine := strings.TrimSpace(patternLine)
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		parsedPatterns = append(parsedPatterns, gitignore.ParsePattern(trimmedLine, nil))
	}
	return &Matcher{
		patterns: patterns,
		compiled: gitignore.NewMatcher(parsedPatterns),
	}
}

// Patterns returns a copy of the rule lines in evaluation order.
func (matcher *Matcher) Patterns() []string {
	if matcher == nil {
		return nil
	}
	return append([]string(nil), matcher.patterns...)
}

// Matches reports whether relativePath, taken as a file, is ignored. The traversal
// root itself is never ignored.
func (matcher *Matcher) Matches(relativePath string) bool {
	return matcher.MatchesEntry(relativePath, false)
}

// MatchesEntry reports whether a directory entry is ignored. Directory-only rules
// such as "build/" hide a directory entry and everything below it.
func (matcher *Matcher) MatchesEntry(relativePath string, isDirectory bool) bool {
	if matcher == nil || matcher.compiled == nil {
		return false
	}
	segments := splitSegments(relativePath)
	if len(segments) == 0 {
		return false
	}
	return matcher.compiled.Match(segments, isDirectory)
}

func splitSegments(relativePath string) []string {
	normalizedPath := strings.ReplaceAll(relativePath, "\\", pathSegmentSeparator)
	normalizedPath = path.Clean(normalizedPath)
	normalizedPath = strings.TrimPrefix(normalizedPath, pathSegmentSeparator)
	if normalizedPath == "." || normalizedPath == "" {
		return nil
	}
	return strings.Split(normalizedPath, pathSegmentSeparator)
}

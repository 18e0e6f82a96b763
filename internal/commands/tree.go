// Package commands contains the traversal logic behind the copy and structure commands.
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/snapsource/internal/utils"
	"go.uber.org/zap"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	emptyDirectoryAnnotation  = "(empty directory)"
	allFilesIgnoredAnnotation = "(all files ignored)"
)

const (
	errorAbsolutePathFormat     = "getting absolute path for %s: %w"
	errorStatRootFormat         = "stat tree root %s: %w"
	errorRootNotDirectoryFormat = "tree root %s is not a directory"
)

// Render returns the tree of rootDirectoryPath's descendants. Depth 0 holds the root's
// direct children and directories deeper than MaxDepth are omitted. Unreadable entries
// and directories become inline annotations instead of failures.
func (treeBuilder *TreeBuilder) Render(ctx context.Context, rootDirectoryPath string) (string, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	rootInfo, rootStatError := os.Stat(absoluteRootPath)
	if rootStatError != nil {
		return "", fmt.Errorf(errorStatRootFormat, absoluteRootPath, rootStatError)
	}
	if !rootInfo.IsDir() {
		return "", fmt.Errorf(errorRootNotDirectoryFormat, absoluteRootPath)
	}

	var builder strings.Builder
	renderError := treeBuilder.renderDirectory(ctx, &builder, absoluteRootPath, absoluteRootPath, 0, "", []os.FileInfo{rootInfo})
	if renderError != nil {
		return "", renderError
	}
	return builder.String(), nil
}

func (treeBuilder *TreeBuilder) renderDirectory(
	ctx context.Context,
	builder *strings.Builder,
	directoryPath string,
	rootPath string,
	depth int,
	prefix string,
	ancestors []os.FileInfo,
) error {
	if depth > treeBuilder.MaxDepth {
		return nil
	}
	if contextError := ctx.Err(); contextError != nil {
		return contextError
	}

	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		treeBuilder.logger().Warn("unable to read directory", zap.String("path", directoryPath), zap.Error(readDirectoryError))
		builder.WriteString(prefix + fmt.Sprintf(directoryErrorFormat, directoryFailureReason(readDirectoryError)) + "\n")
		return nil
	}
	if len(directoryEntries) == 0 {
		builder.WriteString(prefix + emptyDirectoryAnnotation + "\n")
		return nil
	}

	visibleEntries := visibleDirectoryEntries(directoryEntries, directoryPath, rootPath, treeBuilder.Matcher.MatchesEntry)
	if len(visibleEntries) == 0 {
		builder.WriteString(prefix + allFilesIgnoredAnnotation + "\n")
		return nil
	}

	for index, directoryEntry := range visibleEntries {
		connector, childPrefix := treeConnectors(prefix, index == len(visibleEntries)-1)
		entryName := directoryEntry.Name()
		entryPath := filepath.Join(directoryPath, entryName)

		entryInfo, statError := os.Stat(entryPath)
		if statError != nil {
			treeBuilder.logger().Debug("unable to stat entry", zap.String("path", entryPath), zap.Error(statError))
			builder.WriteString(prefix + connector + entryName + " " + entryFailureAnnotation(statError) + "\n")
			continue
		}
		if entryInfo.IsDir() && isAncestor(entryInfo, ancestors) {
			treeBuilder.logger().Warn("skipping directory cycle", zap.String("path", entryPath))
			builder.WriteString(prefix + connector + entryName + " " + recursiveLinkAnnotation + "\n")
			continue
		}

		builder.WriteString(prefix + connector + entryName + "\n")
		if entryInfo.IsDir() {
			childError := treeBuilder.renderDirectory(ctx, builder, entryPath, rootPath, depth+1, childPrefix, withAncestor(ancestors, entryInfo))
			if childError != nil {
				return childError
			}
		}
	}
	return nil
}

// visibleDirectoryEntries keeps listing order and drops entries whose root-relative path is ignored.
func visibleDirectoryEntries(
	directoryEntries []os.DirEntry,
	directoryPath string,
	rootPath string,
	isIgnored func(relativePath string, isDirectory bool) bool,
) []os.DirEntry {
	visibleEntries := make([]os.DirEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		relativePath, relativeError := utils.RelativeSlashPath(filepath.Join(directoryPath, directoryEntry.Name()), rootPath)
		if relativeError == nil && isIgnored(relativePath, directoryEntry.IsDir()) {
			continue
		}
		visibleEntries = append(visibleEntries, directoryEntry)
	}
	return visibleEntries
}

// treeConnectors returns the branch glyph for an entry and the prefix for its children.
func treeConnectors(prefix string, isLast bool) (string, string) {
	if isLast {
		return treeLastConnector, prefix + treeLastPadding
	}
	return treeBranchConnector, prefix + treeBranchPadding
}

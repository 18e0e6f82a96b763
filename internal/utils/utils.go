// Package utils contains general helper functions used across snapsource.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// GitIgnoreFileName is the name of the Git ignore file read at the traversal root.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// ConfigFileName is the local configuration file name.
	ConfigFileName = ".snapsource.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
	GlobalConfigDirectoryName = ".snapsource"
	// GlobalConfigFileName is the configuration file name inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
)

const pathSegmentSeparator = "/"

// DeduplicatePatterns removes duplicate and blank patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if _, exists := encounteredPatterns[trimmedPattern]; !exists {
			encounteredPatterns[trimmedPattern] = struct{}{}
			result = append(result, trimmedPattern)
		}
	}
	return result
}

// RelativeSlashPath returns fullPath relative to root using forward slashes.
// Returns "." when both resolve to the same location.
func RelativeSlashPath(fullPath, root string) (string, error) {
	relativePath, relativeError := filepath.Rel(filepath.Clean(root), filepath.Clean(fullPath))
	if relativeError != nil {
		return "", fmt.Errorf("relative path of %s against %s: %w", fullPath, root, relativeError)
	}
	return filepath.ToSlash(relativePath), nil
}

// IsWithinRoot reports whether fullPath is root itself or a descendant of root.
func IsWithinRoot(fullPath, root string) bool {
	relativePath, relativeError := RelativeSlashPath(fullPath, root)
	if relativeError != nil {
		return false
	}
	return relativePath != ".." && !strings.HasPrefix(relativePath, ".."+pathSegmentSeparator)
}

// FindRepositoryRoot searches upward from the provided starting path until it
// locates a directory containing the .git folder and returns that directory.
func FindRepositoryRoot(startPath string) (string, error) {
	absoluteStartPath, errorAbsolute := filepath.Abs(startPath)
	if errorAbsolute != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", startPath, errorAbsolute)
	}

	currentDirectory := absoluteStartPath
	if startInfo, statError := os.Stat(currentDirectory); statError == nil && !startInfo.IsDir() {
		currentDirectory = filepath.Dir(currentDirectory)
	}
	for {
		gitPath := filepath.Join(currentDirectory, GitDirectoryName)
		fileInformation, errorStat := os.Stat(gitPath)
		if errorStat == nil && fileInformation.IsDir() {
			return currentDirectory, nil
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		currentDirectory = parentDirectory
	}

	return "", fmt.Errorf(".git directory not found in or above %s", absoluteStartPath)
}

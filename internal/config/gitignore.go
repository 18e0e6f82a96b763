package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/snapsource/internal/utils"
)

const gitIgnoreCommentPrefix = "#"

// LoadGitIgnoreLines returns the patterns of the .gitignore file directly inside
// rootDirectory. Blank lines and comments are dropped. A missing file yields no lines.
//
// #nosec G304
func LoadGitIgnoreLines(rootDirectory string) ([]string, error) {
	gitIgnorePath := filepath.Join(rootDirectory, utils.GitIgnoreFileName)
	fileHandle, openFileError := os.Open(gitIgnorePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", gitIgnorePath, openFileError)
	}
	defer fileHandle.Close()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, gitIgnoreCommentPrefix) {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf("read %s: %w", gitIgnorePath, scanError)
	}
	return patterns, nil
}

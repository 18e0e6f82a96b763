package cli

import (
	"fmt"
	"path/filepath"

	"github.com/temirov/snapsource/internal/pipeline"
	"github.com/temirov/snapsource/internal/types"
	"github.com/temirov/snapsource/internal/utils"
)

const noCommonRootMessageFormat = "%w: no git repository or working directory contains %s"

// resolveWorkspaceRoot picks the traversal root: the explicit root when given, otherwise
// the git repository enclosing the first path, otherwise the working directory. A
// candidate is used only when it contains every path.
func resolveWorkspaceRoot(explicitRoot string, paths []types.ValidatedPath, workingDirectory string) (string, error) {
	if explicitRoot != "" {
		if filepath.IsAbs(explicitRoot) {
			return filepath.Clean(explicitRoot), nil
		}
		return filepath.Join(workingDirectory, explicitRoot), nil
	}
	if len(paths) == 0 {
		return "", pipeline.ErrNoInputPaths
	}

	var candidates []string
	if repositoryRoot, repositoryError := utils.FindRepositoryRoot(paths[0].AbsolutePath); repositoryError == nil {
		candidates = append(candidates, repositoryRoot)
	}
	if workingDirectory != "" {
		candidates = append(candidates, workingDirectory)
	}
	for _, candidate := range candidates {
		if containsAll(candidate, paths) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf(noCommonRootMessageFormat, pipeline.ErrNoWorkspaceRoot, paths[0].AbsolutePath)
}

func containsAll(root string, paths []types.ValidatedPath) bool {
	for _, validatedPath := range paths {
		if !utils.IsWithinRoot(validatedPath.AbsolutePath, root) {
			return false
		}
	}
	return true
}

package utils

import (
	"os/exec"
	"runtime/debug"
	"strings"
)

const unknownVersion = "unknown"

// GetApplicationVersion attempts to determine the application version using various methods.
// It checks Go build info first, then falls back to git describe in the enclosing repository.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}

	repositoryRoot, repositoryError := FindRepositoryRoot(".")
	if repositoryError != nil {
		return unknownVersion
	}
	describeArguments := [][]string{
		{"describe", "--tags", "--exact-match"},
		{"describe", "--tags", "--long", "--dirty"},
	}
	for _, arguments := range describeArguments {
		// #nosec G204
		gitCommand := exec.Command("git", arguments...)
		gitCommand.Dir = repositoryRoot
		gitOutput, gitError := gitCommand.Output()
		if gitError == nil && len(gitOutput) > 0 {
			return strings.TrimSpace(string(gitOutput))
		}
	}
	return unknownVersion
}

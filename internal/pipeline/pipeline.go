// Package pipeline runs one snapshot: ignore rules, tree, collection and formatting.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/snapsource/internal/commands"
	"github.com/temirov/snapsource/internal/config"
	"github.com/temirov/snapsource/internal/ignore"
	"github.com/temirov/snapsource/internal/output"
	"github.com/temirov/snapsource/internal/transform"
	"github.com/temirov/snapsource/internal/types"
	"github.com/temirov/snapsource/internal/utils"
)

var (
	// ErrNoInputPaths is returned when a content run receives no paths.
	ErrNoInputPaths = errors.New("no input paths supplied")
	// ErrNoWorkspaceRoot is returned when the root is missing, is not a directory,
	// or does not contain every input path.
	ErrNoWorkspaceRoot = errors.New("no workspace root resolvable for the given paths")
	// ErrOperationCancelled is returned when the context ends before the output is complete.
	ErrOperationCancelled = errors.New("operation cancelled")
)

const (
	progressReadingIgnoreRules = "Reading ignore rules..."
	progressBuildingTree       = "Building project tree..."
	progressCollectingFiles    = "Collecting file contents..."
	progressFormattingOutput   = "Formatting output..."

	rootMessageFormat           = "%w: %s"
	pathOutsideRootFormat       = "%w: %s is outside %s"
	cancelledMessageFormat      = "%w: %w"
	treeFailureMessageFormat    = "render project tree: %w"
	collectFailureMessageFormat = "collect files: %w"
	validationMessageFormat     = "validate configuration: %w"
	formatFailureMessageFormat  = "format output: %w"
)

// Request describes one invocation.
type Request struct {
	Configuration types.Configuration
	// Root is the traversal root. Ignore rules and record paths are relative to it.
	Root  string
	Paths []string
	// StructureOnly renders the tree of Root and skips file collection.
	StructureOnly bool
}

// Result is the formatted output together with the pieces it was built from.
type Result struct {
	Output  string
	Tree    string
	Records []types.FileRecord
	Format  string
}

// Runner executes requests. The zero value is ready to use.
type Runner struct {
	Logger *zap.Logger
	// Progress, when set, receives a short message as each stage starts.
	Progress func(message string)
}

// Run validates the request and produces the formatted output. Per-entry problems
// are embedded in the output; only invalid requests and cancellation fail the run.
func (runner *Runner) Run(ctx context.Context, request Request) (Result, error) {
	if !request.StructureOnly && len(request.Paths) == 0 {
		return Result{}, ErrNoInputPaths
	}
	configuration := request.Configuration
	if validationError := config.Validate(configuration); validationError != nil {
		return Result{}, fmt.Errorf(validationMessageFormat, validationError)
	}
	rootPath, rootError := resolveRoot(request.Root, request.Paths)
	if rootError != nil {
		return Result{}, rootError
	}
	logger := runner.logger()

	runner.report(progressReadingIgnoreRules)
	var gitIgnoreLines []string
	if configuration.IgnoreGitIgnore {
		loadedLines, loadError := config.LoadGitIgnoreLines(rootPath)
		if loadError != nil {
			logger.Warn("ignoring unreadable .gitignore", zap.String("root", rootPath), zap.Error(loadError))
		}
		gitIgnoreLines = loadedLines
	}
	matcher := ignore.New(configuration.ExcludePatterns, gitIgnoreLines)
	logger.Debug("ignore rules", zap.Strings("patterns", matcher.Patterns()))

	var tree string
	if configuration.IncludeProjectTree || request.StructureOnly {
		runner.report(progressBuildingTree)
		treeBuilder := &commands.TreeBuilder{Matcher: matcher, MaxDepth: configuration.MaxDepth, Logger: logger}
		renderedTree, treeError := treeBuilder.Render(ctx, rootPath)
		if treeError != nil {
			return Result{}, mapFailure(treeError, treeFailureMessageFormat)
		}
		tree = renderedTree
	}

	if request.StructureOnly {
		runner.report(progressFormattingOutput)
		formatted, formatError := output.FormatStructure(configuration.OutputFormat, tree)
		if formatError != nil {
			return Result{}, fmt.Errorf(formatFailureMessageFormat, formatError)
		}
		return Result{Output: formatted, Tree: tree, Format: configuration.OutputFormat}, nil
	}

	runner.report(progressCollectingFiles)
	collector := &commands.FileCollector{
		Root:        rootPath,
		Matcher:     matcher,
		MaxFileSize: configuration.MaxFileSize,
		Transform: transform.Options{
			RemoveComments:     configuration.RemoveComments,
			CompressWhitespace: configuration.CompressCode,
		},
		Logger: logger,
	}
	records, collectError := collector.Collect(ctx, request.Paths)
	if collectError != nil {
		return Result{}, mapFailure(collectError, collectFailureMessageFormat)
	}

	runner.report(progressFormattingOutput)
	formatted, formatError := output.Format(configuration.OutputFormat, tree, records)
	if formatError != nil {
		return Result{}, fmt.Errorf(formatFailureMessageFormat, formatError)
	}
	if contextError := ctx.Err(); contextError != nil {
		return Result{}, fmt.Errorf(cancelledMessageFormat, ErrOperationCancelled, contextError)
	}
	return Result{Output: formatted, Tree: tree, Records: records, Format: configuration.OutputFormat}, nil
}

// resolveRoot returns the absolute root after checking that it is a directory holding every path.
func resolveRoot(root string, paths []string) (string, error) {
	if root == "" {
		return "", ErrNoWorkspaceRoot
	}
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return "", fmt.Errorf(rootMessageFormat, ErrNoWorkspaceRoot, absoluteError)
	}
	rootInfo, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return "", fmt.Errorf(rootMessageFormat, ErrNoWorkspaceRoot, statError)
	}
	if !rootInfo.IsDir() {
		return "", fmt.Errorf(rootMessageFormat, ErrNoWorkspaceRoot, absoluteRoot+" is not a directory")
	}
	for _, inputPath := range paths {
		absolutePath, pathError := filepath.Abs(inputPath)
		if pathError != nil || !utils.IsWithinRoot(absolutePath, absoluteRoot) {
			return "", fmt.Errorf(pathOutsideRootFormat, ErrNoWorkspaceRoot, inputPath, absoluteRoot)
		}
	}
	return absoluteRoot, nil
}

func mapFailure(failure error, messageFormat string) error {
	if errors.Is(failure, context.Canceled) || errors.Is(failure, context.DeadlineExceeded) {
		return fmt.Errorf(cancelledMessageFormat, ErrOperationCancelled, failure)
	}
	return fmt.Errorf(messageFormat, failure)
}

func (runner *Runner) report(message string) {
	if runner.Progress != nil {
		runner.Progress(message)
	}
}

func (runner *Runner) logger() *zap.Logger {
	if runner.Logger == nil {
		return zap.NewNop()
	}
	return runner.Logger
}

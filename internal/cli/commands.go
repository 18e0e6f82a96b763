package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/snapsource/internal/config"
	"github.com/temirov/snapsource/internal/pipeline"
	"github.com/temirov/snapsource/internal/types"
)

const (
	copyUse                   = types.CommandCopy + " [paths...]"
	structureUse              = types.CommandStructure + " [directory]"
	initUse                   = "init"
	copyAlias                 = "c"
	structureAlias            = "s"
	copyShortDescription      = "snapshot file contents with an optional project tree (" + copyAlias + ")"
	structureShortDescription = "snapshot the project tree only (" + structureAlias + ")"
	initShortDescription      = "write a default configuration file"

	// copyLongDescription provides detailed help for the copy command.
	copyLongDescription = `Collect the contents of files and directories into one snapshot.
Paths are reported relative to the traversal root, which is --root, the enclosing git
repository, or the working directory. Use --copy to also place the snapshot on the clipboard.`
	// copyUsageExample demonstrates copy command usage.
	copyUsageExample = `  # Snapshot a package as XML
  snapsource copy --format xml ./internal/output

  # Strip comments, compress whitespace, and copy to the clipboard
  snapsource copy --remove-comments --compress --copy src package.json`

	// structureLongDescription provides detailed help for the structure command.
	structureLongDescription = `Render only the project tree of a directory, defaulting to the working directory.`
	// structureUsageExample demonstrates structure command usage.
	structureUsageExample = `  # Show three levels of the tree as markdown
  snapsource structure --max-depth 2 .`

	initGlobalFlagName        = "global"
	initForceFlagName         = "force"
	initGlobalFlagDescription = "write ~/.snapsource/config.yaml instead of ./.snapsource.yaml"
	initForceFlagDescription  = "overwrite an existing configuration file"
	initCompletedMessage      = "configuration written"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNotDirectoryFormat reports a structure target that is not a directory.
	errorNotDirectoryFormat = "'%s' is not a directory"

	defaultPath = "."
)

// createCopyCommand returns the copy subcommand.
func createCopyCommand(applicationDependencies dependencies, global *globalOptions) *cobra.Command {
	var options snapshotOptions
	var rootDirectory string

	copyCommand := &cobra.Command{
		Use:     copyUse,
		Aliases: []string{copyAlias},
		Short:   copyShortDescription,
		Long:    copyLongDescription,
		Example: copyUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, workingDirectoryError := applicationDependencies.workingDirectory()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			validatedPaths, pathValidationError := resolveAndValidatePaths(arguments, workingDirectory)
			if pathValidationError != nil {
				return pathValidationError
			}
			if len(validatedPaths) == 0 {
				return pipeline.ErrNoInputPaths
			}
			configuration, configurationError := resolveConfiguration(command, applicationDependencies, global, &options, workingDirectory)
			if configurationError != nil {
				return configurationError
			}
			root, rootError := resolveWorkspaceRoot(rootDirectory, validatedPaths, workingDirectory)
			if rootError != nil {
				return rootError
			}

			paths := make([]string, 0, len(validatedPaths))
			for _, validatedPath := range validatedPaths {
				paths = append(paths, validatedPath.AbsolutePath)
			}
			return runSnapshot(command, applicationDependencies, global, pipeline.Request{
				Configuration: configuration,
				Root:          root,
				Paths:         paths,
			})
		},
	}

	addOutputFlags(copyCommand, &options)
	addContentFlags(copyCommand, &options)
	copyCommand.Flags().StringVar(&rootDirectory, rootFlagName, "", rootFlagDescription)
	return copyCommand
}

// createStructureCommand returns the structure subcommand.
func createStructureCommand(applicationDependencies dependencies, global *globalOptions) *cobra.Command {
	var options snapshotOptions

	structureCommand := &cobra.Command{
		Use:     structureUse,
		Aliases: []string{structureAlias},
		Short:   structureShortDescription,
		Long:    structureLongDescription,
		Example: structureUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			workingDirectory, workingDirectoryError := applicationDependencies.workingDirectory()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			validatedPaths, pathValidationError := resolveAndValidatePaths(arguments, workingDirectory)
			if pathValidationError != nil {
				return pathValidationError
			}
			if !validatedPaths[0].IsDir {
				return fmt.Errorf(errorNotDirectoryFormat, arguments[0])
			}
			configuration, configurationError := resolveConfiguration(command, applicationDependencies, global, &options, workingDirectory)
			if configurationError != nil {
				return configurationError
			}
			return runSnapshot(command, applicationDependencies, global, pipeline.Request{
				Configuration: configuration,
				Root:          validatedPaths[0].AbsolutePath,
				StructureOnly: true,
			})
		},
	}

	addOutputFlags(structureCommand, &options)
	return structureCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(applicationDependencies dependencies) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, workingDirectoryError := applicationDependencies.workingDirectory()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: workingDirectory,
				HomeDirectory:    applicationDependencies.homeDirectory,
			})
			if initError != nil {
				return initError
			}
			_, printError := fmt.Fprintln(command.OutOrStdout(), destinationPath)
			return printError
		},
	}
	registerToggleFlag(initCommand.Flags(), &global, initGlobalFlagName, false, initGlobalFlagDescription)
	registerToggleFlag(initCommand.Flags(), &force, initForceFlagName, false, initForceFlagDescription)
	return initCommand
}

// runSnapshot executes the pipeline and hands the result to delivery.
func runSnapshot(command *cobra.Command, applicationDependencies dependencies, global *globalOptions, request pipeline.Request) error {
	logger, loggerError := applicationDependencies.newLogger(global.verbose)
	if loggerError != nil {
		return loggerError
	}
	defer func() { _ = logger.Sync() }()

	runner := &pipeline.Runner{Logger: logger}
	if applicationDependencies.isTerminal() {
		runner.Progress = func(message string) { logger.Info(message) }
	}
	logger.Debug("snapshot request",
		zap.String("root", request.Root),
		zap.Strings("paths", request.Paths),
		zap.String("format", request.Configuration.OutputFormat),
		zap.Bool("structure_only", request.StructureOnly),
	)

	result, runError := runner.Run(command.Context(), request)
	if runError != nil {
		return runError
	}
	return deliverSnapshot(command.Context(), command.OutOrStdout(), logger, applicationDependencies, request, result)
}

// resolveAndValidatePaths converts input paths to absolute form and validates their existence.
func resolveAndValidatePaths(inputs []string, workingDirectory string) ([]types.ValidatedPath, error) {
	seen := make(map[string]struct{})
	var result []types.ValidatedPath
	for _, inputPath := range inputs {
		absolutePath := inputPath
		if !filepath.IsAbs(absolutePath) {
			absolutePath = filepath.Join(workingDirectory, inputPath)
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, ok := seen[cleanPath]; ok {
			continue
		}
		info, fileStatusError := os.Stat(cleanPath)
		if fileStatusError != nil {
			if os.IsNotExist(fileStatusError) {
				return nil, fmt.Errorf(errorPathMissingFormat, inputPath)
			}
			return nil, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
		}
		seen[cleanPath] = struct{}{}
		result = append(result, types.ValidatedPath{AbsolutePath: cleanPath, IsDir: info.IsDir()})
	}
	return result, nil
}

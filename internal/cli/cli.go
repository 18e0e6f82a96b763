// Package cli provides the command line interface.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/temirov/snapsource/internal/services/clipboard"
	"github.com/temirov/snapsource/internal/tokenizer"
	"github.com/temirov/snapsource/internal/utils"
)

const (
	configFlagName       = "config"
	verboseFlagName      = "verbose"
	versionTemplate      = "snapsource version: {{.Version}}\n"
	rootUse              = "snapsource"
	rootShortDescription = "snapsource command line interface"
	rootLongDescription  = `snapsource turns files and directories into a single prompt-ready snapshot.
It renders a project tree and file contents as plaintext, markdown, or xml, honoring
.gitignore rules, exclusion patterns, size limits, and binary detection.
Settings come from ~/.snapsource/config.yaml and ./.snapsource.yaml; flags override both.`
	configFlagDescription  = "path to a configuration file used instead of ./.snapsource.yaml"
	verboseFlagDescription = "log debug details to stderr"
)

// dependencies holds the collaborators commands use, replaceable in tests.
type dependencies struct {
	copier           clipboard.Copier
	newCounter       func(model string) (tokenizer.Counter, string, error)
	catalog          tokenizer.ModelCatalog
	newLogger        func(verbose bool) (*zap.Logger, error)
	workingDirectory func() (string, error)
	homeDirectory    string
	isTerminal       func() bool
}

func defaultDependencies() dependencies {
	return dependencies{
		copier:           clipboard.NewService(),
		newCounter:       tokenizer.NewCounter,
		catalog:          tokenizer.DefaultModelCatalog(),
		newLogger:        utils.NewApplicationLogger,
		workingDirectory: os.Getwd,
		isTerminal:       func() bool { return term.IsTerminal(int(os.Stderr.Fd())) },
	}
}

// globalOptions stores flags shared by every subcommand.
type globalOptions struct {
	configPath string
	verbose    bool
}

// Execute runs the snapsource application.
func Execute(ctx context.Context) error {
	rootCommand := createRootCommand(defaultDependencies())
	rootCommand.SetArgs(normalizeToggleArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func createRootCommand(applicationDependencies dependencies) *cobra.Command {
	var options globalOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Version:       utils.GetApplicationVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.PersistentFlags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerToggleFlag(rootCommand.PersistentFlags(), &options.verbose, verboseFlagName, false, verboseFlagDescription)

	rootCommand.AddCommand(
		createCopyCommand(applicationDependencies, &options),
		createStructureCommand(applicationDependencies, &options),
		createInitCommand(applicationDependencies),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/snapsource/internal/config"
	"github.com/temirov/snapsource/internal/types"
	"github.com/temirov/snapsource/internal/utils"
)

const (
	formatFlagName         = "format"
	maxDepthFlagName       = "max-depth"
	exclusionFlagName      = "exclude"
	exclusionFlagShorthand = "e"
	noGitignoreFlagName    = "no-gitignore"
	maxFileSizeFlagName    = "max-file-size"
	compressFlagName       = "compress"
	removeCommentsFlagName = "remove-comments"
	treeFlagName           = "tree"
	tokensFlagName         = "tokens"
	modelFlagName          = "model"
	maxTokensFlagName      = "max-tokens"
	tokenWarningFlagName   = "token-warning"
	copyFlagName           = "copy"
	rootFlagName           = "root"

	formatFlagDescription         = "output format: plaintext, markdown, or xml"
	maxDepthFlagDescription       = "deepest project tree level to render, 0 shows only the root's children"
	exclusionFlagDescription      = "exclude path pattern (gitignore syntax, repeatable)"
	noGitignoreFlagDescription    = "do not apply the root .gitignore"
	maxFileSizeFlagDescription    = "largest file in bytes whose content is included"
	compressFlagDescription       = "trim lines and drop blank lines from file contents"
	removeCommentsFlagDescription = "strip // and /* */ comments from file contents"
	treeFlagDescription           = "include the project tree before file contents"
	tokensFlagDescription         = "count tokens and estimate cost of the output"
	modelFlagDescription          = "model used for token counting and cost estimates"
	maxTokensFlagDescription      = "warn when the output exceeds this many tokens"
	tokenWarningFlagDescription   = "warn when the token count exceeds the limit"
	copyFlagDescription           = "copy the output to the system clipboard"
	rootFlagDescription           = "traversal root; defaults to the enclosing git repository"
)

// snapshotOptions stores flag values. A value is applied only when its flag was set.
type snapshotOptions struct {
	format            string
	maxDepth          int
	exclusionPatterns []string
	disableGitignore  bool
	maxFileSize       int64
	compress          bool
	removeComments    bool
	includeTree       bool
	countTokens       bool
	model             string
	maxTokens         int
	tokenWarning      bool
	copyToClipboard   bool
}

// addOutputFlags registers the flags shared by the copy and structure commands.
func addOutputFlags(command *cobra.Command, options *snapshotOptions) {
	defaults := types.DefaultConfiguration()
	flagSet := command.Flags()
	flagSet.StringVar(&options.format, formatFlagName, defaults.OutputFormat, formatFlagDescription)
	flagSet.IntVar(&options.maxDepth, maxDepthFlagName, defaults.MaxDepth, maxDepthFlagDescription)
	flagSet.StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagShorthand, nil, exclusionFlagDescription)
	registerToggleFlag(flagSet, &options.disableGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	registerToggleFlag(flagSet, &options.copyToClipboard, copyFlagName, false, copyFlagDescription)
}

// addContentFlags registers the flags that only affect file contents.
func addContentFlags(command *cobra.Command, options *snapshotOptions) {
	defaults := types.DefaultConfiguration()
	flagSet := command.Flags()
	flagSet.Int64Var(&options.maxFileSize, maxFileSizeFlagName, defaults.MaxFileSize, maxFileSizeFlagDescription)
	registerToggleFlag(flagSet, &options.compress, compressFlagName, defaults.CompressCode, compressFlagDescription)
	registerToggleFlag(flagSet, &options.removeComments, removeCommentsFlagName, defaults.RemoveComments, removeCommentsFlagDescription)
	registerToggleFlag(flagSet, &options.includeTree, treeFlagName, defaults.IncludeProjectTree, treeFlagDescription)
	registerToggleFlag(flagSet, &options.countTokens, tokensFlagName, defaults.EnableTokenCounting, tokensFlagDescription)
	flagSet.StringVar(&options.model, modelFlagName, defaults.LLMModel, modelFlagDescription)
	flagSet.IntVar(&options.maxTokens, maxTokensFlagName, 0, maxTokensFlagDescription)
	registerToggleFlag(flagSet, &options.tokenWarning, tokenWarningFlagName, defaults.EnableTokenWarning, tokenWarningFlagDescription)
}

// resolveConfiguration loads the configuration files and overlays explicitly set flags.
func resolveConfiguration(command *cobra.Command, applicationDependencies dependencies, global *globalOptions, options *snapshotOptions, workingDirectory string) (types.Configuration, error) {
	fileConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: global.configPath,
		HomeDirectory:    applicationDependencies.homeDirectory,
	})
	if loadError != nil {
		return types.Configuration{}, loadError
	}
	configuration, resolveError := fileConfiguration.Resolve()
	if resolveError != nil {
		return types.Configuration{}, resolveError
	}

	flagSet := command.Flags()
	if flagSet.Changed(formatFlagName) {
		configuration.OutputFormat = strings.ToLower(strings.TrimSpace(options.format))
	}
	if flagSet.Changed(maxDepthFlagName) {
		configuration.MaxDepth = options.maxDepth
	}
	if flagSet.Changed(exclusionFlagName) {
		configuration.ExcludePatterns = utils.DeduplicatePatterns(append(append([]string{}, configuration.ExcludePatterns...), options.exclusionPatterns...))
	}
	if flagSet.Changed(noGitignoreFlagName) {
		configuration.IgnoreGitIgnore = !options.disableGitignore
	}
	if flagSet.Changed(copyFlagName) {
		configuration.Clipboard = options.copyToClipboard
	}
	if flagSet.Changed(maxFileSizeFlagName) {
		configuration.MaxFileSize = options.maxFileSize
	}
	if flagSet.Changed(compressFlagName) {
		configuration.CompressCode = options.compress
	}
	if flagSet.Changed(removeCommentsFlagName) {
		configuration.RemoveComments = options.removeComments
	}
	if flagSet.Changed(treeFlagName) {
		configuration.IncludeProjectTree = options.includeTree
	}
	if flagSet.Changed(tokensFlagName) {
		configuration.EnableTokenCounting = options.countTokens
	}
	if flagSet.Changed(modelFlagName) {
		configuration.LLMModel = strings.TrimSpace(options.model)
	}
	if flagSet.Changed(maxTokensFlagName) {
		maxTokens := options.maxTokens
		configuration.MaxTokens = &maxTokens
	}
	if flagSet.Changed(tokenWarningFlagName) {
		configuration.EnableTokenWarning = options.tokenWarning
	}

	if validationError := config.Validate(configuration); validationError != nil {
		return types.Configuration{}, validationError
	}
	return configuration, nil
}

// Package config loads snapsource configuration files and the traversal root's ignore file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/snapsource/internal/types"
	"github.com/temirov/snapsource/internal/utils"
)

// ErrInvalidConfiguration marks a configuration value outside its allowed range.
var ErrInvalidConfiguration = errors.New("invalid configuration")

const (
	invalidFormatMessageFormat      = "%w: output_format %q must be one of plaintext, markdown, xml"
	invalidMaxDepthMessageFormat    = "%w: max_depth must be zero or greater, got %d"
	invalidMaxFileSizeMessageFormat = "%w: max_file_size must be greater than zero, got %d"
	invalidMaxTokensMessageFormat   = "%w: max_tokens must be greater than zero when set, got %d"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	// HomeDirectory overrides the user home directory used for the global file.
	HomeDirectory string
}

// FileConfiguration mirrors the YAML configuration file. Nil and empty fields are unset
// so that a local file only overrides the keys it names.
type FileConfiguration struct {
	IgnoreGitIgnore     *bool    `mapstructure:"ignore_gitignore"`
	MaxDepth            *int     `mapstructure:"max_depth"`
	ExcludePatterns     []string `mapstructure:"exclude_patterns"`
	OutputFormat        string   `mapstructure:"output_format"`
	MaxFileSize         *int64   `mapstructure:"max_file_size"`
	CompressCode        *bool    `mapstructure:"compress_code"`
	RemoveComments      *bool    `mapstructure:"remove_comments"`
	IncludeProjectTree  *bool    `mapstructure:"include_project_tree"`
	LLMModel            string   `mapstructure:"llm_model"`
	MaxTokens           *int     `mapstructure:"max_tokens"`
	EnableTokenWarning  *bool    `mapstructure:"enable_token_warning"`
	EnableTokenCounting *bool    `mapstructure:"enable_token_counting"`
	Clipboard           *bool    `mapstructure:"clipboard"`
}

// LoadApplicationConfiguration loads the global file and then the local or explicit file on top of it.
func LoadApplicationConfiguration(options LoadOptions) (FileConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return FileConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged FileConfiguration

	homeDirectory := options.HomeDirectory
	if homeDirectory == "" {
		if resolvedHome, err := os.UserHomeDir(); err == nil {
			homeDirectory = resolvedHome
		}
	}
	if homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return FileConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
	if loadErr != nil {
		return FileConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)
	merged.ExcludePatterns = utils.DeduplicatePatterns(merged.ExcludePatterns)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

// loadConfigurationFromPath reads one YAML file. A missing file is empty unless it was
// requested explicitly.
func loadConfigurationFromPath(path string, required bool) (FileConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return FileConfiguration{}, nil
		}
		return FileConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return FileConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return FileConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config FileConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return FileConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config FileConfiguration) Merge(override FileConfiguration) FileConfiguration {
	result := config
	if override.IgnoreGitIgnore != nil {
		result.IgnoreGitIgnore = cloneBool(override.IgnoreGitIgnore)
	}
	if override.MaxDepth != nil {
		result.MaxDepth = cloneInt(override.MaxDepth)
	}
	if len(override.ExcludePatterns) > 0 {
		result.ExcludePatterns = append([]string{}, override.ExcludePatterns...)
	}
	if override.OutputFormat != "" {
		result.OutputFormat = override.OutputFormat
	}
	if override.MaxFileSize != nil {
		maxFileSize := *override.MaxFileSize
		result.MaxFileSize = &maxFileSize
	}
	if override.CompressCode != nil {
		result.CompressCode = cloneBool(override.CompressCode)
	}
	if override.RemoveComments != nil {
		result.RemoveComments = cloneBool(override.RemoveComments)
	}
	if override.IncludeProjectTree != nil {
		result.IncludeProjectTree = cloneBool(override.IncludeProjectTree)
	}
	if override.LLMModel != "" {
		result.LLMModel = override.LLMModel
	}
	if override.MaxTokens != nil {
		result.MaxTokens = cloneInt(override.MaxTokens)
	}
	if override.EnableTokenWarning != nil {
		result.EnableTokenWarning = cloneBool(override.EnableTokenWarning)
	}
	if override.EnableTokenCounting != nil {
		result.EnableTokenCounting = cloneBool(override.EnableTokenCounting)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

// Resolve fills unset fields from types.DefaultConfiguration and validates the result.
func (config FileConfiguration) Resolve() (types.Configuration, error) {
	resolved := types.DefaultConfiguration()
	if config.IgnoreGitIgnore != nil {
		resolved.IgnoreGitIgnore = *config.IgnoreGitIgnore
	}
	if config.MaxDepth != nil {
		resolved.MaxDepth = *config.MaxDepth
	}
	if len(config.ExcludePatterns) > 0 {
		resolved.ExcludePatterns = append([]string{}, config.ExcludePatterns...)
	}
	if config.OutputFormat != "" {
		resolved.OutputFormat = config.OutputFormat
	}
	if config.MaxFileSize != nil {
		resolved.MaxFileSize = *config.MaxFileSize
	}
	if config.CompressCode != nil {
		resolved.CompressCode = *config.CompressCode
	}
	if config.RemoveComments != nil {
		resolved.RemoveComments = *config.RemoveComments
	}
	if config.IncludeProjectTree != nil {
		resolved.IncludeProjectTree = *config.IncludeProjectTree
	}
	if config.LLMModel != "" {
		resolved.LLMModel = config.LLMModel
	}
	resolved.MaxTokens = cloneInt(config.MaxTokens)
	if config.EnableTokenWarning != nil {
		resolved.EnableTokenWarning = *config.EnableTokenWarning
	}
	if config.EnableTokenCounting != nil {
		resolved.EnableTokenCounting = *config.EnableTokenCounting
	}
	if config.Clipboard != nil {
		resolved.Clipboard = *config.Clipboard
	}
	if validationError := Validate(resolved); validationError != nil {
		return types.Configuration{}, validationError
	}
	return resolved, nil
}

// Validate checks the ranges of a resolved configuration.
func Validate(configuration types.Configuration) error {
	if !types.IsSupportedFormat(configuration.OutputFormat) {
		return fmt.Errorf(invalidFormatMessageFormat, ErrInvalidConfiguration, configuration.OutputFormat)
	}
	if configuration.MaxDepth < 0 {
		return fmt.Errorf(invalidMaxDepthMessageFormat, ErrInvalidConfiguration, configuration.MaxDepth)
	}
	if configuration.MaxFileSize <= 0 {
		return fmt.Errorf(invalidMaxFileSizeMessageFormat, ErrInvalidConfiguration, configuration.MaxFileSize)
	}
	if configuration.MaxTokens != nil && *configuration.MaxTokens <= 0 {
		return fmt.Errorf(invalidMaxTokensMessageFormat, ErrInvalidConfiguration, *configuration.MaxTokens)
	}
	return nil
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

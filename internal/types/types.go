// Package types defines every cross‑package data structure used by the snapsource CLI.
package types

const (
	CommandCopy      = "copy"
	CommandStructure = "structure"

	FormatPlaintext = "plaintext"
	FormatMarkdown  = "markdown"
	FormatXML       = "xml"

	// DefaultMaxFileSize is the largest file, in bytes, whose content is included.
	DefaultMaxFileSize int64 = 1024 * 1024
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// FileRecord is one collected file. Content holds the (possibly transformed) text or
// a placeholder explaining why the text was left out.
type FileRecord struct {
	RelativePath string
	Content      string
}

// Configuration is the immutable option set read once per invocation.
type Configuration struct {
	IgnoreGitIgnore     bool
	MaxDepth            int
	ExcludePatterns     []string
	OutputFormat        string
	MaxFileSize         int64
	CompressCode        bool
	RemoveComments      bool
	IncludeProjectTree  bool
	LLMModel            string
	MaxTokens           *int
	EnableTokenWarning  bool
	EnableTokenCounting bool
	Clipboard           bool
}

// DefaultConfiguration returns the configuration used when no file or flag overrides a value.
func DefaultConfiguration() Configuration {
	return Configuration{
		IgnoreGitIgnore:     true,
		MaxDepth:            5,
		ExcludePatterns:     []string{"node_modules", "*.log"},
		OutputFormat:        FormatMarkdown,
		MaxFileSize:         DefaultMaxFileSize,
		IncludeProjectTree:  true,
		LLMModel:            "gpt-4",
		EnableTokenWarning:  true,
		EnableTokenCounting: false,
	}
}

// IsSupportedFormat reports whether the provided output format is recognized.
func IsSupportedFormat(format string) bool {
	switch format {
	case FormatPlaintext, FormatMarkdown, FormatXML:
		return true
	default:
		return false
	}
}

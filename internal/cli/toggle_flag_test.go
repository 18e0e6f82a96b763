package cli

import (
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newSnapshotFlagCommand(options *snapshotOptions) *cobra.Command {
	root := &cobra.Command{Use: "snapsource"}
	copyCommand := &cobra.Command{Use: "copy", RunE: func(*cobra.Command, []string) error { return nil }}
	addOutputFlags(copyCommand, options)
	addContentFlags(copyCommand, options)
	root.AddCommand(copyCommand)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root
}

func TestSnapshotTogglesParseValues(t *testing.T) {
	testCases := []struct {
		name       string
		arguments  []string
		read       func(options snapshotOptions) bool
		expected   bool
		positional []string
	}{
		{
			name:       "compress_defaults_off",
			arguments:  []string{"copy", "."},
			read:       func(options snapshotOptions) bool { return options.compress },
			expected:   false,
			positional: []string{"."},
		},
		{
			name:       "compress_equals_no",
			arguments:  []string{"copy", "--compress=no", "."},
			read:       func(options snapshotOptions) bool { return options.compress },
			expected:   false,
			positional: []string{"."},
		},
		{
			name:       "no_gitignore_equals_yes",
			arguments:  []string{"copy", "--no-gitignore=yes", "."},
			read:       func(options snapshotOptions) bool { return options.disableGitignore },
			expected:   true,
			positional: []string{"."},
		},
		{
			name:       "tree_separate_off",
			arguments:  []string{"copy", "--tree", "off", "src"},
			read:       func(options snapshotOptions) bool { return options.includeTree },
			expected:   false,
			positional: []string{"src"},
		},
		{
			name:       "bare_copy_keeps_following_path",
			arguments:  []string{"copy", "--copy", "src"},
			read:       func(options snapshotOptions) bool { return options.copyToClipboard },
			expected:   true,
			positional: []string{"src"},
		},
		{
			name:       "copy_followed_by_other_flag",
			arguments:  []string{"copy", "--copy", "--tokens", "1", "main.go"},
			read:       func(options snapshotOptions) bool { return options.copyToClipboard && options.countTokens },
			expected:   true,
			positional: []string{"main.go"},
		},
		{
			name:       "literal_is_case_insensitive",
			arguments:  []string{"copy", "--remove-comments", "ON", "."},
			read:       func(options snapshotOptions) bool { return options.removeComments },
			expected:   true,
			positional: []string{"."},
		},
		{
			name:       "separator_stops_rewriting",
			arguments:  []string{"copy", "--", "--tree", "off"},
			read:       func(options snapshotOptions) bool { return options.includeTree },
			expected:   true,
			positional: []string{"--tree", "off"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var options snapshotOptions
			var positional []string
			root := newSnapshotFlagCommand(&options)
			copyCommand, _, findError := root.Find([]string{"copy"})
			if findError != nil {
				t.Fatalf("copy command not registered: %v", findError)
			}
			copyCommand.RunE = func(_ *cobra.Command, arguments []string) error {
				positional = arguments
				return nil
			}
			root.SetArgs(normalizeToggleArguments(root, testCase.arguments))
			if executeError := root.Execute(); executeError != nil {
				t.Fatalf("unexpected error: %v", executeError)
			}
			if actual := testCase.read(options); actual != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, actual)
			}
			if strings.Join(positional, "|") != strings.Join(testCase.positional, "|") {
				t.Fatalf("expected positional %v, got %v", testCase.positional, positional)
			}
		})
	}
}

func TestSnapshotToggleRejectsUnknownLiteral(t *testing.T) {
	var options snapshotOptions
	root := newSnapshotFlagCommand(&options)
	root.SetArgs(normalizeToggleArguments(root, []string{"copy", "--compress=maybe", "."}))
	executeError := root.Execute()
	if executeError == nil {
		t.Fatalf("expected an error for --compress=maybe")
	}
	if !strings.Contains(executeError.Error(), "--compress") || !strings.Contains(executeError.Error(), "yes, no") {
		t.Fatalf("error should name the flag and accepted values, got %v", executeError)
	}
}

func TestSnapshotToggleShortLiteralsAreNotAccepted(t *testing.T) {
	var options snapshotOptions
	root := newSnapshotFlagCommand(&options)
	root.SetArgs(normalizeToggleArguments(root, []string{"copy", "--tree=n", "."}))
	if executeError := root.Execute(); executeError == nil {
		t.Fatalf("expected single-letter literal to be rejected")
	}
}

package transform_test

import (
	"testing"

	"github.com/temirov/snapsource/internal/transform"
)

func TestRemoveComments(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "line comment", input: "a := 1 // note\nb := 2", expected: "a := 1 \nb := 2"},
		{name: "block comment", input: "x /* hidden */ y", expected: "x  y"},
		{name: "multi line block", input: "start\n/* one\ntwo */\nend", expected: "start\n\nend"},
		{name: "non greedy blocks", input: "/* a */keep/* b */", expected: "keep"},
		{name: "no comments untouched", input: "plain text\nsecond line", expected: "plain text\nsecond line"},
		{name: "comment tokens in strings are removed too", input: `url := "http://example.com"`, expected: `url := "http:`},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := transform.RemoveComments(testCase.input)
			if actual != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}

func TestRemoveCommentsIdempotentWithoutComments(t *testing.T) {
	input := "func main() {\n\treturn\n}\n"
	once := transform.RemoveComments(input)
	if once != input {
		t.Fatalf("expected unchanged content, got %q", once)
	}
	if transform.RemoveComments(once) != once {
		t.Fatalf("expected idempotent result")
	}
}

func TestCompressWhitespace(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "trims and drops blank lines", input: "  a\n\n\t b \n   \nc  ", expected: "a\nb\nc"},
		{name: "carriage returns trimmed", input: "a\r\nb\r\n", expected: "a\nb"},
		{name: "empty input", input: "", expected: ""},
		{name: "inner spacing kept", input: "  x  =  1  ", expected: "x  =  1"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := transform.CompressWhitespace(testCase.input)
			if actual != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
			if again := transform.CompressWhitespace(actual); again != actual {
				t.Fatalf("compression is not idempotent: %q then %q", actual, again)
			}
		})
	}
}

func TestApplyOrder(t *testing.T) {
	input := "func a() {\n    // comment only line\n    return 1 /* tail */\n}\n"
	options := transform.Options{RemoveComments: true, CompressWhitespace: true}
	actual := transform.Apply(input, options)
	expected := "func a() {\nreturn 1\n}"
	if actual != expected {
		t.Fatalf("expected %q, got %q", expected, actual)
	}
	if !options.Enabled() {
		t.Fatalf("expected options to report enabled")
	}
	if (transform.Options{}).Enabled() {
		t.Fatalf("expected zero options to report disabled")
	}
	if transform.Apply(input, transform.Options{}) != input {
		t.Fatalf("expected zero options to leave text untouched")
	}
}

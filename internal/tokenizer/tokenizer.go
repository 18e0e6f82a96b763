// Package tokenizer estimates token counts and input cost for formatted output.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	defaultModel        = "gpt-4"
	defaultEncodingName = "cl100k_base"

	fallbackTokenizerMessageFormat = "initialize fallback tokenizer: %w"
)

// NewCounter returns a Counter for model along with the name of the encoding in use.
// Models without a published tiktoken encoding, including Anthropic models, are
// approximated with cl100k_base.
func NewCounter(model string) (Counter, string, error) {
	normalizedModel := strings.ToLower(strings.TrimSpace(model))
	if normalizedModel == "" {
		normalizedModel = defaultModel
	}

	if isOpenAIModel(normalizedModel) {
		encoding, encodingError := tiktoken.EncodingForModel(normalizedModel)
		if encodingError == nil && encoding != nil {
			return tiktokenCounter{encoding: encoding, name: normalizedModel}, normalizedModel, nil
		}
	}

	fallback, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf(fallbackTokenizerMessageFormat, fallbackError)
	}
	return tiktokenCounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
}

func isOpenAIModel(model string) bool {
	prefixes := []string{
		"gpt-",
		"o1",
		"text-embedding",
		"davinci",
		"babbage",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/snapsource/internal/pipeline"
	"github.com/temirov/snapsource/internal/tokenizer"
)

const (
	clipboardSummaryPrefix    = "Copied to clipboard"
	outputSummaryPrefix       = "Rendered"
	structureSummaryFormat    = "%s: project structure, %s format"
	contentSummaryFormat      = "%s: %s format, %d files"
	tokenSummaryFormat        = ", %d tokens, $%.4f est. cost"
	tokenWarningMessageFormat = "Token count (%d) exceeds the set limit (%d)."
)

// deliverSnapshot writes the output, then copies it to the clipboard and estimates its
// tokens concurrently. Estimation problems are logged; a clipboard failure is returned
// after the output has already been written.
func deliverSnapshot(ctx context.Context, writer io.Writer, logger *zap.Logger, applicationDependencies dependencies, request pipeline.Request, result pipeline.Result) error {
	if _, writeError := io.WriteString(writer, result.Output); writeError != nil {
		return writeError
	}
	logger.Debug("output written", zap.Int("bytes", len(result.Output)))

	configuration := request.Configuration
	countTokens := configuration.EnableTokenCounting && !request.StructureOnly
	var estimate tokenizer.Estimate
	var estimated bool

	group, _ := errgroup.WithContext(ctx)
	if configuration.Clipboard {
		group.Go(func() error {
			return applicationDependencies.copier.Copy(result.Output)
		})
	}
	if countTokens {
		group.Go(func() error {
			counter, encodingName, counterError := applicationDependencies.newCounter(configuration.LLMModel)
			if counterError != nil {
				logger.Warn("token counting unavailable", zap.String("model", configuration.LLMModel), zap.Error(counterError))
				return nil
			}
			logger.Debug("token encoding", zap.String("encoding", encodingName))
			estimator := tokenizer.Estimator{Counter: counter, Catalog: applicationDependencies.catalog}
			computed, estimateError := estimator.Estimate(result.Output, configuration.LLMModel, configuration.MaxTokens)
			if estimateError != nil {
				logger.Warn("token estimate failed", zap.Error(estimateError))
				return nil
			}
			estimate = computed
			estimated = true
			return nil
		})
	}
	deliveryError := group.Wait()

	prefix := outputSummaryPrefix
	if configuration.Clipboard && deliveryError == nil {
		prefix = clipboardSummaryPrefix
	}
	logger.Info(summaryMessage(prefix, request, result, estimate, estimated))
	if estimated && configuration.EnableTokenWarning && estimate.ExceedsLimit() {
		logger.Warn(fmt.Sprintf(tokenWarningMessageFormat, estimate.Tokens, estimate.TokenLimit))
	}
	return deliveryError
}

func summaryMessage(prefix string, request pipeline.Request, result pipeline.Result, estimate tokenizer.Estimate, estimated bool) string {
	if request.StructureOnly {
		return fmt.Sprintf(structureSummaryFormat, prefix, result.Format)
	}
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(contentSummaryFormat, prefix, result.Format, len(result.Records)))
	if estimated {
		builder.WriteString(fmt.Sprintf(tokenSummaryFormat, estimate.Tokens, estimate.CostUSD))
	}
	return builder.String()
}

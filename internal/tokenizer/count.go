package tokenizer

import (
	"errors"
	"fmt"
)

const tokensPerMillion = 1_000_000

var errNilCounter = errors.New("nil tokenizer counter")

// Estimate is the result of counting a formatted output for one model.
type Estimate struct {
	Model      string
	Tokens     int
	CostUSD    float64
	TokenLimit int
}

// ExceedsLimit reports whether a known limit is smaller than the token count.
func (estimate Estimate) ExceedsLimit() bool {
	return estimate.TokenLimit > 0 && estimate.Tokens > estimate.TokenLimit
}

// Estimator counts tokens with Counter and prices them with Catalog.
type Estimator struct {
	Counter Counter
	Catalog ModelCatalog
}

// Estimate counts text and prices it for model. Unknown models are counted at no cost.
func (estimator Estimator) Estimate(text string, model string, maxTokens *int) (Estimate, error) {
	if estimator.Counter == nil {
		return Estimate{}, errNilCounter
	}
	tokens, countError := estimator.Counter.CountString(text)
	if countError != nil {
		return Estimate{}, fmt.Errorf("count tokens with %s: %w", estimator.Counter.Name(), countError)
	}
	result := Estimate{
		Model:      model,
		Tokens:     tokens,
		TokenLimit: estimator.Catalog.TokenLimit(model, maxTokens),
	}
	if profile, found := estimator.Catalog.Lookup(model); found {
		result.CostUSD = float64(tokens) * profile.InputCostPerMillion / tokensPerMillion
	}
	return result, nil
}

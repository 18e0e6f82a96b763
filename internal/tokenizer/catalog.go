package tokenizer

// ModelProfile describes the context window and input price of a model.
type ModelProfile struct {
	ContextWindow int
	// InputCostPerMillion is the price in USD of one million input tokens.
	InputCostPerMillion float64
}

// ModelCatalog is a read-only lookup of model profiles keyed by model identifier.
type ModelCatalog struct {
	profiles map[string]ModelProfile
}

// NewModelCatalog copies profiles into a catalog that later changes to the map cannot affect.
func NewModelCatalog(profiles map[string]ModelProfile) ModelCatalog {
	copied := make(map[string]ModelProfile, len(profiles))
	for model, profile := range profiles {
		copied[model] = profile
	}
	return ModelCatalog{profiles: copied}
}

// DefaultModelCatalog lists the models offered by the llm_model setting.
func DefaultModelCatalog() ModelCatalog {
	return NewModelCatalog(map[string]ModelProfile{
		"gpt-4":                      {ContextWindow: 8192, InputCostPerMillion: 30},
		"gpt-4o":                     {ContextWindow: 128000, InputCostPerMillion: 2.5},
		"gpt-4o-mini":                {ContextWindow: 128000, InputCostPerMillion: 0.15},
		"claude-3-5-sonnet-20240620": {ContextWindow: 200000, InputCostPerMillion: 3},
		"claude-3-opus-20240229":     {ContextWindow: 200000, InputCostPerMillion: 15},
	})
}

// Lookup returns the profile registered for model.
func (catalog ModelCatalog) Lookup(model string) (ModelProfile, bool) {
	profile, found := catalog.profiles[model]
	return profile, found
}

// TokenLimit returns maxTokens when set, otherwise the model's context window.
// Zero means no limit is known.
func (catalog ModelCatalog) TokenLimit(model string, maxTokens *int) int {
	if maxTokens != nil {
		return *maxTokens
	}
	profile, found := catalog.Lookup(model)
	if !found {
		return 0
	}
	return profile.ContextWindow
}

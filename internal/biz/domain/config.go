package domain

// Provider identifies an external text-generation API
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// AgentConfig is the per-invocation agent configuration snapshot.
// It is read once at the start of an event and never mutated.
type AgentConfig struct {
	AutoReplyEnabled bool
	TriggerKeyword   string
	Provider         Provider
}

// EffectiveProvider returns the configured provider, defaulting to OpenAI
func (c *AgentConfig) EffectiveProvider() Provider {
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic:
		return c.Provider
	default:
		return ProviderOpenAI
	}
}

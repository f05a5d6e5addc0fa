package repo

import "context"

// ProviderRepo is the AI provider interface.
// Each implementation owns its request/response shape translation so the
// pipeline stays provider-agnostic.
type ProviderRepo interface {
	// Generate produces reply text for a question under a system prompt
	Generate(ctx context.Context, systemPrompt, question string) (string, error)

	// Name returns the provider identifier used in diagnostics
	Name() string
}

package data

import (
	"context"

	"github.com/redditor-labs/redditor/anthropic"
	"github.com/redditor-labs/redditor/internal/biz/repo"
)

// anthropicRepo implements the provider interface on the Anthropic client
type anthropicRepo struct {
	client *anthropic.Client
}

// NewAnthropicRepo creates an Anthropic provider repository.
// Returns nil when no client is configured.
func NewAnthropicRepo(client *anthropic.Client) repo.ProviderRepo {
	if client == nil {
		return nil
	}
	return &anthropicRepo{client: client}
}

func (r *anthropicRepo) Generate(ctx context.Context, systemPrompt, question string) (string, error) {
	return r.client.Chat(ctx, systemPrompt, question)
}

func (r *anthropicRepo) Name() string {
	return "anthropic"
}

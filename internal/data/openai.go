package data

import (
	"context"

	"github.com/redditor-labs/redditor/internal/biz/repo"
	"github.com/redditor-labs/redditor/openaichat"
)

// openaiRepo implements the provider interface on the OpenAI client
type openaiRepo struct {
	client *openaichat.Client
}

// NewOpenAIRepo creates an OpenAI provider repository.
// Returns nil when no client is configured.
func NewOpenAIRepo(client *openaichat.Client) repo.ProviderRepo {
	if client == nil {
		return nil
	}
	return &openaiRepo{client: client}
}

func (r *openaiRepo) Generate(ctx context.Context, systemPrompt, question string) (string, error) {
	return r.client.Chat(ctx, systemPrompt, question)
}

func (r *openaiRepo) Name() string {
	return "openai"
}

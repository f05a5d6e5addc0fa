package data

import (
	"context"
	"fmt"

	"github.com/redditor-labs/redditor/anthropic"
	"github.com/redditor-labs/redditor/internal/biz/domain"
	"github.com/redditor-labs/redditor/internal/biz/repo"
	"github.com/redditor-labs/redditor/openaichat"
	"github.com/redditor-labs/redditor/reddit"
)

// StoreOptions selects and configures the store backend
type StoreOptions struct {
	Backend       string // redis (default), sqlite, memory
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DBPath        string
}

// Repositories contains all repositories
type Repositories struct {
	Settings  repo.SettingsRepo
	Content   repo.ContentRepo
	Store     repo.StoreRepo
	Providers map[domain.Provider]repo.ProviderRepo
}

// NewStore creates the store repository for the selected backend
func NewStore(ctx context.Context, opts StoreOptions) (repo.StoreRepo, error) {
	switch opts.Backend {
	case "", "redis":
		return NewRedisStore(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
	case "sqlite":
		return NewSQLiteStore(opts.DBPath)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", opts.Backend)
	}
}

// NewRepositories creates all repositories.
// Provider clients may be nil; the matching provider then reports as not
// configured instead of failing.
func NewRepositories(
	ctx context.Context,
	redditClient *reddit.Client,
	openaiClient *openaichat.Client,
	anthropicClient *anthropic.Client,
	agentCfg domain.AgentConfig,
	storeOpts StoreOptions,
) (*Repositories, error) {
	store, err := NewStore(ctx, storeOpts)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Settings: NewSettingsRepo(agentCfg),
		Content:  NewRedditRepo(redditClient),
		Store:    store,
		Providers: map[domain.Provider]repo.ProviderRepo{
			domain.ProviderOpenAI:    NewOpenAIRepo(openaiClient),
			domain.ProviderAnthropic: NewAnthropicRepo(anthropicClient),
		},
	}, nil
}

package repo

import (
	"context"

	"github.com/redditor-labs/redditor/internal/biz/domain"
)

// SettingsRepo is the settings provider interface.
// Agent returns the configuration snapshot for one event invocation.
type SettingsRepo interface {
	Agent(ctx context.Context) (*domain.AgentConfig, error)
}

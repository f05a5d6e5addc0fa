package data

import (
	"context"

	"github.com/redditor-labs/redditor/internal/biz/domain"
	"github.com/redditor-labs/redditor/internal/biz/repo"
)

// settingsRepo serves the agent configuration captured at startup.
// The hosting process restarts when settings change.
type settingsRepo struct {
	cfg domain.AgentConfig
}

// NewSettingsRepo creates a settings repository from a config snapshot
func NewSettingsRepo(cfg domain.AgentConfig) repo.SettingsRepo {
	return &settingsRepo{cfg: cfg}
}

func (r *settingsRepo) Agent(ctx context.Context) (*domain.AgentConfig, error) {
	snapshot := r.cfg
	return &snapshot, nil
}

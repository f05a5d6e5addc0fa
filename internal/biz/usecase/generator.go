package usecase

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/redditor-labs/redditor/internal/biz/domain"
	"github.com/redditor-labs/redditor/internal/biz/repo"
)

// GeneratorUsecase produces reply text for a question via the configured
// AI provider. Generate is total: it always returns a string suitable for
// posting, never an error. Provider failures are logged and surface to the
// user as fixed fallback messages.
type GeneratorUsecase struct {
	providers map[domain.Provider]repo.ProviderRepo
	promptCfg PromptConfig
}

// NewGeneratorUsecase creates a new generator usecase.
// A nil entry in providers means that provider has no credential configured.
func NewGeneratorUsecase(providers map[domain.Provider]repo.ProviderRepo, promptCfg PromptConfig) *GeneratorUsecase {
	return &GeneratorUsecase{
		providers: providers,
		promptCfg: promptCfg,
	}
}

// Generate produces the reply text for a question using the provider
// selected by cfg (defaulting to OpenAI)
func (uc *GeneratorUsecase) Generate(ctx context.Context, cfg *domain.AgentConfig, question string) string {
	provider := cfg.EffectiveProvider()

	providerRepo := uc.providers[provider]
	if providerRepo == nil {
		log.WithField("provider", string(provider)).Info("provider not configured, returning setup notice")
		return strings.ReplaceAll(uc.promptCfg.NotConfiguredTemplate, "{{provider}}", string(provider))
	}

	text, err := providerRepo.Generate(ctx, uc.promptCfg.SystemPrompt, question)
	if err != nil {
		log.WithField("provider", providerRepo.Name()).Errorf("generation failed: %v", err)
		return uc.promptCfg.ApologyMessage
	}

	return text
}

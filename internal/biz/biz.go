package biz

import (
	"github.com/redditor-labs/redditor/internal/biz/usecase"
	"github.com/redditor-labs/redditor/internal/data"
)

// Usecases contains all usecases
type Usecases struct {
	Conversation *usecase.ConversationUsecase
	Generator    *usecase.GeneratorUsecase
	Trigger      *usecase.TriggerUsecase
}

// NewUsecases wires the usecase layer from the repositories
func NewUsecases(repos *data.Repositories, promptCfg usecase.PromptConfig) *Usecases {
	convUC := usecase.NewConversationUsecase(repos.Store)
	genUC := usecase.NewGeneratorUsecase(repos.Providers, promptCfg)
	triggerUC := usecase.NewTriggerUsecase(repos.Settings, repos.Content, repos.Store, convUC, genUC, promptCfg)

	return &Usecases{
		Conversation: convUC,
		Generator:    genUC,
		Trigger:      triggerUC,
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/redditor-labs/redditor/internal/biz/domain"
	"github.com/redditor-labs/redditor/internal/biz/repo"
	"github.com/redditor-labs/redditor/internal/biz/usecase"
	"github.com/redditor-labs/redditor/internal/data"
)

type stubSettings struct {
	cfg domain.AgentConfig
}

func (s *stubSettings) Agent(ctx context.Context) (*domain.AgentConfig, error) {
	snapshot := s.cfg
	return &snapshot, nil
}

type stubContent struct {
	submitted int
	failures  int
}

func (s *stubContent) SubmitReply(ctx context.Context, targetID, text string) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("comment request failed: 503 Service Unavailable")
	}
	s.submitted++
	return nil
}

func (s *stubContent) CurrentIdentity(ctx context.Context) (string, error) {
	return "agent-bot", nil
}

type stubProvider struct{}

func (s *stubProvider) Generate(ctx context.Context, systemPrompt, question string) (string, error) {
	return "stub answer", nil
}

func (s *stubProvider) Name() string { return "openai" }

func newTestAgentService(content *stubContent) *AgentService {
	store := data.NewMemoryStore()
	convUC := usecase.NewConversationUsecase(store)
	genUC := usecase.NewGeneratorUsecase(map[domain.Provider]repo.ProviderRepo{
		domain.ProviderOpenAI: &stubProvider{},
	}, usecase.DefaultPromptConfig)
	settings := &stubSettings{cfg: domain.AgentConfig{
		AutoReplyEnabled: true,
		TriggerKeyword:   "!ask",
	}}

	triggerUC := usecase.NewTriggerUsecase(settings, content, store, convUC, genUC, usecase.DefaultPromptConfig)
	return NewAgentService(triggerUC)
}

func TestAgentService_HandleEvent(t *testing.T) {
	content := &stubContent{}
	svc := newTestAgentService(content)

	outcome := svc.HandleEvent(context.Background(), &domain.TriggerEvent{
		Kind:     domain.EventKindComment,
		RawText:  "!ask what is photosynthesis",
		AuthorID: "alice",
		TargetID: "t1_abc",
	})

	if outcome != usecase.OutcomeReplied {
		t.Errorf("Expected replied, got %s", outcome)
	}
	if content.submitted != 1 {
		t.Errorf("Expected 1 submitted reply, got %d", content.submitted)
	}
}

func TestAgentService_DuplicateEventIgnored(t *testing.T) {
	content := &stubContent{}
	svc := newTestAgentService(content)
	ctx := context.Background()

	event := &domain.TriggerEvent{
		Kind:     domain.EventKindComment,
		RawText:  "!ask question",
		AuthorID: "alice",
		TargetID: "t1_abc",
	}

	first := svc.HandleEvent(ctx, event)
	second := svc.HandleEvent(ctx, event)

	if first != usecase.OutcomeReplied {
		t.Errorf("Expected first delivery replied, got %s", first)
	}
	if second != usecase.OutcomeDuplicate {
		t.Errorf("Expected second delivery deduplicated, got %s", second)
	}
	if content.submitted != 1 {
		t.Errorf("Expected exactly 1 submitted reply, got %d", content.submitted)
	}
}

func TestAgentService_RedeliveryAfterPostFailureRetries(t *testing.T) {
	content := &stubContent{failures: 1}
	svc := newTestAgentService(content)
	ctx := context.Background()

	event := &domain.TriggerEvent{
		Kind:     domain.EventKindComment,
		RawText:  "!ask question",
		AuthorID: "alice",
		TargetID: "t1_abc",
	}

	first := svc.HandleEvent(ctx, event)
	if first != usecase.OutcomePostFailed {
		t.Fatalf("Expected first delivery post_failed, got %s", first)
	}

	// Redelivery is the only recovery path after a failed post, so the
	// failed event must not be swallowed as a duplicate
	second := svc.HandleEvent(ctx, event)
	if second != usecase.OutcomeReplied {
		t.Errorf("Expected redelivery replied, got %s", second)
	}
	if content.submitted != 1 {
		t.Errorf("Expected 1 submitted reply, got %d", content.submitted)
	}

	third := svc.HandleEvent(ctx, event)
	if third != usecase.OutcomeDuplicate {
		t.Errorf("Expected third delivery deduplicated, got %s", third)
	}
	if content.submitted != 1 {
		t.Errorf("Expected still 1 submitted reply, got %d", content.submitted)
	}
}

func TestAgentService_DistinctTargetsNotDeduplicated(t *testing.T) {
	content := &stubContent{}
	svc := newTestAgentService(content)
	ctx := context.Background()

	_ = svc.HandleEvent(ctx, &domain.TriggerEvent{
		Kind: domain.EventKindComment, RawText: "!ask one", AuthorID: "alice", TargetID: "t1_a",
	})
	outcome := svc.HandleEvent(ctx, &domain.TriggerEvent{
		Kind: domain.EventKindComment, RawText: "!ask two", AuthorID: "alice", TargetID: "t1_b",
	})

	if outcome != usecase.OutcomeReplied {
		t.Errorf("Expected second target replied, got %s", outcome)
	}
	if content.submitted != 2 {
		t.Errorf("Expected 2 submitted replies, got %d", content.submitted)
	}
}

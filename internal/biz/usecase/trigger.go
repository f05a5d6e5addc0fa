package usecase

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/redditor-labs/redditor/internal/biz/domain"
	"github.com/redditor-labs/redditor/internal/biz/repo"
)

// Outcome describes how an event traversed the pipeline
type Outcome string

const (
	OutcomeReplied             Outcome = "replied"
	OutcomePromptedForQuestion Outcome = "prompted_for_question"
	OutcomeDisabled            Outcome = "disabled"
	OutcomeNoContent           Outcome = "no_content"
	OutcomeSelfAuthored        Outcome = "self_authored"
	OutcomeNoKeyword           Outcome = "no_keyword"
	OutcomePostFailed          Outcome = "post_failed"
	OutcomeDuplicate           Outcome = "duplicate"
)

// Processed counter names, keyed by event kind
const (
	counterPostsProcessed    = "posts_processed"
	counterCommentsProcessed = "comments_processed"
)

// TriggerUsecase runs the event-triggered decision pipeline: five
// sequential eligibility gates, then generate, post, and record.
// Nothing it does escapes as an unhandled failure.
type TriggerUsecase struct {
	settings repo.SettingsRepo
	content  repo.ContentRepo
	store    repo.StoreRepo
	convUC   *ConversationUsecase
	genUC    *GeneratorUsecase

	promptCfg PromptConfig

	// Agent identity is stable per credential set; cached after the
	// first successful lookup
	identityMu sync.Mutex
	identity   string
}

// NewTriggerUsecase creates a new trigger usecase
func NewTriggerUsecase(
	settings repo.SettingsRepo,
	content repo.ContentRepo,
	store repo.StoreRepo,
	convUC *ConversationUsecase,
	genUC *GeneratorUsecase,
	promptCfg PromptConfig,
) *TriggerUsecase {
	return &TriggerUsecase{
		settings:  settings,
		content:   content,
		store:     store,
		convUC:    convUC,
		genUC:     genUC,
		promptCfg: promptCfg,
	}
}

// Handle processes one inbound event through the gates. Each failing gate
// exits silently (diagnostic log only); the first terminal path wins.
func (uc *TriggerUsecase) Handle(ctx context.Context, event *domain.TriggerEvent) (Outcome, error) {
	cfg, err := uc.settings.Agent(ctx)
	if err != nil {
		return OutcomeDisabled, fmt.Errorf("read settings: %w", err)
	}

	// Gate 1: feature flag
	if !cfg.AutoReplyEnabled {
		return OutcomeDisabled, nil
	}

	// Gate 2: content presence
	if !event.HasContent() {
		log.WithField("kind", string(event.Kind)).Debug("event carries no payload, skipping")
		return OutcomeNoContent, nil
	}

	// Gate 3: self-authorship, prevents reply loops
	if event.IsAuthoredBy(uc.agentIdentity(ctx)) {
		log.WithField("author", event.AuthorID).Debug("own content, skipping")
		return OutcomeSelfAuthored, nil
	}

	// Gate 4: trigger keyword
	if !event.ContainsKeyword(cfg.TriggerKeyword) {
		return OutcomeNoKeyword, nil
	}

	// Gate 5: question extraction. Comments with nothing left after
	// stripping the keyword get a prompt-for-input reply instead of a
	// generated one; posts proceed with the empty question.
	question := event.ExtractQuestion(cfg.TriggerKeyword)
	if question == "" && event.Kind == domain.EventKindComment {
		if err := uc.content.SubmitReply(ctx, event.TargetID, uc.promptCfg.EmptyQuestionPrompt); err != nil {
			log.WithField("target", event.TargetID).Errorf("failed to post question prompt: %v", err)
			return OutcomePostFailed, nil
		}
		return OutcomePromptedForQuestion, nil
	}

	reply := uc.genUC.Generate(ctx, cfg, question)

	if err := uc.content.SubmitReply(ctx, event.TargetID, reply); err != nil {
		// At-most-one delivery attempt; no retry, no dead letter
		log.WithField("target", event.TargetID).Errorf("failed to post reply: %v", err)
		return OutcomePostFailed, nil
	}

	uc.recordProcessed(ctx, event, question, reply)

	return OutcomeReplied, nil
}

// recordProcessed bumps the processed counter and appends the Q/A pair to
// the author's history. Storage trouble is logged, never fatal: the reply
// has already been posted.
func (uc *TriggerUsecase) recordProcessed(ctx context.Context, event *domain.TriggerEvent, question, reply string) {
	counter := counterCommentsProcessed
	if event.Kind == domain.EventKindPost {
		counter = counterPostsProcessed
	}

	if err := uc.store.IncrementCounter(ctx, counter, 1); err != nil {
		log.WithField("counter", counter).Warnf("failed to increment counter: %v", err)
	}

	if err := uc.convUC.Append(ctx, event.AuthorID, question, reply); err != nil {
		log.WithField("user", event.AuthorID).Warnf("failed to record conversation: %v", err)
	}
}

// agentIdentity resolves the agent's own author identifier, caching the
// first successful lookup. On lookup failure the self-authorship gate is
// skipped for this event rather than blocking the reply.
func (uc *TriggerUsecase) agentIdentity(ctx context.Context) string {
	uc.identityMu.Lock()
	defer uc.identityMu.Unlock()

	if uc.identity != "" {
		return uc.identity
	}

	identity, err := uc.content.CurrentIdentity(ctx)
	if err != nil {
		log.Warnf("failed to resolve agent identity: %v", err)
		return ""
	}
	uc.identity = identity
	return identity
}

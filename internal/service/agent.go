package service

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/redditor-labs/redditor/internal/biz/domain"
	"github.com/redditor-labs/redditor/internal/biz/usecase"
)

// seenTTL bounds how long processed event ids are remembered
const seenTTL = time.Hour

// AgentService is the event entry point. It deduplicates redelivered
// events best-effort and hands them to the trigger pipeline. The host may
// dispatch overlapping events concurrently; each call is independent.
type AgentService struct {
	triggerUC *usecase.TriggerUsecase

	seenMu sync.Mutex
	seen   map[string]time.Time
}

// NewAgentService creates a new agent service
func NewAgentService(triggerUC *usecase.TriggerUsecase) *AgentService {
	return &AgentService{
		triggerUC: triggerUC,
		seen:      make(map[string]time.Time),
	}
}

// HandleEvent processes one inbound event and reports the pipeline outcome.
// It never returns an error to the caller; delivery is at-least-once and
// the host gets a terminal outcome either way.
func (s *AgentService) HandleEvent(ctx context.Context, event *domain.TriggerEvent) usecase.Outcome {
	if s.alreadySeen(event) {
		log.WithField("target", event.TargetID).Debug("duplicate event ignored")
		return usecase.OutcomeDuplicate
	}

	outcome, err := s.triggerUC.Handle(ctx, event)
	if err != nil {
		log.WithField("kind", string(event.Kind)).Errorf("pipeline error: %v", err)
	}

	// A failed post must stay retryable: redelivery is the only recovery
	// path, so the event is not marked seen until it reaches any other
	// terminal outcome.
	if outcome != usecase.OutcomePostFailed {
		s.markSeen(event)
	}

	log.WithFields(log.Fields{
		"kind":    string(event.Kind),
		"target":  event.TargetID,
		"outcome": string(outcome),
	}).Info("event processed")

	return outcome
}

func seenKey(event *domain.TriggerEvent) string {
	return string(event.Kind) + ":" + event.TargetID
}

// alreadySeen reports whether the event id was processed within the TTL.
// In-process only; a restart forgets everything, which is acceptable
// under at-least-once delivery.
func (s *AgentService) alreadySeen(event *domain.TriggerEvent) bool {
	s.seenMu.Lock()
	defer s.seenMu.Unlock()

	now := time.Now()
	for k, t := range s.seen {
		if now.Sub(t) > seenTTL {
			delete(s.seen, k)
		}
	}

	_, ok := s.seen[seenKey(event)]
	return ok
}

func (s *AgentService) markSeen(event *domain.TriggerEvent) {
	s.seenMu.Lock()
	defer s.seenMu.Unlock()
	s.seen[seenKey(event)] = time.Now()
}

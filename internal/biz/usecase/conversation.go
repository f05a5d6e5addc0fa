package usecase

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/redditor-labs/redditor/internal/biz/domain"
	"github.com/redditor-labs/redditor/internal/biz/repo"
)

// ConversationUsecase maintains the bounded per-user conversation history
type ConversationUsecase struct {
	store repo.StoreRepo
}

// NewConversationUsecase creates a new conversation usecase
func NewConversationUsecase(store repo.StoreRepo) *ConversationUsecase {
	return &ConversationUsecase{store: store}
}

func conversationKey(userID string) string {
	return "conversation:" + userID
}

// Append records a question/answer pair for a user, then trims the history
// back down to domain.MaxHistoryEntries, evicting the oldest entries first
func (uc *ConversationUsecase) Append(ctx context.Context, userID, question, answer string) error {
	entry := &domain.ConversationEntry{
		Timestamp: time.Now().UnixMilli(),
		Question:  question,
		Answer:    answer,
	}

	member, err := entry.Encode()
	if err != nil {
		return err
	}

	key := conversationKey(userID)
	if err := uc.store.OrderedInsert(ctx, key, float64(entry.Timestamp), member); err != nil {
		return fmt.Errorf("insert history for %s: %w", userID, err)
	}

	count, err := uc.store.Count(ctx, key)
	if err != nil {
		return fmt.Errorf("count history for %s: %w", userID, err)
	}

	if count > domain.MaxHistoryEntries {
		// Remove the lowest-scored (oldest) surplus entries
		if err := uc.store.TrimLowestScored(ctx, key, 0, count-domain.MaxHistoryEntries-1); err != nil {
			return fmt.Errorf("trim history for %s: %w", userID, err)
		}
	}

	return nil
}

// History returns up to domain.MaxHistoryEntries entries for a user in
// ascending timestamp order. Unknown users get an empty slice.
func (uc *ConversationUsecase) History(ctx context.Context, userID string) ([]domain.ConversationEntry, error) {
	members, err := uc.store.RangeByScore(ctx, conversationKey(userID))
	if err != nil {
		return nil, fmt.Errorf("range history for %s: %w", userID, err)
	}

	entries := make([]domain.ConversationEntry, 0, len(members))
	for _, m := range members {
		entry, err := domain.DecodeConversationEntry(m.Member)
		if err != nil {
			// Skip malformed members rather than failing the read
			log.WithField("user", userID).Warnf("skipping malformed history entry: %v", err)
			continue
		}
		entries = append(entries, *entry)
	}

	if len(entries) > domain.MaxHistoryEntries {
		entries = entries[len(entries)-domain.MaxHistoryEntries:]
	}
	return entries, nil
}

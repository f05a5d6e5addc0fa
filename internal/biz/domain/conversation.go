package domain

import (
	"encoding/json"
	"fmt"
)

// MaxHistoryEntries is the per-user conversation history cap.
// Oldest entries are evicted first once the cap is exceeded.
const MaxHistoryEntries = 5

// ConversationEntry represents one recorded question/answer pair.
// Timestamp (unix milliseconds) doubles as the ordering key in storage.
type ConversationEntry struct {
	Timestamp int64  `json:"timestamp"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}

// Encode serializes the entry for storage as an ordered-set member
func (e *ConversationEntry) Encode() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encode entry: %w", err)
	}
	return string(data), nil
}

// DecodeConversationEntry parses a stored ordered-set member
func DecodeConversationEntry(member string) (*ConversationEntry, error) {
	var entry ConversationEntry
	if err := json.Unmarshal([]byte(member), &entry); err != nil {
		return nil, fmt.Errorf("decode entry: %w", err)
	}
	return &entry, nil
}

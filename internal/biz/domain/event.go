package domain

import "strings"

// EventKind represents the kind of platform event
type EventKind string

const (
	EventKindPost    EventKind = "post"
	EventKindComment EventKind = "comment"
)

// TriggerEvent represents an inbound platform event (post or comment).
// It is constructed per delivery and discarded after processing.
type TriggerEvent struct {
	Kind     EventKind
	RawText  string // title+body for posts, body for comments
	AuthorID string
	TargetID string // the thing the reply will attach to
}

// HasContent checks whether the event carries a payload worth inspecting
func (e *TriggerEvent) HasContent() bool {
	return strings.TrimSpace(e.RawText) != ""
}

// IsAuthoredBy checks if the event was authored by the given identity
func (e *TriggerEvent) IsAuthoredBy(identity string) bool {
	return identity != "" && e.AuthorID == identity
}

// ContainsKeyword checks for a case-insensitive substring match of the
// trigger keyword against the raw text
func (e *TriggerEvent) ContainsKeyword(keyword string) bool {
	if keyword == "" {
		return false
	}
	return strings.Contains(strings.ToLower(e.RawText), strings.ToLower(keyword))
}

// ExtractQuestion strips every case-insensitive occurrence of the trigger
// keyword from the raw text and trims surrounding whitespace
func (e *TriggerEvent) ExtractQuestion(keyword string) string {
	if keyword == "" {
		return strings.TrimSpace(e.RawText)
	}

	lowerKw := strings.ToLower(keyword)
	text := e.RawText

	var b strings.Builder
	for {
		idx := strings.Index(strings.ToLower(text), lowerKw)
		if idx < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:idx])
		text = text[idx+len(lowerKw):]
	}

	return strings.TrimSpace(b.String())
}

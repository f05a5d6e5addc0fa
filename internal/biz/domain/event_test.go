package domain

import "testing"

func TestTriggerEvent_HasContent(t *testing.T) {
	event := &TriggerEvent{RawText: "!ask something"}
	if !event.HasContent() {
		t.Error("Expected HasContent() to return true for non-empty text")
	}

	empty := &TriggerEvent{RawText: "   \n\t"}
	if empty.HasContent() {
		t.Error("Expected HasContent() to return false for whitespace-only text")
	}
}

func TestTriggerEvent_ContainsKeyword_CaseInsensitive(t *testing.T) {
	cases := []string{
		"!ASK what is photosynthesis",
		"!Ask what is photosynthesis",
		"something in the middle !aSk here",
	}

	for _, text := range cases {
		event := &TriggerEvent{RawText: text}
		if !event.ContainsKeyword("!ask") {
			t.Errorf("Expected keyword match in %q", text)
		}
	}

	event := &TriggerEvent{RawText: "no keyword here"}
	if event.ContainsKeyword("!ask") {
		t.Error("Expected no keyword match")
	}
}

func TestTriggerEvent_ContainsKeyword_EmptyKeyword(t *testing.T) {
	event := &TriggerEvent{RawText: "anything"}
	if event.ContainsKeyword("") {
		t.Error("Expected empty keyword to never match")
	}
}

func TestTriggerEvent_ExtractQuestion(t *testing.T) {
	event := &TriggerEvent{RawText: "!ask what is photosynthesis"}
	if got := event.ExtractQuestion("!ask"); got != "what is photosynthesis" {
		t.Errorf("Expected question, got %q", got)
	}
}

func TestTriggerEvent_ExtractQuestion_StripsAllOccurrences(t *testing.T) {
	event := &TriggerEvent{RawText: "!ask what is !ASK photosynthesis !Ask"}
	if got := event.ExtractQuestion("!ask"); got != "what is  photosynthesis" {
		t.Errorf("Expected all occurrences stripped, got %q", got)
	}
}

func TestTriggerEvent_ExtractQuestion_EmptyResult(t *testing.T) {
	event := &TriggerEvent{RawText: "  !ask  "}
	if got := event.ExtractQuestion("!ask"); got != "" {
		t.Errorf("Expected empty question, got %q", got)
	}
}

func TestTriggerEvent_IsAuthoredBy(t *testing.T) {
	event := &TriggerEvent{AuthorID: "agent-bot"}
	if !event.IsAuthoredBy("agent-bot") {
		t.Error("Expected self-authorship match")
	}
	if event.IsAuthoredBy("someone-else") {
		t.Error("Expected no match for a different author")
	}
	if event.IsAuthoredBy("") {
		t.Error("Expected empty identity to never match")
	}
}

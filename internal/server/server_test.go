package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redditor-labs/redditor/internal/biz/domain"
	"github.com/redditor-labs/redditor/internal/biz/repo"
	"github.com/redditor-labs/redditor/internal/biz/usecase"
	"github.com/redditor-labs/redditor/internal/data"
	"github.com/redditor-labs/redditor/internal/service"
)

type stubSettings struct {
	cfg domain.AgentConfig
}

func (s *stubSettings) Agent(ctx context.Context) (*domain.AgentConfig, error) {
	snapshot := s.cfg
	return &snapshot, nil
}

type stubContent struct {
	replies []string
}

func (s *stubContent) SubmitReply(ctx context.Context, targetID, text string) error {
	s.replies = append(s.replies, text)
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

func newTestServer(autoReply bool) (*Server, *stubContent, repo.StoreRepo) {
	store := data.NewMemoryStore()
	content := &stubContent{}
	convUC := usecase.NewConversationUsecase(store)
	genUC := usecase.NewGeneratorUsecase(map[domain.Provider]repo.ProviderRepo{
		domain.ProviderOpenAI: &stubProvider{},
	}, usecase.DefaultPromptConfig)
	settings := &stubSettings{cfg: domain.AgentConfig{
		AutoReplyEnabled: autoReply,
		TriggerKeyword:   "!ask",
	}}
	triggerUC := usecase.NewTriggerUsecase(settings, content, store, convUC, genUC, usecase.DefaultPromptConfig)

	return NewServer(service.NewAgentService(triggerUC), store, 0), content, store
}

func decodeOutcome(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body["outcome"]
}

func TestServer_CommentWebhook(t *testing.T) {
	srv, content, store := newTestServer(true)

	req := httptest.NewRequest(http.MethodPost, "/webhook/comment",
		strings.NewReader(`{"id": "t1_abc", "author": "alice", "body": "!ask what is photosynthesis"}`))
	rec := httptest.NewRecorder()
	srv.handleComment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if outcome := decodeOutcome(t, rec); outcome != string(usecase.OutcomeReplied) {
		t.Errorf("Expected replied, got %s", outcome)
	}
	if len(content.replies) != 1 {
		t.Fatalf("Expected 1 reply, got %d", len(content.replies))
	}

	count, _ := store.Counter(context.Background(), "comments_processed")
	if count != 1 {
		t.Errorf("Expected comments_processed=1, got %d", count)
	}
}

func TestServer_PostWebhookJoinsTitleAndBody(t *testing.T) {
	srv, content, _ := newTestServer(true)

	req := httptest.NewRequest(http.MethodPost, "/webhook/post",
		strings.NewReader(`{"id": "t3_xyz", "author": "bob", "title": "Help", "body": "!ask how do flairs work"}`))
	rec := httptest.NewRecorder()
	srv.handlePost(rec, req)

	if outcome := decodeOutcome(t, rec); outcome != string(usecase.OutcomeReplied) {
		t.Errorf("Expected replied, got %s", outcome)
	}
	if len(content.replies) != 1 {
		t.Errorf("Expected 1 reply, got %d", len(content.replies))
	}
}

func TestServer_DisabledAgentAcknowledgesWithoutReply(t *testing.T) {
	srv, content, _ := newTestServer(false)

	req := httptest.NewRequest(http.MethodPost, "/webhook/comment",
		strings.NewReader(`{"id": "t1_abc", "author": "alice", "body": "!ask question"}`))
	rec := httptest.NewRecorder()
	srv.handleComment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for disabled agent, got %d", rec.Code)
	}
	if outcome := decodeOutcome(t, rec); outcome != string(usecase.OutcomeDisabled) {
		t.Errorf("Expected disabled, got %s", outcome)
	}
	if len(content.replies) != 0 {
		t.Error("Expected no reply from a disabled agent")
	}
}

func TestServer_BadPayload(t *testing.T) {
	srv, _, _ := newTestServer(true)

	req := httptest.NewRequest(http.MethodPost, "/webhook/comment", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.handleComment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad payload, got %d", rec.Code)
	}
}

func TestServer_Health(t *testing.T) {
	srv, _, _ := newTestServer(true)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestServer_ReadEndpointsRejectPost(t *testing.T) {
	srv, _, _ := newTestServer(true)

	for _, tc := range []struct {
		path    string
		handler http.HandlerFunc
	}{
		{"/health", srv.handleHealth},
		{"/stats", srv.handleStats},
	} {
		req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		tc.handler(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405 for POST %s, got %d", tc.path, rec.Code)
		}
	}
}

func TestServer_Stats(t *testing.T) {
	srv, _, store := newTestServer(true)
	_ = store.IncrementCounter(context.Background(), "posts_processed", 2)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	srv.handleStats(rec, req)

	var body map[string]int64
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if body["posts_processed"] != 2 {
		t.Errorf("Expected posts_processed=2, got %d", body["posts_processed"])
	}
	if body["comments_processed"] != 0 {
		t.Errorf("Expected comments_processed=0, got %d", body["comments_processed"])
	}
}

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/redditor-labs/redditor/internal/biz/domain"
	"github.com/redditor-labs/redditor/internal/biz/repo"
	"github.com/redditor-labs/redditor/internal/service"
)

// Version is the application version reported by the info endpoint
const Version = "0.1.0"

// Server is the HTTP adapter that binds webhook deliveries to the agent
// pipeline. It assumes at-least-once delivery and always acknowledges
// parsable events with 200 so the host does not retry storms.
type Server struct {
	agentSvc *service.AgentService
	store    repo.StoreRepo
	server   *http.Server
	port     int
}

// NewServer creates a new webhook server
func NewServer(agentSvc *service.AgentService, store repo.StoreRepo, port int) *Server {
	return &Server{
		agentSvc: agentSvc,
		store:    store,
		port:     port,
	}
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/webhook/post", s.handlePost)
	mux.HandleFunc("/webhook/comment", s.handleComment)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/", s.handleRoot)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	log.Infof("webhook server listening on :%d", s.port)
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() {
	if s.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		log.Warnf("server shutdown: %v", err)
	}
}

// postPayload is the webhook body for a new post event
type postPayload struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// commentPayload is the webhook body for a new comment event
type commentPayload struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Body   string `json:"body"`
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var payload postPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	rawText := payload.Title
	if payload.Body != "" {
		rawText = strings.TrimSpace(payload.Title + "\n" + payload.Body)
	}

	event := &domain.TriggerEvent{
		Kind:     domain.EventKindPost,
		RawText:  rawText,
		AuthorID: payload.Author,
		TargetID: payload.ID,
	}

	outcome := s.agentSvc.HandleEvent(r.Context(), event)
	writeJSON(w, http.StatusOK, map[string]string{"outcome": string(outcome)})
}

func (s *Server) handleComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var payload commentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	event := &domain.TriggerEvent{
		Kind:     domain.EventKindComment,
		RawText:  payload.Body,
		AuthorID: payload.Author,
		TargetID: payload.ID,
	}

	outcome := s.agentSvc.HandleEvent(r.Context(), event)
	writeJSON(w, http.StatusOK, map[string]string{"outcome": string(outcome)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	posts, err := s.store.Counter(r.Context(), "posts_processed")
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	comments, err := s.store.Counter(r.Context(), "comments_processed")
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{
		"posts_processed":    posts,
		"comments_processed": comments,
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "Redditor API",
		"version": Version,
		"status":  "operational",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

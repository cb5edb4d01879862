package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ollama/ollama/api"
)

// ChatReply is the scripted answer to one /api/chat call. A non-zero Status
// other than 200 sends Body as a plain-text error instead of a chat response.
type ChatReply struct {
	Text   string
	Status int
	Body   string
}

// OllamaServer is an in-memory stand-in for an Ollama server.
type OllamaServer struct {
	BaseURL string
	Close   func()

	mu       sync.Mutex
	requests []api.ChatRequest
}

// StartOllama launches a fake /api/chat endpoint. reply receives each decoded
// request and its zero-based call index.
func StartOllama(t *testing.T, reply func(req api.ChatRequest, call int) ChatReply) *OllamaServer {
	t.Helper()
	srv := &OllamaServer{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		var req api.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "decode request: %v", err)
			return
		}
		srv.mu.Lock()
		call := len(srv.requests)
		srv.requests = append(srv.requests, req)
		srv.mu.Unlock()

		answer := reply(req, call)
		if answer.Status != 0 && answer.Status != http.StatusOK {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(answer.Status)
			fmt.Fprint(w, answer.Body)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.ChatResponse{
			Model:   req.Model,
			Message: api.Message{Role: "assistant", Content: answer.Text},
			Done:    true,
		})
	})
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	srv.BaseURL = server.URL
	srv.Close = server.Close
	return srv
}

// Requests returns the chat requests received so far.
func (s *OllamaServer) Requests() []api.ChatRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.ChatRequest(nil), s.requests...)
}

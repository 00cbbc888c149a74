package api

import (
	"encoding/json"
	"net/http"

	"github.com/FocuswithJustin/Interline/core/panels"
	"github.com/FocuswithJustin/Interline/core/token"
	"github.com/FocuswithJustin/Interline/internal/logging"
)

// Server wires a panel service and a relay hub into an HTTP handler.
type Server struct {
	svc *panels.Service
	hub *Hub
}

// NewServer creates a relay server over the given panel service. The hub's
// Run loop is started and the hub is subscribed to the service.
func NewServer(svc *panels.Service) *Server {
	hub := NewHub()
	go hub.Run()
	svc.Subscribe(hub.Relay)
	return &Server{svc: svc, hub: hub}
}

// Handler returns the HTTP handler:
//
//	GET  /ws/highlights  WebSocket relay of broadcast messages
//	POST /click          simulate a word click {resource_id, unique_id}
//	POST /clear          clear highlights in all panels
//	GET  /stats          registry statistics
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/highlights", s.hub.handleWebSocket)
	mux.HandleFunc("/click", s.handleClick)
	mux.HandleFunc("/clear", s.handleClear)
	mux.HandleFunc("/stats", s.handleStats)
	return mux
}

// clickRequest is the body of POST /click.
type clickRequest struct {
	ResourceID string `json:"resource_id"`
	UniqueID   string `json:"unique_id"`
	VerseRef   string `json:"verse_ref,omitempty"`
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	clicked := s.findToken(req.ResourceID, req.UniqueID)
	if clicked == nil {
		http.Error(w, "token not found", http.StatusNotFound)
		return
	}

	s.svc.HandleWordClick(clicked, req.ResourceID, req.VerseRef)
	logging.BroadcastEvent(string(panels.MessageHighlight), req.ResourceID, s.svc.GetStatistics().PanelCount)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.svc.ClearHighlights()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.svc.GetStatistics()); err != nil {
		logging.Error("failed to encode statistics", "error", err)
	}
}

// findToken locates a token by unique ID within one registered panel's
// chapters.
func (s *Server) findToken(resourceID, uniqueID string) *token.WordToken {
	chapters := s.svc.PanelChapters(resourceID)
	for _, ch := range chapters {
		for _, v := range ch.Verses {
			for _, t := range v.WordTokens {
				if t.UniqueID == uniqueID {
					return t
				}
			}
		}
	}
	return nil
}

package chatdesk

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Server exposes the chat and lead endpoints over HTTP. Validation happens
// here, before the core is invoked; core errors are mapped to generic
// user-visible failures without leaking upstream detail.
type Server struct {
	manager   *ConversationManager
	leads     *LeadService
	staticDir string
	logger    *slog.Logger
}

// NewServer wires the HTTP boundary. staticDir may be empty to disable
// widget asset serving.
func NewServer(manager *ConversationManager, leads *LeadService, staticDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{manager: manager, leads: leads, staticDir: staticDir, logger: logger}
}

// Handler returns the full middleware-wrapped route tree.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/lead", s.handleLead)
	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}
	return s.withRequestLog(withCORS(mux))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "ogiltig förfrågan")
		return
	}
	if req.Message == "" || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "message och sessionId krävs")
		return
	}

	reply, err := s.manager.HandleChatTurn(r.Context(), req.SessionID, req.Message)
	if err != nil {
		s.logger.Error("chat turn failed", "sessionID", req.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "Något gick fel med AI-samtalet.")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) handleLead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var lead Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		writeError(w, http.StatusBadRequest, "ogiltig förfrågan")
		return
	}

	result, err := s.leads.Submit(r.Context(), &lead)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "name och phone krävs")
			return
		}
		s.logger.Error("lead submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Något gick fel med lead.")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// withCORS allows the widget to call the API from any origin.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// withRequestLog tags every request with an id and logs method, path, status
// and duration.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"requestID", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

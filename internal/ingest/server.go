package ingest

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/techimg/hippo-tracker/internal/model"
	"github.com/techimg/hippo-tracker/internal/store"
)

// maxBody caps an incoming record. Records are small by construction;
// anything larger is hostile or broken.
const maxBody = 1 << 20

// Server receives telemetry records over HTTP and stores them.
type Server struct {
	mu         sync.RWMutex
	token      string
	configPath string

	st      *store.Store
	httpSrv *http.Server
}

// New creates a collector server with an opened store.
func New(cfg *Config, configPath string) (*Server, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	s := &Server{
		token:      cfg.Token,
		configPath: configPath,
		st:         st,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/events", s.handleEvent)
	mux.HandleFunc("GET /v1/stats", s.handleStats)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Serve blocks until the server stops.
func (s *Server) Serve() error {
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// ServeOn serves on the given listener. For testing.
func (s *Server) ServeOn(lis net.Listener) error {
	err := s.httpSrv.Serve(lis)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server and closes the store.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpSrv.Shutdown(ctx)
	if cerr := s.st.Close(); err == nil {
		err = cerr
	}
	return err
}

// ReloadConfig re-reads the config file and swaps the bearer token.
// Listen address and database changes require a restart.
func (s *Server) ReloadConfig() error {
	cfg, err := LoadConfig(s.configPath)
	if err != nil {
		return fmt.Errorf("reload collector config: %w", err)
	}
	s.mu.Lock()
	s.token = cfg.Token
	s.mu.Unlock()
	return nil
}

func (s *Server) authorized(r *http.Request) bool {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return true
	}
	got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	if len(body) > maxBody {
		http.Error(w, "record too large", http.StatusRequestEntityTooLarge)
		return
	}

	var rec map[string]any
	if err := json.Unmarshal(body, &rec); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	e := store.Event{
		Category: model.ToString(rec["event_type"]),
		BotID:    model.ToInt64(model.AsMap(rec["bot"])["id"]),
		UserID:   model.ToInt64(model.AsMap(rec["user"])["id"]),
		ChatID:   model.ToInt64(model.AsMap(rec["chat"])["id"]),
		Payload:  body,
	}
	if e.Category == "" {
		http.Error(w, "missing event_type", http.StatusBadRequest)
		return
	}

	id, err := s.st.Insert(r.Context(), e)
	if err != nil {
		http.Error(w, "store failure", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"id": id})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	counts, err := s.st.CountByCategory(r.Context())
	if err != nil {
		http.Error(w, "stats failure", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"categories": counts})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

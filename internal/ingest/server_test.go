package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T, token string) (*Server, *httptest.Server) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Token = token
	cfg.DBPath = filepath.Join(t.TempDir(), "events.db")

	s, err := New(cfg, "")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(s.httpSrv.Handler)
	t.Cleanup(func() {
		ts.Close()
		s.st.Close()
	})
	return s, ts
}

func postEvent(t *testing.T, url, token, body string) *http.Response {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, url+"/v1/events", bytes.NewReader([]byte(body)))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestIngestStoresRecord(t *testing.T) {
	s, ts := newTestServer(t, "tok")
	resp := postEvent(t, ts.URL, "tok", `{"event_type":"text_message","bot":{"id":9},"user":{"id":1},"chat":{"id":2}}`)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out map[string]string
	json.NewDecoder(resp.Body).Decode(&out)
	if out["id"] == "" {
		t.Error("expected assigned id")
	}

	events, err := s.st.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 1 || events[0].Category != "text_message" || events[0].BotID != 9 {
		t.Errorf("stored event = %+v", events)
	}
}

func TestIngestRejectsBadToken(t *testing.T) {
	_, ts := newTestServer(t, "tok")
	if resp := postEvent(t, ts.URL, "wrong", `{"event_type":"x"}`); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	if resp := postEvent(t, ts.URL, "", `{"event_type":"x"}`); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("missing token: status = %d, want 401", resp.StatusCode)
	}
}

func TestIngestRejectsInvalidBody(t *testing.T) {
	_, ts := newTestServer(t, "")
	if resp := postEvent(t, ts.URL, "", `{not json`); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid JSON: status = %d", resp.StatusCode)
	}
	if resp := postEvent(t, ts.URL, "", `{"no_event_type":1}`); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing event_type: status = %d", resp.StatusCode)
	}
	if resp := postEvent(t, ts.URL, "", `{"event_type":"x","pad":"`+strings.Repeat("a", maxBody)+`"}`); resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("oversized: status = %d", resp.StatusCode)
	}
}

func TestIngestStats(t *testing.T) {
	_, ts := newTestServer(t, "")
	postEvent(t, ts.URL, "", `{"event_type":"photo"}`)
	postEvent(t, ts.URL, "", `{"event_type":"photo"}`)
	postEvent(t, ts.URL, "", `{"event_type":"callback_query"}`)

	resp, err := http.Get(ts.URL + "/v1/stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Categories map[string]int64 `json:"categories"`
	}
	json.NewDecoder(resp.Body).Decode(&out)
	if out.Categories["photo"] != 2 || out.Categories["callback_query"] != 1 {
		t.Errorf("categories = %v", out.Categories)
	}
}

func TestReloadSwapsToken(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "collector.yaml")
	if err := os.WriteFile(cfgPath, []byte("token: old\ndb_path: "+filepath.Join(dir, "e.db")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	s, err := New(cfg, cfgPath)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer s.st.Close()

	if err := os.WriteFile(cfgPath, []byte("token: new\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.ReloadConfig(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(`{"event_type":"x"}`))
	req.Header.Set("Authorization", "Bearer old")
	if s.authorized(req) {
		t.Error("old token still accepted after reload")
	}
	req.Header.Set("Authorization", "Bearer new")
	if !s.authorized(req) {
		t.Error("new token rejected after reload")
	}
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, "tok")
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestShutdown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "events.db")
	s, err := New(cfg, "")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

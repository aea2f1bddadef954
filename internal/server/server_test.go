package server

import (
	"bufio"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Vrajesh-Sharma/Blog-Agent/internal/pipeline"
	"github.com/Vrajesh-Sharma/Blog-Agent/internal/session"
	"github.com/Vrajesh-Sharma/Blog-Agent/provider"
)

// scriptedProvider answers by stage so the full pipeline can run in-process.
type scriptedProvider struct{}

func (scriptedProvider) Complete(ctx context.Context, req provider.Request) (string, error) {
	switch {
	case strings.Contains(req.Instruction, "Research Agent"):
		return `{"key_points":["p1"],"sources":[]}`, nil
	case strings.Contains(req.Instruction, "Outline Agent"):
		return `{"title":"T","sections":[]}`, nil
	default:
		return "stage text output", nil
	}
}

func newTestServer(t *testing.T) (*echo.Echo, *pipeline.Coordinator, *session.Preferences) {
	t.Helper()
	e := echo.New()
	sessions := session.NewStore()
	defaults := session.NewPreferences(nil)
	coord := pipeline.NewCoordinator(scriptedProvider{}, "m", nil, sessions, defaults, nil, nil, 0)

	logger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	api := e.Group("/api")
	(&GenerateHandler{Coord: coord, Logger: logger}).Register(api)
	(&SessionHandler{Sessions: sessions}).Register(api)
	(&PreferencesHandler{Defaults: defaults}).Register(api)
	(&HistoryHandler{Archive: nil}).Register(api)
	return e, coord, defaults
}

func TestGenerateStreamsEvents(t *testing.T) {
	e, coord, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-blog",
		strings.NewReader(`{"topic":"Testing in Go"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/event-stream" {
		t.Fatalf("content type = %s", ct)
	}

	var events []map[string]interface{}
	scanner := bufio.NewScanner(rec.Body)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ev map[string]interface{}
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("bad frame %q: %v", line, err)
		}
		events = append(events, ev)
	}
	if len(events) != 8 {
		t.Fatalf("expected 8 frames, got %d", len(events))
	}
	if events[0]["event"] != "stage_start" || events[0]["stage"] != "research" {
		t.Fatalf("bad first frame: %+v", events[0])
	}

	final := events[len(events)-1]
	if final["event"] != "complete" || final["status"] != "complete" {
		t.Fatalf("bad final frame: %+v", final)
	}
	id, _ := final["session_id"].(string)
	if id == "" {
		t.Fatal("complete frame missing session_id")
	}
	if rec, ok := coord.Sessions.Get(id); !ok || rec.Status != session.StatusComplete {
		t.Fatalf("session not completed: %+v", rec)
	}
}

func TestGenerateDefaultsTopic(t *testing.T) {
	e, coord, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-blog", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if coord.Sessions.Len() != 1 {
		t.Fatalf("expected one session, got %d", coord.Sessions.Len())
	}
	// the default topic mirrors an empty request body
	var last map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(rec.Body.String()), "\n") {
		json.Unmarshal([]byte(line), &last)
	}
	id, _ := last["session_id"].(string)
	sess, _ := coord.Sessions.Get(id)
	if sess.Topic != "AI Agents" {
		t.Fatalf("topic = %q, want default", sess.Topic)
	}
}

func TestSessionEndpoint(t *testing.T) {
	e, coord, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/session/unknown-id", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown session status = %d", rec.Code)
	}

	id := coord.Sessions.Create("", "Some Topic", nil)
	req = httptest.NewRequest(http.MethodGet, "/api/session/"+id, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["topic"] != "Some Topic" || got["status"] != "in_progress" {
		t.Fatalf("bad session body: %+v", got)
	}
}

func TestPreferencesEndpoints(t *testing.T) {
	e, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/preferences", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var prefs map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &prefs)
	if prefs["tone"] != "professional" {
		t.Fatalf("bad defaults: %+v", prefs)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/preferences",
		strings.NewReader(`{"tone":"casual","extra":"kept"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	json.Unmarshal(rec.Body.Bytes(), &prefs)
	if prefs["tone"] != "casual" || prefs["extra"] != "kept" {
		t.Fatalf("merge failed: %+v", prefs)
	}
	if prefs["audience"] != "developers" {
		t.Fatalf("untouched defaults lost: %+v", prefs)
	}
}

func TestHistoryWithoutArchive(t *testing.T) {
	e, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty list, got %q", got)
	}
}

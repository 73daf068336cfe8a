package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mcdev12/pitchside/go/internal/effects"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func startFeed(t *testing.T) (*Service, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	svc, err := NewService(ctx, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	go svc.Start(ctx)

	srv := httptest.NewServer(NewHandler(HandlerOptions{
		WebSocket:      svc.WebSocket(),
		AllowedOrigins: []string{"*"},
	}))
	t.Cleanup(srv.Close)
	return svc, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/league" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForConnections(t *testing.T, svc *Service, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for svc.Stats().TotalConnections < n {
		if time.Now().After(deadline) {
			t.Fatalf("connections = %d, want %d", svc.Stats().TotalConnections, n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func envelope(t *testing.T, e effects.Effect) []byte {
	t.Helper()
	env, err := effects.NewEnvelope(e, time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	data, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestFeedDeliversEffects(t *testing.T) {
	svc, srv := startFeed(t)
	conn := dial(t, srv, "")
	waitForConnections(t, svc, 1)

	ec := &EventConsumer{connectionManager: svc.connectionManager}
	if err := ec.process(envelope(t, effects.GrantRole{UserID: "u1", RoleID: "R1"})); err != nil {
		t.Fatalf("process: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var event LeagueEvent
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if event.Type != effects.TypeGrantRole {
		t.Fatalf("event type = %s", event.Type)
	}
	var grant effects.GrantRole
	if err := json.Unmarshal(event.Data, &grant); err != nil || grant.UserID != "u1" {
		t.Fatalf("payload = %s (%v)", event.Data, err)
	}
}

func TestFeedTypeFilter(t *testing.T) {
	svc, srv := startFeed(t)
	conn := dial(t, srv, "?types="+string(effects.TypeFixtureListing))
	waitForConnections(t, svc, 1)
	if svc.Stats().Filtered != 1 {
		t.Fatalf("filtered = %d", svc.Stats().Filtered)
	}

	svc.Broadcast(&LeagueEvent{ID: "1", Type: effects.TypeGrantRole, Data: json.RawMessage(`{}`)})
	svc.Broadcast(&LeagueEvent{ID: "2", Type: effects.TypeFixtureListing, Data: json.RawMessage(`{}`)})

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var event LeagueEvent
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatal(err)
	}
	if event.ID != "2" {
		t.Fatalf("received filtered-out event %s", event.ID)
	}
}

func TestDecodeEnvelopeRejectsGarbage(t *testing.T) {
	if _, err := DecodeEnvelope([]byte("nope")); err == nil {
		t.Fatal("expected error for malformed data")
	}
	if _, err := DecodeEnvelope([]byte(`{"id":"00000000-0000-0000-0000-000000000000"}`)); err == nil {
		t.Fatal("expected error for missing type")
	}
}

func TestHealthAndMetrics(t *testing.T) {
	var down atomic.Bool
	handler := NewHandler(HandlerOptions{
		AllowedOrigins: []string{"*"},
		Ready: pingFunc(func(context.Context) error {
			if down.Load() {
				return errors.New("db down")
			}
			return nil
		}),
	})
	srv := httptest.NewServer(handler)
	defer srv.Close()

	get := func(path string) (int, string) {
		t.Helper()
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(body)
	}

	if code, body := get("/health"); code != http.StatusOK || body != "OK" {
		t.Fatalf("/health = %d %q", code, body)
	}
	down.Store(true)
	if code, _ := get("/health"); code != http.StatusServiceUnavailable {
		t.Fatalf("/health while down = %d", code)
	}
	if code, body := get("/metrics"); code != http.StatusOK || !strings.Contains(body, "go_goroutines") {
		t.Fatalf("/metrics = %d", code)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := NewHandler(HandlerOptions{AllowedOrigins: []string{"https://dash.example"}})
	req := httptest.NewRequest(http.MethodOptions, "/ws/stats", nil)
	req.Header.Set("Origin", "https://dash.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example" {
		t.Fatalf("Allow-Origin = %q", got)
	}
}

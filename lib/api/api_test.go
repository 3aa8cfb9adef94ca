package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/learnopengl/hellotriangle/lib/config"
	"github.com/learnopengl/hellotriangle/lib/session"
	"github.com/learnopengl/hellotriangle/lib/stats"
)

func newTestApi(t *testing.T, statsInterval time.Duration) (*Api, *session.Session, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.Api = &config.ApiCfg{Bind: "localhost:0"}
	s := session.New()
	a := New(cfg, s, stats.New())
	a.statsInterval = statsInterval
	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)
	return a, s, srv
}

func TestGetStats(t *testing.T) {
	a, _, srv := newTestApi(t, time.Second)
	a.Stats.SetSize(800, 600)
	a.Stats.Update(16 * time.Millisecond)

	resp, err := http.Get(srv.URL + "/api/stats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got stats.Stats
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.FramesDrawn != 1 || got.Width != 800 || got.Height != 600 {
		t.Fatalf("unexpected stats %+v", got)
	}
}

func TestKill(t *testing.T) {
	_, s, srv := newTestApi(t, time.Second)

	resp, err := http.Get(srv.URL + "/api/kill")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET /api/kill = %d, want 405", resp.StatusCode)
	}
	if s.ShutdownRequested() {
		t.Fatal("GET must not shut down")
	}

	resp, err = http.Post(srv.URL+"/api/kill", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /api/kill = %d", resp.StatusCode)
	}
	if !s.ShutdownRequested() {
		t.Fatal("shutdown not requested")
	}
}

func TestGetConfig(t *testing.T) {
	_, _, srv := newTestApi(t, time.Second)

	resp, err := http.Get(srv.URL + "/api/config")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got Config
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Title != "learnOpenGL" || got.Width != 800 || got.Height != 600 {
		t.Fatalf("unexpected config %+v", got)
	}
	if got.ClearColour != [4]float32{0.2, 0.3, 0.3, 1} || got.QuadColour != [4]float32{1, 0.5, 0.2, 1} {
		t.Fatalf("unexpected colours %+v", got)
	}
}

func TestMetricsAndDocs(t *testing.T) {
	_, _, srv := newTestApi(t, time.Second)

	for path, want := range map[string]string{
		"/metrics":           "hellotriangle_frames_drawn_total",
		"/api/docs/doc.json": "/api/stats",
	} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s = %d", path, resp.StatusCode)
		}
		if !strings.Contains(string(body), want) {
			t.Errorf("%s misses %q", path, want)
		}
	}
}

func TestProfilerOnlyWhenEnabled(t *testing.T) {
	_, _, srv := newTestApi(t, time.Second)

	resp, err := http.Get(srv.URL + "/prof")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("/prof = %d, want 404", resp.StatusCode)
	}
}

func dialWs(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func waitForClients(t *testing.T, a *Api, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for a.Stats.Snapshot().WsClients != n {
		if time.Now().After(deadline) {
			t.Fatalf("ws clients = %d, want %d", a.Stats.Snapshot().WsClients, n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWebsocketStreamsStats(t *testing.T) {
	a, _, srv := newTestApi(t, 10*time.Millisecond)

	ws := dialWs(t, srv)
	waitForClients(t, a, 1)

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := ws.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var got stats.Stats
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("not a stats packet: %s", msg)
	}
	if got.WsClients != 1 {
		t.Fatalf("ws clients = %d, want 1", got.WsClients)
	}

	_ = ws.Close()
	waitForClients(t, a, 0)
}

func TestWebsocketForwardsShutdown(t *testing.T) {
	a, s, srv := newTestApi(t, time.Hour)

	ws := dialWs(t, srv)
	waitForClients(t, a, 1)

	s.RequestShutdown("escape")

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := ws.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var ev session.EventDataShutdown
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Event != session.EventShutdown || ev.Reason != "escape" {
		t.Fatalf("unexpected event %s", msg)
	}
}

func TestShutdownClosesWebsockets(t *testing.T) {
	a, _, srv := newTestApi(t, time.Hour)

	ws := dialWs(t, srv)
	waitForClients(t, a, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.Shutdown(ctx); err != nil {
		t.Fatal(err)
	}

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := ws.ReadMessage(); err == nil {
		t.Fatal("websocket still open after shutdown")
	} else if ne, ok := err.(interface{ Timeout() bool }); ok && ne.Timeout() {
		t.Fatal("websocket was not closed, read timed out")
	}
	waitForClients(t, a, 0)
}

func TestServeInBackgroundWithoutApi(t *testing.T) {
	if a := ServeInBackground(config.Default(), session.New(), stats.New()); a != nil {
		t.Fatal("no api section should mean no server")
	}
}

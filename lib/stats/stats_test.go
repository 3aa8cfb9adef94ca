package stats

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUpdate(t *testing.T) {
	s := New()
	for i := 0; i < 10; i++ {
		s.Update(16 * time.Millisecond)
	}
	s.SetSize(800, 600)
	s.ShaderReloaded()

	snap := s.Snapshot()
	if snap.FramesDrawn != 10 {
		t.Errorf("frames drawn = %d, want 10", snap.FramesDrawn)
	}
	if snap.FrameTimeMs != 16 {
		t.Errorf("frame time = %v, want 16", snap.FrameTimeMs)
	}
	if snap.Width != 800 || snap.Height != 600 {
		t.Errorf("size = %dx%d", snap.Width, snap.Height)
	}
	if snap.ShaderReloads != 1 {
		t.Errorf("shader reloads = %d", snap.ShaderReloads)
	}
	if snap.Uptime < 0 {
		t.Errorf("negative uptime %v", snap.Uptime)
	}
}

func TestFPSWindow(t *testing.T) {
	s := New()
	s.frameTimer = time.Now().Add(-2 * time.Second)
	s.frameCounter = 59

	s.Update(time.Millisecond)

	if fps := s.Snapshot().FPS; fps != 60 {
		t.Fatalf("fps = %d, want 60", fps)
	}
}

func TestSnapshotJSON(t *testing.T) {
	s := New()
	s.SetWsClients(2)
	b, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["ws_clients"] != float64(2) {
		t.Fatalf("ws_clients = %v", decoded["ws_clients"])
	}
	if _, ok := decoded["frame_time_ms"]; !ok {
		t.Fatal("frame_time_ms missing")
	}
}

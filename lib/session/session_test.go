package session

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	var zero T
	return zero
}

func TestRequestShutdownOnce(t *testing.T) {
	s := New()
	events := make(chan EventDataShutdown, 4)
	s.AddEventListener(EventShutdown, func(_ *Session, data interface{}) {
		events <- data.(EventDataShutdown)
	})

	if s.ShutdownRequested() {
		t.Fatal("fresh session should not be shutting down")
	}
	if !s.RequestShutdown("escape") {
		t.Fatal("first request should win")
	}
	if s.RequestShutdown("api") {
		t.Fatal("second request should be ignored")
	}
	if !s.ShutdownRequested() {
		t.Fatal("shutdown flag not set")
	}

	ev := waitFor(t, events)
	if ev.Reason != "escape" || ev.Event != EventShutdown {
		t.Fatalf("unexpected event %+v", ev)
	}
	select {
	case ev := <-events:
		t.Fatalf("listener called twice: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConcurrentShutdown(t *testing.T) {
	s := New()
	var wins sync.WaitGroup
	won := make(chan struct{}, 16)
	for i := 0; i < 16; i++ {
		wins.Add(1)
		go func() {
			defer wins.Done()
			if s.RequestShutdown("race") {
				won <- struct{}{}
			}
		}()
	}
	wins.Wait()
	close(won)

	n := 0
	for range won {
		n++
	}
	if n != 1 {
		t.Fatalf("%d callers won the shutdown, want 1", n)
	}
}

func TestShaderReload(t *testing.T) {
	s := New()
	if s.TakeShaderReload() {
		t.Fatal("no reload was requested")
	}

	s.RequestShaderReload()
	s.RequestShaderReload()
	if !s.TakeShaderReload() {
		t.Fatal("reload request lost")
	}
	if s.TakeShaderReload() {
		t.Fatal("reload requests should coalesce")
	}

	events := make(chan EventDataShaderReload, 1)
	s.AddEventListener(EventShaderReload, func(_ *Session, data interface{}) {
		events <- data.(EventDataShaderReload)
	})
	s.ShaderReloaded(0, errors.New("syntax error"))
	ev := waitFor(t, events)
	if ev.Error != "syntax error" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

package session

import (
	"sync"
	"sync/atomic"
)

const (
	EventShutdown     = "shutdown"
	EventShaderReload = "shader-reload"
)

type EventListener func(session *Session, data interface{})

type EventDataShutdown struct {
	Event  string
	Reason string
}

type EventDataShaderReload struct {
	Event   string
	Program uint32
	Error   string `json:",omitempty"`
}

// Session is the state shared between the render loop and the
// goroutines that may ask it to stop or to rebuild its shaders.
type Session struct {
	shutdownRequested atomic.Bool
	reloadPending     atomic.Bool

	listenerMutex sync.Mutex
	listener      map[string][]EventListener
}

func New() *Session {
	return &Session{
		listener: make(map[string][]EventListener),
	}
}

// RequestShutdown asks the render loop to stop. Only the first call
// notifies listeners.
func (s *Session) RequestShutdown(reason string) bool {
	if !s.shutdownRequested.CompareAndSwap(false, true) {
		return false
	}
	s.invoke(EventShutdown, EventDataShutdown{Event: EventShutdown, Reason: reason})
	return true
}

func (s *Session) ShutdownRequested() bool {
	return s.shutdownRequested.Load()
}

// RequestShaderReload marks the shaders as stale. The render loop picks
// this up with TakeShaderReload so GL calls stay on its thread.
func (s *Session) RequestShaderReload() {
	s.reloadPending.Store(true)
}

func (s *Session) TakeShaderReload() bool {
	return s.reloadPending.Swap(false)
}

// ShaderReloaded reports the outcome of a reload to listeners.
func (s *Session) ShaderReloaded(program uint32, err error) {
	event := EventDataShaderReload{Event: EventShaderReload, Program: program}
	if err != nil {
		event.Error = err.Error()
	}
	s.invoke(EventShaderReload, event)
}

func (s *Session) AddEventListener(event string, callback EventListener) {
	s.listenerMutex.Lock()
	defer s.listenerMutex.Unlock()
	s.listener[event] = append(s.listener[event], callback)
}

func (s *Session) invoke(event string, data interface{}) {
	s.listenerMutex.Lock()
	listeners := append([]EventListener(nil), s.listener[event]...)
	s.listenerMutex.Unlock()

	for _, listener := range listeners {
		go listener(s, data)
	}
}

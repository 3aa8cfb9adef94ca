package stats

import (
	"sync"
	"time"
)

type Stats struct {
	Uptime        float64 `json:"uptime"`
	FPS           uint64  `json:"fps"`
	FrameTimeMs   float64 `json:"frame_time_ms"`
	FramesDrawn   uint64  `json:"frames_drawn"`
	ShaderReloads uint64  `json:"shader_reloads"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	WsClients     int     `json:"ws_clients"`
}

// Tracker accumulates Stats from the render loop and hands out copies to
// other goroutines.
type Tracker struct {
	stats Stats

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time

	mutex sync.Mutex
}

func New() *Tracker {
	s := &Tracker{}
	s.start = time.Now()
	s.frameTimer = s.start
	return s
}

// Update is called once per drawn frame with the time the frame took.
func (s *Tracker) Update(dt time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.stats.FramesDrawn++
	s.frameCounter++
	if time.Since(s.frameTimer) > 1*time.Second {
		s.stats.FPS = s.frameCounter
		s.frameCounter = 0
		s.frameTimer = time.Now()
	}

	s.stats.FrameTimeMs = float64(dt.Microseconds()) / 1e3
	s.stats.Uptime = float64(time.Since(s.start).Nanoseconds()) / 1e9
}

func (s *Tracker) SetSize(width, height int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stats.Width = width
	s.stats.Height = height
}

func (s *Tracker) ShaderReloaded() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stats.ShaderReloads++
}

func (s *Tracker) SetWsClients(n int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stats.WsClients = n
}

func (s *Tracker) Snapshot() Stats {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.stats
}

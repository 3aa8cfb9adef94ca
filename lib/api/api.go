package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/learnopengl/hellotriangle/lib/api/docs"
	"github.com/learnopengl/hellotriangle/lib/config"
	"github.com/learnopengl/hellotriangle/lib/log"
	"github.com/learnopengl/hellotriangle/lib/metrics"
	"github.com/learnopengl/hellotriangle/lib/session"
	"github.com/learnopengl/hellotriangle/lib/stats"
)

//	@title			hellotriangle
//	@version		1.0
//	@description	Status and control of a running hellotriangle window.
//	@BasePath		/

type Api struct {
	srv     http.Server
	mux     *http.ServeMux
	cfg     *config.Config
	session *session.Session
	logger  *slog.Logger

	Stats *stats.Tracker

	statsInterval time.Duration

	wsMutex   sync.Mutex
	wsClients map[*websocket.Conn]*sync.Mutex
}

func New(cfg *config.Config, s *session.Session, st *stats.Tracker) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.session = s
	a.Stats = st
	a.logger = log.Module("api")
	a.statsInterval = 2 * time.Second
	a.srv.Handler = a.mux
	if cfg.Api != nil {
		a.srv.Addr = cfg.Api.Bind
	}
	a.wsClients = make(map[*websocket.Conn]*sync.Mutex)

	s.AddEventListener(session.EventShutdown, a.broadcastEvent)
	s.AddEventListener(session.EventShaderReload, a.broadcastEvent)

	a.routes()
	return a
}

func (a *Api) routes() {
	if a.cfg.Api != nil && a.cfg.Api.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.HandleFunc("/api/kill", a.suicide)
	a.mux.HandleFunc("/api/stats", a.getStats)
	a.mux.HandleFunc("/api/config", a.handleConfig)
	a.mux.HandleFunc("/api/ws", a.handleWebsocket)
	a.mux.Handle("/metrics", metrics.Handler())
	a.mux.Handle("/api/docs/", httpSwagger.Handler(httpSwagger.URL("/api/docs/doc.json")))
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

// Shutdown stops the server. Websockets are hijacked connections that
// http.Server no longer tracks, so they are closed separately.
func (a *Api) Shutdown(ctx context.Context) error {
	err := a.srv.Shutdown(ctx)
	a.closeWebsockets()
	return err
}

func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

// @Summary	Close the window and exit
// @Router		/api/kill [post]
// @Tags		control
// @Success	200	{string}	string	"ok"
func (a *Api) suicide(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "Invalid method, only POST supported", http.StatusMethodNotAllowed)
		return
	}
	a.logger.Info("shutting down as per api request")
	a.session.RequestShutdown("api")
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		a.logger.Warn("could not write response", slog.Any("err", err))
	}
}

// @Summary	Render statistics
// @Router		/api/stats [get]
// @Tags		status
// @Produce	json
// @Success	200	{object}	stats.Stats
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(a.Stats.Snapshot())
	if err != nil {
		http.Error(w, fmt.Sprintf("could not encode stats: %s", err), http.StatusInternalServerError)
	}
}

type Config struct {
	Title       string     `json:"title"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	ClearColour [4]float32 `json:"clear_colour"`
	QuadColour  [4]float32 `json:"quad_colour"`
	Vertex      string     `json:"vertex_shader,omitempty"`
	Fragment    string     `json:"fragment_shader,omitempty"`
	Watch       bool       `json:"watch"`
}

// @Summary	Effective configuration
// @Router		/api/config [get]
// @Tags		status
// @Produce	json
// @Success	200	{object}	api.Config
func (a *Api) handleConfig(w http.ResponseWriter, _ *http.Request) {
	result := &Config{
		Title:       a.cfg.Window.Title,
		Width:       a.cfg.Window.Width,
		Height:      a.cfg.Window.Height,
		ClearColour: a.cfg.ClearColour.Vec4(),
		QuadColour:  a.cfg.QuadColour.Vec4(),
	}
	if a.cfg.Shaders != nil {
		result.Vertex = string(a.cfg.Shaders.Vertex)
		result.Fragment = string(a.cfg.Shaders.Fragment)
		result.Watch = a.cfg.Shaders.Watch
	}
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(result)
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't encode config: %s", err), http.StatusInternalServerError)
	}
}

// ServeInBackground starts the server when cfg has an api section and
// returns nil otherwise.
func ServeInBackground(cfg *config.Config, s *session.Session, st *stats.Tracker) *Api {
	if cfg.Api == nil {
		return nil
	}
	theApi := New(cfg, s, st)

	theApi.logger.Info("starting web server on " + cfg.Api.Bind)
	go func() {
		err := theApi.Serve()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			theApi.logger.Error("web server failed", slog.Any("err", err))
			s.RequestShutdown("api server failed")
		}
	}()
	return theApi
}

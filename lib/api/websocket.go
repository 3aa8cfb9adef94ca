package api

import (
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/learnopengl/hellotriangle/lib/session"
)

const writeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

// @Summary	Open websocket for realtime status information
// @Router		/api/ws [get]
// @Param		Upgrade	header	string	true	"websocket"
// @Tags		status
// @Success	101
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		// Upgrade has already replied
		a.logger.Warn("couldn't make websocket", slog.Any("err", err))
		return
	}
	writeMutex := &sync.Mutex{}
	a.addClient(ws, writeMutex)

	done := make(chan struct{})
	go a.websocketWriter(ws, writeMutex, done)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			break
		}
		a.logger.Debug("Received: " + string(msg))
	}

	close(done)
	a.removeClient(ws)
	err = ws.Close()
	if err != nil {
		a.logger.Debug("could not close websocket", slog.Any("err", err))
	}
}

func (a *Api) addClient(ws *websocket.Conn, writeMutex *sync.Mutex) {
	a.wsMutex.Lock()
	defer a.wsMutex.Unlock()
	a.wsClients[ws] = writeMutex
	a.Stats.SetWsClients(len(a.wsClients))
}

func (a *Api) removeClient(ws *websocket.Conn) {
	a.wsMutex.Lock()
	defer a.wsMutex.Unlock()
	delete(a.wsClients, ws)
	a.Stats.SetWsClients(len(a.wsClients))
}

// closeWebsockets ends every read loop in handleWebsocket, which then
// deregisters its client.
func (a *Api) closeWebsockets() {
	a.wsMutex.Lock()
	clients := maps.Clone(a.wsClients)
	a.wsMutex.Unlock()

	for ws := range clients {
		err := ws.Close()
		if err != nil {
			a.logger.Debug("could not close websocket", slog.Any("err", err))
		}
	}
}

func writePacket(ws *websocket.Conn, writeMutex *sync.Mutex, packet []byte) error {
	writeMutex.Lock()
	defer writeMutex.Unlock()
	err := ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err != nil {
		return err
	}
	return ws.WriteMessage(websocket.TextMessage, packet)
}

func (a *Api) websocketWriter(ws *websocket.Conn, writeMutex *sync.Mutex, done <-chan struct{}) {
	ticker := time.NewTicker(a.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			packet, err := json.Marshal(a.Stats.Snapshot())
			if err != nil {
				return
			}
			if err := writePacket(ws, writeMutex, packet); err != nil {
				return
			}
		}
	}
}

// broadcastEvent forwards session events to every connected websocket.
func (a *Api) broadcastEvent(_ *session.Session, data interface{}) {
	packet, err := json.Marshal(data)
	if err != nil {
		a.logger.Warn("could not encode event", slog.Any("err", err))
		return
	}

	a.wsMutex.Lock()
	clients := maps.Clone(a.wsClients)
	a.wsMutex.Unlock()

	for ws, writeMutex := range clients {
		if err := writePacket(ws, writeMutex, packet); err != nil {
			a.logger.Debug("could not send event", slog.Any("err", err))
		}
	}
}

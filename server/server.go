// Package server exposes the engine over WebSocket. Every connection gets
// its own game session; the connection's read loop is the only goroutine
// that touches that session's engine.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nathoo/delvecore/engine"
	"github.com/nathoo/delvecore/types"
)

// Factory builds a new engine for a session. mode is the "mode" query
// parameter of the upgrade request and may be empty.
type Factory func(mode string) (*engine.Engine, error)

// Server tracks live sessions.
type Server struct {
	newGame  Factory
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

type session struct {
	id     uuid.UUID
	engine *engine.Engine
	conn   *connection
}

// New creates a server that starts games with newGame.
func New(newGame Factory) *Server {
	return &Server{
		newGame: newGame,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sessions: make(map[uuid.UUID]*session),
	}
}

// Handler returns the HTTP routes: /ws for games and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWs)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"sessions": s.SessionCount()})
	})
	return mux
}

// SessionCount returns the number of connected players.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ServeWs upgrades the request and plays one game over the socket.
func (s *Server) ServeWs(w http.ResponseWriter, r *http.Request) {
	eng, err := s.newGame(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WS upgrade error: %v", err)
		return
	}

	sess := &session{id: uuid.New(), engine: eng, conn: newConnection(ws)}
	s.register(sess)
	log.Printf("session %s started (%s)", sess.id, eng.State.Condition.Name())

	go sess.conn.writePump()
	sess.reply("hello", snapshotOf(sess.id.String(), eng))

	sess.conn.readPump(sess.handle)

	s.unregister(sess)
	log.Printf("session %s ended after %d turns (%s)", sess.id, eng.State.TurnCount, eng.State.Status)
}

func (s *Server) register(sess *session) {
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
}

func (s *Server) unregister(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
}

// handle decodes one request and answers it.
func (sess *session) handle(data []byte) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		sess.fail(fmt.Errorf("decoding request: %w", err))
		return
	}

	if req.Type == "state" {
		sess.reply("snapshot", snapshotOf(sess.id.String(), sess.engine))
		return
	}

	cmd, err := toCommand(req)
	if err != nil {
		sess.fail(err)
		return
	}

	var res types.Result
	if req.Type == "command" {
		res = sess.engine.Step(req.Input)
	} else {
		res = sess.engine.Do(cmd)
	}

	payload := ResultPayload{
		Output:   res.Output,
		Consumed: res.Consumed,
		Status:   res.Status.String(),
		State:    snapshotOf(sess.id.String(), sess.engine),
	}
	if cmd.Kind == types.CmdMove {
		payload.Move = res.Move.String()
	}
	sess.reply("result", payload)
}

// toCommand maps a structured request onto an engine command. "command"
// requests are parsed later by the engine and map to CmdNone here.
func toCommand(req Request) (types.Command, error) {
	switch req.Type {
	case "command":
		return types.Command{}, nil
	case "move":
		return types.Command{Kind: types.CmdMove, DX: req.DX, DY: req.DY}, nil
	case "pickup":
		return types.Command{Kind: types.CmdPickup}, nil
	case "use":
		if req.Slot < 1 {
			return types.Command{}, fmt.Errorf("use: slot must be 1 or more, got %d", req.Slot)
		}
		return types.Command{Kind: types.CmdUse, Slot: req.Slot - 1}, nil
	case "inventory":
		return types.Command{Kind: types.CmdInventory}, nil
	case "look":
		return types.Command{Kind: types.CmdLook}, nil
	default:
		return types.Command{}, fmt.Errorf("unknown request type %q", req.Type)
	}
}

func (sess *session) reply(kind string, payload any) {
	msg := Message{Type: kind, Payload: payload, Sender: sess.id.String()}
	if err := sess.conn.sendJSON(msg); err != nil {
		log.Printf("session %s: encoding %s: %v", sess.id, kind, err)
	}
}

func (sess *session) fail(err error) {
	sess.reply("error", ErrorPayload{Message: err.Error()})
}

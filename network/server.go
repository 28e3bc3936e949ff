// Package network serves the board to remote clients over websockets.
package network

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/core"
	"github.com/lixenwraith/drop-puzzle/engine"
	"github.com/lixenwraith/drop-puzzle/event"
	"github.com/lixenwraith/drop-puzzle/status"
)

// Metric keys written by the server
const (
	KeyPeers   = "network.peers"
	KeyDropped = "network.dropped"
)

// Loop is the board owner commands are submitted to
type Loop interface {
	Submit(c engine.Command) bool
	Snapshot() (board.Snapshot, bool)
}

// Server accepts websocket clients, forwards their input to the loop and
// broadcasts board snapshots and visual events
//
// HandleEvent runs on the loop goroutine and is the only reader of the board;
// every other method may be called from any goroutine.
type Server struct {
	config   *Config
	loop     Loop
	board    *board.Board
	metrics  *status.Registry
	peers    *PeerManager
	upgrader websocket.Upgrader
	dims     atomic.Pointer[Dims]

	httpServer *http.Server
	listener   net.Listener
	running    atomic.Bool
	wg         sync.WaitGroup

	// Cached metric pointers
	statPeers   *atomic.Int64
	statDropped *atomic.Int64
}

// NewServer creates a server; b is only read on the loop goroutine after construction
// metrics may be nil
func NewServer(cfg *Config, loop Loop, b *board.Board, metrics *status.Registry) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	s := &Server{
		config:  cfg,
		loop:    loop,
		board:   b,
		metrics: metrics,
		peers:   NewPeerManager(cfg),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		statPeers:   metrics.Ints.Get(KeyPeers),
		statDropped: metrics.Ints.Get(KeyDropped),
	}
	snap := b.Snapshot()
	s.dims.Store(&Dims{Cols: snap.Cols, Rows: snap.Rows})
	return s
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /api/board", s.handleBoard)
	return mux
}

// Start binds the configured address and serves in the background
func (s *Server) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return nil // Already running
	}

	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		s.running.Store(false)
		return err
	}
	s.listener = ln
	s.httpServer = &http.Server{Handler: s.Handler()}

	s.wg.Add(1)
	core.Go(func() {
		defer s.wg.Done()
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("network: serve: %v", err)
		}
	})
	log.Printf("network: listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address, empty before Start
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop closes the listener and every peer
func (s *Server) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	// Hijacked websocket connections are not tracked by Shutdown
	s.peers.Close()
	err := s.httpServer.Shutdown(ctx)
	s.wg.Wait()
	return err
}

// PeerCount returns connected client count
func (s *Server) PeerCount() int {
	return s.peers.PeerCount()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("network: upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}

	peer, err := s.peers.Add(conn)
	if err != nil {
		message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error())
		conn.WriteMessage(websocket.CloseMessage, message)
		conn.Close()
		return
	}
	s.statPeers.Add(1)
	log.Printf("network: peer %s connected from %s", peer.ID, peer.Addr)

	snap, ok := s.loop.Snapshot()
	if !ok {
		s.peers.Remove(peer)
		s.statPeers.Add(-1)
		return
	}
	s.send(peer, welcomeMessage{Type: MsgWelcome, ID: peer.ID.String(), Board: snap})

	core.Go(func() { peer.writeLoop(s.config) })
	peer.readLoop(s.config, s.handleMessage)

	// Release any drag the peer left open so the session cannot stick
	for id := range peer.pointers {
		s.loop.Submit(engine.PointerUp(id))
	}
	s.peers.Remove(peer)
	s.statPeers.Add(-1)
	log.Printf("network: peer %s disconnected", peer.ID)
}

// handleMessage runs on the peer's read goroutine
func (s *Server) handleMessage(p *Peer, data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.send(p, errorMessage{Type: MsgError, Error: "malformed message: " + err.Error()})
		return
	}

	cmd, err := decodeCommand(msg, p.Slot, *s.dims.Load())
	if err != nil {
		s.send(p, errorMessage{Type: MsgError, Error: err.Error()})
		return
	}

	id := boardPointer(p.Slot, msg.Pointer)
	switch msg.Type {
	case MsgPointerDown:
		p.pointers[id] = struct{}{}
	case MsgPointerUp:
		delete(p.pointers, id)
	}
	s.loop.Submit(cmd)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loop.Snapshot()
	if !ok {
		http.Error(w, "board unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Board   board.Snapshot `json:"board"`
		Peers   int            `json:"peers"`
		Metrics map[string]any `json:"metrics"`
	}{snap, s.peers.PeerCount(), s.metrics.Snapshot()})
}

// send encodes v for a single peer
func (s *Server) send(p *Peer, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("network: encode %T: %v", v, err)
		return
	}
	p.Send(data)
}

// broadcast encodes v once for every peer
func (s *Server) broadcast(v any) {
	if s.peers.PeerCount() == 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("network: encode %T: %v", v, err)
		return
	}
	if n := s.peers.Broadcast(data); n > 0 {
		s.statDropped.Add(int64(n))
		log.Printf("network: dropped %d slow peers", n)
	}
}

// EventTypes returns the events mirrored to clients
func (s *Server) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventBoardChanged,
		event.EventBoardResized,
		event.EventModeChanged,
		event.EventDropSwapped,
		event.EventDropPushed,
		event.EventCascadeStart,
		event.EventGroupFade,
		event.EventDropFall,
		event.EventCascadeRound,
		event.EventCascadeComplete,
	}
}

// HandleEvent broadcasts a snapshot on board changes and forwards visual events
func (s *Server) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventBoardChanged:
		snap := s.board.Snapshot()
		s.dims.Store(&Dims{Cols: snap.Cols, Rows: snap.Rows})
		s.broadcast(snapshotMessage{Type: MsgSnapshot, Board: snap})
		return
	case event.EventBoardResized:
		if p, ok := ev.Payload.(*event.BoardResizedPayload); ok {
			s.dims.Store(&Dims{Cols: p.Cols, Rows: p.Rows})
		}
	}
	s.broadcast(eventMessage{Type: MsgEvent, Name: event.GetEventName(ev.Type), Payload: ev.Payload})
}

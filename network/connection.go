package network

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrMaxPeers is returned when the peer limit is reached
var ErrMaxPeers = errors.New("max peers reached")

// Peer represents one websocket client
type Peer struct {
	ID       uuid.UUID
	Slot     int // pointer namespace, never 0
	Addr     string
	LastSeen atomic.Int64 // UnixNano

	conn *websocket.Conn

	// Send queue
	sendCh chan []byte

	// Board pointers currently held down; read loop only
	pointers map[int]struct{}

	// Lifecycle
	closeCh   chan struct{}
	closeOnce sync.Once
}

// newPeer creates a peer from an upgraded connection
func newPeer(slot int, conn *websocket.Conn, sendQueueSize int) *Peer {
	p := &Peer{
		ID:       uuid.New(),
		Slot:     slot,
		Addr:     conn.RemoteAddr().String(),
		conn:     conn,
		sendCh:   make(chan []byte, sendQueueSize),
		pointers: make(map[int]struct{}),
		closeCh:  make(chan struct{}),
	}
	p.LastSeen.Store(time.Now().UnixNano())
	return p
}

// Send queues an encoded message for transmission
// Returns false if the peer is closed or its queue is full
func (p *Peer) Send(data []byte) bool {
	select {
	case <-p.closeCh:
		return false
	default:
	}

	select {
	case p.sendCh <- data:
		return true
	default:
		return false // Queue full
	}
}

// closeGrace bounds the close handshake write
const closeGrace = time.Second

// Close initiates shutdown; safe to call from any goroutine
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
		// WriteControl may run concurrently with the write loop
		p.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeGrace))
		p.conn.Close()
	})
}

// Done is closed once the peer is closed
func (p *Peer) Done() <-chan struct{} {
	return p.closeCh
}

// readLoop reads messages until the connection fails
func (p *Peer) readLoop(cfg *Config, handler func(*Peer, []byte)) {
	defer p.Close()

	p.conn.SetReadLimit(cfg.MaxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	p.conn.SetPongHandler(func(string) error {
		p.LastSeen.Store(time.Now().UnixNano())
		return p.conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		p.LastSeen.Store(time.Now().UnixNano())
		p.conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
		handler(p, data)
	}
}

// writeLoop sends queued messages and heartbeats
func (p *Peer) writeLoop(cfg *Config) {
	defer p.Close()

	heartbeat := time.NewTicker(cfg.HeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-p.closeCh:
			return
		case data := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-heartbeat.C:
			p.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// PeerManager handles multiple peer connections
type PeerManager struct {
	mu       sync.RWMutex
	peers    map[uuid.UUID]*Peer
	nextSlot atomic.Int64
	maxPeers int
	config   *Config
}

// NewPeerManager creates a peer manager
func NewPeerManager(cfg *Config) *PeerManager {
	return &PeerManager{
		peers:    make(map[uuid.UUID]*Peer),
		maxPeers: cfg.MaxPeers,
		config:   cfg,
	}
}

// Add registers a peer for an upgraded connection
func (pm *PeerManager) Add(conn *websocket.Conn) (*Peer, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if len(pm.peers) >= pm.maxPeers {
		return nil, ErrMaxPeers
	}

	peer := newPeer(int(pm.nextSlot.Add(1)), conn, pm.config.SendQueueSize)
	pm.peers[peer.ID] = peer
	return peer, nil
}

// Remove forgets a peer and closes it
func (pm *PeerManager) Remove(p *Peer) {
	pm.mu.Lock()
	delete(pm.peers, p.ID)
	pm.mu.Unlock()
	p.Close()
}

// Broadcast queues data for every peer
// Peers whose queue is full are closed; returns how many were dropped
func (pm *PeerManager) Broadcast(data []byte) int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	dropped := 0
	for _, peer := range pm.peers {
		if !peer.Send(data) {
			peer.Close()
			dropped++
		}
	}
	return dropped
}

// PeerCount returns current connected peer count
func (pm *PeerManager) PeerCount() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Close disconnects all peers
func (pm *PeerManager) Close() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	for _, peer := range pm.peers {
		peer.Close()
	}
	pm.peers = make(map[uuid.UUID]*Peer)
}

package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"DotWorld/internal/state"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// FramesPath is where a mirror serves its websocket feed.
const FramesPath = "/frames"

const writeWait = 2 * time.Second

// Envelope is one message on the spectator feed.
type Envelope struct {
	Session string      `json:"session"`
	Frame   state.Frame `json:"frame"`
}

// Mirror broadcasts the host's frames to read-only spectators. Publish is
// safe to call from the UI goroutine; it never blocks on the network.
type Mirror struct {
	Session string

	upgrader websocket.Upgrader

	// mu guards peers and serializes writes to them.
	mu    sync.Mutex
	peers map[*websocket.Conn]struct{}

	latestMu sync.Mutex
	latest   *state.Frame
	notify   chan struct{}
}

func NewMirror() *Mirror {
	return &Mirror{
		Session: uuid.NewString(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers:  make(map[*websocket.Conn]struct{}),
		notify: make(chan struct{}, 1),
	}
}

// Publish records f as the latest frame. Frames published faster than they
// can be sent are coalesced; spectators always converge on the newest one.
func (m *Mirror) Publish(f state.Frame) {
	m.latestMu.Lock()
	m.latest = &f
	m.latestMu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

func (m *Mirror) encodeLatest() ([]byte, bool) {
	m.latestMu.Lock()
	f := m.latest
	m.latestMu.Unlock()
	if f == nil {
		return nil, false
	}
	data, err := json.Marshal(Envelope{Session: m.Session, Frame: *f})
	if err != nil {
		log.Printf("[MIRROR] Encoding frame %d: %v", f.Seq, err)
		return nil, false
	}
	return data, true
}

// Run delivers published frames until ctx is done, then drops every peer.
func (m *Mirror) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return
		case <-m.notify:
			m.broadcast()
		}
	}
}

func (m *Mirror) broadcast() {
	data, ok := m.encodeLatest()
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.peers {
		if err := send(conn, data); err != nil {
			log.Printf("[MIRROR] Dropping %s: %v", conn.RemoteAddr(), err)
			conn.Close()
			delete(m.peers, conn)
		}
	}
}

func send(conn *websocket.Conn, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (m *Mirror) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.peers {
		conn.Close()
		delete(m.peers, conn)
	}
}

// ServeHTTP upgrades a spectator, sends it the latest frame and keeps it
// registered until it disconnects.
func (m *Mirror) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[MIRROR] Upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	addr := conn.RemoteAddr().String()

	m.mu.Lock()
	if data, ok := m.encodeLatest(); ok {
		if err := send(conn, data); err != nil {
			m.mu.Unlock()
			log.Printf("[MIRROR] Initial frame to %s failed: %v", addr, err)
			conn.Close()
			return
		}
	}
	m.peers[conn] = struct{}{}
	m.mu.Unlock()
	log.Printf("[MIRROR] Spectator connected from %s", addr)

	// Spectators are read-only; reading only detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	m.mu.Lock()
	delete(m.peers, conn)
	m.mu.Unlock()
	conn.Close()
	log.Printf("[MIRROR] Spectator %s disconnected", addr)
}

// Peers returns the number of connected spectators.
func (m *Mirror) Peers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.peers)
}

// Listen binds addr for the feed. Binding before Serve lets callers
// report a taken port before they hand out a share link.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("mirror listen on %s: %w", addr, err)
	}
	return ln, nil
}

// Serve serves the feed on ln until ctx is done. It closes ln.
func (m *Mirror) Serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle(FramesPath, m)
	srv := &http.Server{Handler: mux}

	go m.Run(ctx)
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	log.Printf("[MIRROR] Serving session %s on %s%s", m.Session, ln.Addr(), FramesPath)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mirror server: %w", err)
	}
	return nil
}

// ListenAndServe serves the feed on addr until ctx is done.
func (m *Mirror) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := Listen(addr)
	if err != nil {
		return err
	}
	return m.Serve(ctx, ln)
}

// Watch connects to the mirror at addr (host:port) and calls onFrame for
// every frame newer than the last one seen, until ctx is done or the host
// goes away.
func Watch(ctx context.Context, addr string, onFrame func(Envelope)) error {
	url := "ws://" + addr + FramesPath
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	var session string
	var lastSeq uint64
	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read from %s: %w", addr, err)
		}
		if env.Session == session && env.Frame.Seq <= lastSeq {
			continue
		}
		session, lastSeq = env.Session, env.Frame.Seq
		onFrame(env)
	}
}

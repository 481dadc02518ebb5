package net

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"DotWorld/internal/state"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startMirror(t *testing.T) (*Mirror, string) {
	t.Helper()
	m := NewMirror()
	ctx, cancel := context.WithCancel(context.Background())
	go m.Run(ctx)

	srv := httptest.NewServer(m)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return m, strings.TrimPrefix(srv.URL, "http://")
}

func dial(t *testing.T, addr string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+FramesPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func frameAt(seq uint64, x float32) state.Frame {
	return state.Frame{
		Seq:      seq,
		Dots:     []state.Dot{{X: x, Y: x, Radius: state.DefaultRadius, Selected: true}},
		Pointer:  state.Point{X: x, Y: x},
		Phase:    state.Dragging,
		Selected: 1,
	}
}

func TestMirrorSendsLatestOnConnect(t *testing.T) {
	m, addr := startMirror(t)
	m.Publish(frameAt(1, 10))
	m.Publish(frameAt(2, 20))

	conn := dial(t, addr)
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))
	assert.Equal(t, m.Session, env.Session)
	require.Len(t, env.Frame.Dots, 1)
	assert.Equal(t, float32(20), env.Frame.Dots[0].X)
	assert.Equal(t, state.Dragging, env.Frame.Phase)
}

func TestMirrorBroadcastsToPeers(t *testing.T) {
	m, addr := startMirror(t)
	a := dial(t, addr)
	b := dial(t, addr)
	require.Eventually(t, func() bool { return m.Peers() == 2 }, 5*time.Second, 10*time.Millisecond)

	m.Publish(frameAt(1, 42))
	for _, conn := range []*websocket.Conn{a, b} {
		var env Envelope
		require.NoError(t, conn.ReadJSON(&env))
		require.Len(t, env.Frame.Dots, 1)
		assert.Equal(t, float32(42), env.Frame.Dots[0].X)
	}
}

func TestMirrorForgetsDisconnectedPeers(t *testing.T) {
	m, addr := startMirror(t)
	conn := dial(t, addr)
	require.Eventually(t, func() bool { return m.Peers() == 1 }, 5*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return m.Peers() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestWatchDeliversFramesUntilCancelled(t *testing.T) {
	m, addr := startMirror(t)
	m.Publish(frameAt(1, 1))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []Envelope
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(ctx, addr, func(env Envelope) {
			mu.Lock()
			got = append(got, env)
			mu.Unlock()
		})
	}()

	received := func(n int) func() bool {
		return func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(got) >= n
		}
	}
	require.Eventually(t, received(1), 5*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return m.Peers() == 1 }, 5*time.Second, 10*time.Millisecond)

	m.Publish(frameAt(2, 2))
	require.Eventually(t, received(2), 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, m.Session, got[0].Session)
	assert.Less(t, got[0].Frame.Seq, got[1].Frame.Seq)
}

func TestWatchDialFailure(t *testing.T) {
	err := Watch(context.Background(), "127.0.0.1:1", func(Envelope) {})
	assert.Error(t, err)
}

func TestListenRejectsTakenPort(t *testing.T) {
	ln, err := Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, err = Listen(ln.Addr().String())
	assert.Error(t, err)
}

func TestServeOnListenerUntilCancelled(t *testing.T) {
	ln, err := Listen("127.0.0.1:0")
	require.NoError(t, err)

	m := NewMirror()
	m.Publish(frameAt(1, 7))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- m.Serve(ctx, ln) }()

	conn := dial(t, ln.Addr().String())
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))
	assert.Equal(t, uint64(1), env.Frame.Seq)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

package transport_test

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/momentics/netcore/api"
	"github.com/momentics/netcore/transport"
)

// recordingHandler captures every callback invocation for assertions.
type recordingHandler struct {
	api.NoopHandler

	mu       sync.Mutex
	received [][]byte
	connected bool
	disconnected bool
	emptyCount int
	errs     []error

	receivedCh chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{receivedCh: make(chan struct{}, 16)}
}

func (h *recordingHandler) OnConnected(any) {
	h.mu.Lock()
	h.connected = true
	h.mu.Unlock()
}

func (h *recordingHandler) OnDisconnected(any) {
	h.mu.Lock()
	h.disconnected = true
	h.mu.Unlock()
}

func (h *recordingHandler) OnReceived(_ any, data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	h.mu.Lock()
	h.received = append(h.received, cp)
	h.mu.Unlock()
	h.receivedCh <- struct{}{}
}

func (h *recordingHandler) OnEmpty(any) {
	h.mu.Lock()
	h.emptyCount++
	h.mu.Unlock()
}

func (h *recordingHandler) OnError(_ any, _ api.ErrorKind, err error) {
	h.mu.Lock()
	h.errs = append(h.errs, err)
	h.mu.Unlock()
}

func (h *recordingHandler) snapshotReceived() [][]byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([][]byte, len(h.received))
	copy(out, h.received)
	return out
}

func waitFor(t *testing.T, ch <-chan struct{}, n int, timeout time.Duration) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(timeout):
			t.Fatalf("timed out waiting for event %d/%d", i+1, n)
		}
	}
}

func TestTcpSessionEchoesHelloExactly(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	h := newRecordingHandler()
	sess := transport.NewTcpSession(serverConn, h)
	sess.Start()

	if _, err := clientConn.Write([]byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFor(t, h.receivedCh, 1, 2*time.Second)

	got := h.snapshotReceived()
	if len(got) != 1 || string(got[0]) != "hello" {
		t.Fatalf("got %q, want [\"hello\"]", got)
	}

	sess.Disconnect()
	if !sess.LocallyInitiatedDisconnect() {
		t.Fatal("expected locally-initiated disconnect")
	}
	if sess.State() != api.SessionDisconnected {
		t.Fatalf("state = %v, want Disconnected", sess.State())
	}
}

func TestTcpSessionSendAsyncPreservesFIFOOrder(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	h := newRecordingHandler()
	sess := transport.NewTcpSession(serverConn, h)
	sess.Start()
	defer sess.Disconnect()

	go func() {
		sess.SendAsync([]byte("b1"))
		sess.SendAsync([]byte("b2"))
		sess.SendAsync([]byte("b3"))
	}()

	buf := make([]byte, 6)
	n, err := readFull(clientConn, buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(buf[:n]) != "b1b2b3" {
		t.Fatalf("got %q, want concatenation in FIFO order", buf[:n])
	}
}

func readFull(c net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := c.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func TestTcpSessionSendAsyncRejectedWhenNotConnected(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	h := newRecordingHandler()
	sess := transport.NewTcpSession(serverConn, h)
	// Never started: state stays Created.
	if sess.SendAsync([]byte("x")) {
		t.Fatal("expected SendAsync to reject on a non-connected session")
	}
}

// File: transport/session.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// TcpSession is one connected peer's TCP I/O context (spec.md §4.2):
// identity, state machine, receive buffer, and a FIFO send queue drained
// by a dedicated goroutine. Grounded on the teacher's
// protocol/connection.go (recvLoop/sendLoop goroutine pair, atomic
// counters, done-channel/CAS shutdown) generalized from WebSocket frames
// to raw byte spans, and on internal/ringqueue for FIFO ordering
// (spec.md §5 "the library guarantees FIFO transmission order of
// successive sendAsync calls").

package transport

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/momentics/netcore/api"
	"github.com/momentics/netcore/buffer"
	"github.com/momentics/netcore/internal/ringqueue"
	"github.com/momentics/netcore/uid"
)

const defaultRecvChunk = 64 * 1024

// TcpSession is one TCP peer: owns the socket, a FIFO send queue, a
// receive cache, and drives the Created->Connecting->Connected->
// Disconnecting->Disconnected state machine (spec.md §3).
type TcpSession struct {
	id      uid.UID
	conn    net.Conn
	handler api.Handler
	table   *SessionTable

	state int32 // api.SessionState, accessed atomically

	sendQ        *ringqueue.Queue
	sendWake     chan struct{}
	sendInFlight int32

	recvBuf *buffer.Cache

	closeOnce      sync.Once
	disconnectSelf int32 // 1 once disconnect() has been initiated locally

	done chan struct{}

	bytesSent     int64
	bytesReceived int64
}

// NewTcpSession wraps an established net.Conn as a TcpSession. The
// session is in SessionCreated state until Start is called.
func NewTcpSession(conn net.Conn, handler api.Handler) *TcpSession {
	if handler == nil {
		handler = api.NoopHandler{}
	}
	return &TcpSession{
		id:      uid.New(),
		conn:    conn,
		handler: handler,
		sendQ:   ringqueue.New(),
		sendWake: make(chan struct{}, 1),
		recvBuf:  buffer.NewWithCapacity(defaultRecvChunk),
		done:     make(chan struct{}),
		state:    int32(api.SessionCreated),
	}
}

// ID returns the session's stable 128-bit identifier.
func (s *TcpSession) ID() uid.UID { return s.id }

// State returns the current transport state.
func (s *TcpSession) State() api.SessionState {
	return api.SessionState(atomic.LoadInt32(&s.state))
}

func (s *TcpSession) setState(st api.SessionState) {
	atomic.StoreInt32(&s.state, int32(st))
}

// BindTable associates the session with its server's session table so
// disconnect can remove it, keeping the "present iff Connected"
// invariant. Called by TcpServer (and tlsnet.SslServer) before Start;
// sessions produced by TcpClient are not bound to a table.
func (s *TcpSession) BindTable(t *SessionTable) { s.table = t }

// RemoteEndpoint reports the peer address, or the zero Endpoint if the
// connection has no remote address (e.g. already closed).
func (s *TcpSession) RemoteEndpoint() Endpoint {
	if s.conn == nil || s.conn.RemoteAddr() == nil {
		return Endpoint{}
	}
	return EndpointFromAddr(s.conn.RemoteAddr())
}

// Start transitions Created->Connecting->Connected, fires the matching
// handler callbacks, registers in the session table, and launches the
// receive and send-drain loops. Start is not idempotent; call it once.
func (s *TcpSession) Start() {
	s.setState(api.SessionConnecting)
	s.handler.OnConnecting(s)

	s.setState(api.SessionConnected)
	if s.table != nil {
		s.table.Put(s)
	}
	s.handler.OnConnected(s)

	go s.recvLoop()
	go s.sendLoop()
}

// Send writes p synchronously to the socket and returns the number of
// bytes the OS accepted. Returns (0, err) if the session is not
// connected (spec.md §4.2: lifecycle errors never panic, they report a
// zero/false result).
func (s *TcpSession) Send(p []byte) (int, error) {
	if s.State() != api.SessionConnected {
		return 0, api.NewError(api.KindLifecycle, api.ErrCodeInternal, "send on non-connected session")
	}
	n, err := s.conn.Write(p)
	if n > 0 {
		atomic.AddInt64(&s.bytesSent, int64(n))
	}
	if err != nil {
		s.reportTransportError(err)
		return n, err
	}
	return n, nil
}

// SendAsync enqueues p for asynchronous transmission, preserving FIFO
// order across calls from a single thread. Returns false if the session
// is not connected or is shutting down.
func (s *TcpSession) SendAsync(p []byte) bool {
	if s.State() != api.SessionConnected {
		return false
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	s.sendQ.PushBack(cp)
	select {
	case s.sendWake <- struct{}{}:
	default:
	}
	return true
}

// Disconnect synchronously tears the session down. Idempotent: only the
// first caller runs cleanup, subsequent calls are no-ops.
func (s *TcpSession) Disconnect() error {
	return s.disconnect(true)
}

// DisconnectAsync requests teardown without blocking for socket close to
// complete: the same idempotent teardown as Disconnect runs on a new
// goroutine and DisconnectAsync returns immediately.
func (s *TcpSession) DisconnectAsync() {
	go s.disconnect(true)
}

func (s *TcpSession) disconnect(initiatedLocally bool) error {
	var err error
	s.closeOnce.Do(func() {
		if initiatedLocally {
			atomic.StoreInt32(&s.disconnectSelf, 1)
		}
		s.setState(api.SessionDisconnecting)
		s.handler.OnDisconnecting(s)

		close(s.done)
		err = s.conn.Close()

		if s.table != nil {
			s.table.Delete(s.id)
		}
		s.setState(api.SessionDisconnected)
		s.handler.OnDisconnected(s)
	})
	return err
}

func (s *TcpSession) reportTransportError(err error) {
	s.handler.OnError(s, api.KindTransport, err)
	go s.disconnect(false)
}

// recvLoop blocks on conn.Read, appending each chunk to the receive
// cache and handing the exact new region to onReceived as a view
// (spec.md §4.2: "never copied"). Exits on read error or zero-byte
// read (peer half-close).
func (s *TcpSession) recvLoop() {
	chunk := make([]byte, defaultRecvChunk)
	for {
		select {
		case <-s.done:
			return
		default:
		}

		n, err := s.conn.Read(chunk)
		if n > 0 {
			before := s.recvBuf.Size()
			s.recvBuf.Append(chunk[:n])
			atomic.AddInt64(&s.bytesReceived, int64(n))
			s.handler.OnReceived(s, s.recvBuf.Slice(before, before+n))
		}
		if err != nil {
			if s.State() == api.SessionConnected {
				s.reportTransportError(err)
			}
			return
		}
	}
}

// sendLoop drains the FIFO queue one entry at a time, maintaining the
// single-in-flight-write discipline of spec.md §4.2: a write completes
// (onSent fires) before the next queued entry is attempted. onEmpty
// fires only once both the queue and the in-flight write are empty.
func (s *TcpSession) sendLoop() {
	for {
		item, ok := s.sendQ.PopFront()
		if !ok {
			select {
			case <-s.done:
				return
			case <-s.sendWake:
				continue
			}
		}

		atomic.StoreInt32(&s.sendInFlight, 1)
		n, err := s.conn.Write(item)
		atomic.StoreInt32(&s.sendInFlight, 0)
		if n > 0 {
			atomic.AddInt64(&s.bytesSent, int64(n))
		}
		pending := s.sendQ.Len()
		s.handler.OnSent(s, n, pending)
		if err != nil {
			s.reportTransportError(err)
			return
		}
		if pending == 0 {
			s.handler.OnEmpty(s)
		}
	}
}

// Stats exposes byte counters for metrics/control reporting.
func (s *TcpSession) Stats() (bytesIn, bytesOut int64) {
	return atomic.LoadInt64(&s.bytesReceived), atomic.LoadInt64(&s.bytesSent)
}

// LocallyInitiatedDisconnect reports whether this session's teardown was
// triggered by a local Disconnect/DisconnectAsync call rather than a
// peer-closed or error condition (spec.md §4.2: "distinguishes 'we
// initiated' from 'peer closed'").
func (s *TcpSession) LocallyInitiatedDisconnect() bool {
	return atomic.LoadInt32(&s.disconnectSelf) == 1
}

var _ Session = (*TcpSession)(nil)

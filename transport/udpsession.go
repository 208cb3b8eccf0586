// File: transport/udpsession.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// UdpSession adapts the TcpSession I/O contract (spec.md §4.2) to a
// connectionless transport. A UdpSession still gets a stable id and
// passes through the same Created/Connecting/Connected/Disconnecting/
// Disconnected lifecycle so it composes uniformly with the session table
// and multicast. Each session is bound to one remote address: Send and
// SendAsync take no endpoint and write every datagram to that address
// with WriteToUDP instead of a stream write.

package transport

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/momentics/netcore/api"
	"github.com/momentics/netcore/internal/ringqueue"
	"github.com/momentics/netcore/uid"
)

// udpDatagram pairs an outbound payload with its destination; every
// entry a session queues carries that session's own remote address.
type udpDatagram struct {
	payload []byte
	to      *net.UDPAddr
}

// UdpSession is one logical UDP peer: a (local socket, remote address)
// pair sharing the socket with sibling sessions when owned by a
// UdpServer, or exclusively owning it when created by UdpClient.
type UdpSession struct {
	id      uid.UID
	conn    *net.UDPConn // shared for server-owned sessions, exclusive for client sessions
	remote  *net.UDPAddr
	handler api.Handler
	table   *SessionTable

	state int32

	sendQ    *ringqueue.QueueOf[udpDatagram]
	sendWake chan struct{}

	closeOnce sync.Once
	done      chan struct{}

	bytesSent     int64
	bytesReceived int64
}

// newUDPSession constructs a session bound to conn, targeting remote.
func newUDPSession(conn *net.UDPConn, remote *net.UDPAddr, handler api.Handler) *UdpSession {
	if handler == nil {
		handler = api.NoopHandler{}
	}
	return &UdpSession{
		id:       uid.New(),
		conn:     conn,
		remote:   remote,
		handler:  handler,
		sendQ:    ringqueue.NewOf[udpDatagram](),
		sendWake: make(chan struct{}, 1),
		done:     make(chan struct{}),
		state:    int32(api.SessionCreated),
	}
}

// ID returns the session's stable identifier.
func (s *UdpSession) ID() uid.UID { return s.id }

// State returns the current lifecycle state.
func (s *UdpSession) State() api.SessionState {
	return api.SessionState(atomic.LoadInt32(&s.state))
}

func (s *UdpSession) setState(st api.SessionState) { atomic.StoreInt32(&s.state, int32(st)) }

// RemoteEndpoint reports the peer this session targets.
func (s *UdpSession) RemoteEndpoint() Endpoint {
	if s.remote == nil {
		return Endpoint{}
	}
	return EndpointFromAddr(s.remote)
}

// BindTable associates the session with a server's session table.
func (s *UdpSession) BindTable(t *SessionTable) { s.table = t }

// markConnected transitions Created->Connecting->Connected and fires the
// matching callbacks; used both by UdpClient.Connect and by UdpServer on
// first sight of a new peer address.
func (s *UdpSession) markConnected() {
	s.setState(api.SessionConnecting)
	s.handler.OnConnecting(s)
	s.setState(api.SessionConnected)
	if s.table != nil {
		s.table.Put(s)
	}
	s.handler.OnConnected(s)
	go s.sendLoop()
}

// deliver hands a freshly received datagram's payload to the handler.
// Called by the owning UdpClient/UdpServer receive loop.
func (s *UdpSession) deliver(p []byte) {
	atomic.AddInt64(&s.bytesReceived, int64(len(p)))
	s.handler.OnReceived(s, p)
}

// Send writes p synchronously as a single datagram to this session's
// remote endpoint.
func (s *UdpSession) Send(p []byte) (int, error) {
	if s.State() != api.SessionConnected {
		return 0, api.NewError(api.KindLifecycle, api.ErrCodeInternal, "send on non-connected udp session")
	}
	n, err := s.conn.WriteToUDP(p, s.remote)
	if n > 0 {
		atomic.AddInt64(&s.bytesSent, int64(n))
	}
	if err != nil {
		s.reportTransportError(err)
	}
	return n, err
}

// SendAsync enqueues p for asynchronous transmission to this session's
// remote endpoint, preserving FIFO order.
func (s *UdpSession) SendAsync(p []byte) bool {
	if s.State() != api.SessionConnected {
		return false
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	s.sendQ.PushBack(udpDatagram{payload: cp, to: s.remote})
	select {
	case s.sendWake <- struct{}{}:
	default:
	}
	return true
}

func (s *UdpSession) sendLoop() {
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
		n, err := s.conn.WriteToUDP(item.payload, item.to)
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

// Disconnect idempotently tears the logical session down. For a
// UdpClient session this also closes the underlying socket; for a
// UdpServer-owned session the shared socket stays open and only the
// per-peer bookkeeping is removed.
func (s *UdpSession) Disconnect(closeSocket bool) error {
	var err error
	s.closeOnce.Do(func() {
		s.setState(api.SessionDisconnecting)
		s.handler.OnDisconnecting(s)
		close(s.done)
		if closeSocket {
			err = s.conn.Close()
		}
		if s.table != nil {
			s.table.Delete(s.id)
		}
		s.setState(api.SessionDisconnected)
		s.handler.OnDisconnected(s)
	})
	return err
}

func (s *UdpSession) reportTransportError(err error) {
	s.handler.OnError(s, api.KindTransport, err)
}

// Stats exposes byte counters.
func (s *UdpSession) Stats() (bytesIn, bytesOut int64) {
	return atomic.LoadInt64(&s.bytesReceived), atomic.LoadInt64(&s.bytesSent)
}

var _ Session = (*UdpSession)(nil)

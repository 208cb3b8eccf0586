// File: transport/server.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// TcpServer accepts connections, maintains the session table, and
// multicasts (spec.md §4.3). Grounded on the teacher's
// lowlevel/server/server.go Serve-loop shape and lowlevel/server/run.go
// start/stop sequencing, generalized from the WebSocket-only listener to
// a raw TCP accept loop that hands each accepted conn to a factory
// producing a TcpSession. On Linux the accept loop optionally waits on
// internal/reactor's epoll implementation for listener readiness before
// calling Accept, so a server with zero pending connections costs no
// goroutine wakeups; every other platform falls back to a plain blocking
// Accept loop.

package transport

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/momentics/netcore/api"
	"github.com/momentics/netcore/internal/reactor"
	"github.com/momentics/netcore/uid"
)

// SessionFactory builds the api.Handler for a newly accepted connection.
// Returning nil installs api.NoopHandler{}.
type SessionFactory func(remote Endpoint) api.Handler

// TcpServer accepts TCP connections on a bound Endpoint and manages the
// resulting sessions' table and lifecycle.
type TcpServer struct {
	endpoint Endpoint
	opts     ServerOptions
	factory  SessionFactory

	listener net.Listener
	table    *SessionTable

	state int32 // api.ServerState

	acceptDone chan struct{}
	stopOnce   sync.Once

	react reactor.EventReactor // nil when unsupported on this platform
}

// NewTcpServer constructs a server bound to endpoint; sessions it accepts
// are handed to factory to obtain their handler.
func NewTcpServer(endpoint Endpoint, opts ServerOptions, factory SessionFactory) *TcpServer {
	if factory == nil {
		factory = func(Endpoint) api.Handler { return api.NoopHandler{} }
	}
	return &TcpServer{
		endpoint: endpoint,
		opts:     opts,
		factory:  factory,
		table:    NewSessionTable(opts.ShardCount),
		state:    int32(api.ServerCreated),
	}
}

// State returns the server's lifecycle state.
func (srv *TcpServer) State() api.ServerState {
	return api.ServerState(atomic.LoadInt32(&srv.state))
}

func (srv *TcpServer) setState(st api.ServerState) { atomic.StoreInt32(&srv.state, int32(st)) }

// Sessions returns the server's session table.
func (srv *TcpServer) Sessions() *SessionTable { return srv.table }

// ListenAddr returns the listener's bound address, useful when the
// configured port was 0 (OS-assigned). Returns nil before Start.
func (srv *TcpServer) ListenAddr() *net.TCPAddr {
	if srv.listener == nil {
		return nil
	}
	addr, _ := srv.listener.Addr().(*net.TCPAddr)
	return addr
}

// Start binds the listening socket and begins accepting connections.
func (srv *TcpServer) Start() error {
	srv.setState(api.ServerStarting)

	addr, err := srv.endpoint.ResolveTCP()
	if err != nil {
		srv.setState(api.ServerStopped)
		return api.NewError(api.KindTransport, api.ErrCodeInvalidArgument, err.Error())
	}
	network := networkOrDefault(srv.endpoint.Network, "tcp")
	if srv.opts.DualMode && network == "tcp" {
		network = "tcp"
	}
	ln, err := net.ListenTCP(network, addr)
	if err != nil {
		srv.setState(api.ServerStopped)
		return api.NewError(api.KindTransport, api.ErrCodeInternal, err.Error())
	}
	srv.listener = ln
	srv.acceptDone = make(chan struct{})
	srv.stopOnce = sync.Once{}

	if r, rerr := reactor.New(); rerr == nil {
		if fd, ferr := listenerFD(ln); ferr == nil {
			if regerr := r.Register(fd, 0); regerr == nil {
				srv.react = r
			} else {
				r.Close()
			}
		} else {
			r.Close()
		}
	}

	srv.setState(api.ServerStarted)
	go srv.acceptLoop()
	return nil
}

// acceptLoop runs until the listener is closed by Stop. When a reactor
// is wired, it waits for listener readiness before calling Accept so an
// idle server blocks in epoll_wait rather than in a raw Accept syscall;
// behaviorally identical either way.
func (srv *TcpServer) acceptLoop() {
	defer close(srv.acceptDone)

	events := make([]reactor.Event, 1)
	for {
		if srv.react != nil {
			if _, err := srv.react.Wait(events); err != nil {
				return
			}
		}

		conn, err := srv.listener.Accept()
		if err != nil {
			return
		}
		srv.onAccept(conn)
	}
}

func (srv *TcpServer) onAccept(conn net.Conn) {
	applyTCPOptions(conn, srv.opts)
	remote := EndpointFromAddr(conn.RemoteAddr())
	handler := srv.factory(remote)
	sess := NewTcpSession(conn, handler)
	sess.BindTable(srv.table)
	sess.Start()
}

// Stop marks the server Stopping, disconnects all sessions, closes the
// listener to unblock the accept loop, waits for it to exit, then
// transitions to Stopped. Idempotent.
func (srv *TcpServer) Stop() error {
	var err error
	srv.stopOnce.Do(func() {
		srv.setState(api.ServerStopping)
		srv.DisconnectAll()
		if srv.listener != nil {
			err = srv.listener.Close()
		}
		if srv.acceptDone != nil {
			<-srv.acceptDone
		}
		if srv.react != nil {
			srv.react.Close()
			srv.react = nil
		}
		srv.setState(api.ServerStopped)
	})
	return err
}

// Restart stops then starts the server again, preserving its configured
// endpoint and options.
func (srv *TcpServer) Restart() error {
	if err := srv.Stop(); err != nil {
		return err
	}
	return srv.Start()
}

// DisconnectAll disconnects every currently registered session.
func (srv *TcpServer) DisconnectAll() {
	for _, s := range srv.table.Snapshot() {
		if ts, ok := s.(*TcpSession); ok {
			ts.Disconnect()
		}
	}
}

// FindSession looks a session up by id.
func (srv *TcpServer) FindSession(id uid.UID) (Session, bool) {
	return srv.table.Get(id)
}

// Multicast enumerates a snapshot of the session table and asynchronously
// sends p to every connected member (spec.md §4.2: "unchanged despite
// table mutation: iteration takes a snapshot view").
func (srv *TcpServer) Multicast(p []byte) {
	for _, s := range srv.table.Snapshot() {
		if ts, ok := s.(*TcpSession); ok {
			ts.SendAsync(p)
		}
	}
}

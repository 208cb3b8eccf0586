// File: tlsnet/server.go
// Package tlsnet
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SslServer's accept loop is grounded on transport.TcpServer's shape
// (itself grounded on the teacher's lowlevel/server/server.go), but
// listens with net.ListenTCP and runs tls.Server(conn).Handshake per
// accepted connection, so a handshake failure can be reported as
// api.KindTLS before any session object exists,
// matching spec.md §7's "TLS — handshake/decrypt failure" error kind.

package tlsnet

import (
	"crypto/tls"
	"net"
	"sync"
	"sync/atomic"

	"github.com/momentics/netcore/api"
	"github.com/momentics/netcore/transport"
	"github.com/momentics/netcore/uid"
)

// SessionFactory builds the api.Handler for a newly accepted TLS
// connection, mirroring transport.SessionFactory.
type SessionFactory func(remote transport.Endpoint) api.Handler

// SslServer accepts TLS connections on a bound endpoint, performing the
// handshake before handing the resulting *tls.Conn to a TcpSession.
type SslServer struct {
	endpoint transport.Endpoint
	opts     transport.ServerOptions
	tlsCfg   *tls.Config
	factory  SessionFactory

	listener net.Listener
	table    *transport.SessionTable

	state int32 // api.ServerState

	acceptDone chan struct{}
	stopOnce   sync.Once
}

// NewSslServer constructs a server bound to endpoint using ctx's TLS
// configuration; sessions it accepts are handed to factory to obtain
// their handler.
func NewSslServer(endpoint transport.Endpoint, opts transport.ServerOptions, ctx *SslContext, factory SessionFactory) *SslServer {
	if factory == nil {
		factory = func(transport.Endpoint) api.Handler { return api.NoopHandler{} }
	}
	return &SslServer{
		endpoint: endpoint,
		opts:     opts,
		tlsCfg:   ctx.Config(),
		factory:  factory,
		table:    transport.NewSessionTable(opts.ShardCount),
		state:    int32(api.ServerCreated),
	}
}

func (srv *SslServer) State() api.ServerState { return api.ServerState(atomic.LoadInt32(&srv.state)) }

func (srv *SslServer) setState(st api.ServerState) { atomic.StoreInt32(&srv.state, int32(st)) }

// Sessions returns the server's session table.
func (srv *SslServer) Sessions() *transport.SessionTable { return srv.table }

// Start binds the listening socket (plain TCP, with TLS performed
// per-connection via tls.Server) and begins accepting connections.
func (srv *SslServer) Start() error {
	srv.setState(api.ServerStarting)

	addr, err := srv.endpoint.ResolveTCP()
	if err != nil {
		srv.setState(api.ServerStopped)
		return api.NewError(api.KindTransport, api.ErrCodeInvalidArgument, err.Error())
	}
	ln, err := net.ListenTCP("tcp", addr)
	if err != nil {
		srv.setState(api.ServerStopped)
		return api.NewError(api.KindTransport, api.ErrCodeInternal, err.Error())
	}
	srv.listener = ln
	srv.acceptDone = make(chan struct{})
	srv.stopOnce = sync.Once{}

	srv.setState(api.ServerStarted)
	go srv.acceptLoop()
	return nil
}

func (srv *SslServer) acceptLoop() {
	defer close(srv.acceptDone)
	for {
		conn, err := srv.listener.Accept()
		if err != nil {
			return
		}
		go srv.onAccept(conn)
	}
}

func (srv *SslServer) onAccept(conn net.Conn) {
	remote := transport.EndpointFromAddr(conn.RemoteAddr())
	handler := srv.factory(remote)

	tlsConn := tls.Server(conn, srv.tlsCfg)
	if err := tlsConn.Handshake(); err != nil {
		handler.OnError(nil, api.KindTLS, err)
		tlsConn.Close()
		return
	}

	sess := transport.NewTcpSession(tlsConn, handler)
	sess.BindTable(srv.table)
	sess.Start()
}

// Stop disconnects every session and closes the listener. Idempotent.
func (srv *SslServer) Stop() error {
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
		srv.setState(api.ServerStopped)
	})
	return err
}

// Restart stops then starts the server again.
func (srv *SslServer) Restart() error {
	if err := srv.Stop(); err != nil {
		return err
	}
	return srv.Start()
}

// DisconnectAll disconnects every currently registered session.
func (srv *SslServer) DisconnectAll() {
	for _, s := range srv.table.Snapshot() {
		if ts, ok := s.(*transport.TcpSession); ok {
			ts.Disconnect()
		}
	}
}

// FindSession looks a session up by id.
func (srv *SslServer) FindSession(id uid.UID) (transport.Session, bool) {
	return srv.table.Get(id)
}

// ListenAddr returns the listener's bound address.
func (srv *SslServer) ListenAddr() *net.TCPAddr {
	if srv.listener == nil {
		return nil
	}
	addr, _ := srv.listener.Addr().(*net.TCPAddr)
	return addr
}

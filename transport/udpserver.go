// File: transport/udpserver.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// UdpServer owns a single bound UDP socket shared by every peer session
// it discovers (spec.md §4.2/§4.3): one receive loop demultiplexes
// datagrams by source address, lazily materializing a UdpSession per
// distinct peer so multicast and the session-table invariant still hold
// for a connectionless transport.

package transport

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/momentics/netcore/api"
)

const defaultUDPReadBuf = 64 * 1024

// UdpServer receives datagrams on a bound Endpoint and fans them out to
// per-peer UdpSessions.
type UdpServer struct {
	endpoint Endpoint
	opts     ServerOptions
	factory  func(remote Endpoint) api.Handler

	conn  *net.UDPConn
	table *SessionTable

	peersMu sync.Mutex
	peers   map[string]*UdpSession

	state      int32
	recvDone   chan struct{}
	stopOnce   sync.Once
}

// NewUdpServer constructs a server bound to endpoint; a session's
// handler is produced by factory on first sight of a given peer address.
func NewUdpServer(endpoint Endpoint, opts ServerOptions, factory func(remote Endpoint) api.Handler) *UdpServer {
	if factory == nil {
		factory = func(Endpoint) api.Handler { return api.NoopHandler{} }
	}
	return &UdpServer{
		endpoint: endpoint,
		opts:     opts,
		factory:  factory,
		table:    NewSessionTable(opts.ShardCount),
		peers:    make(map[string]*UdpSession),
		state:    int32(api.ServerCreated),
	}
}

// State returns the server's lifecycle state.
func (srv *UdpServer) State() api.ServerState {
	return api.ServerState(atomic.LoadInt32(&srv.state))
}

// Sessions returns the peer session table.
func (srv *UdpServer) Sessions() *SessionTable { return srv.table }

// ListenAddr returns the bound socket address, useful when the
// configured port was 0. Returns nil before Start.
func (srv *UdpServer) ListenAddr() *net.UDPAddr {
	if srv.conn == nil {
		return nil
	}
	addr, _ := srv.conn.LocalAddr().(*net.UDPAddr)
	return addr
}

// Start binds the UDP socket and begins receiving datagrams.
func (srv *UdpServer) Start() error {
	atomic.StoreInt32(&srv.state, int32(api.ServerStarting))

	addr, err := srv.endpoint.ResolveUDP()
	if err != nil {
		atomic.StoreInt32(&srv.state, int32(api.ServerStopped))
		return api.NewError(api.KindTransport, api.ErrCodeInvalidArgument, err.Error())
	}
	network := networkOrDefault(srv.endpoint.Network, "udp")
	conn, err := net.ListenUDP(network, addr)
	if err != nil {
		atomic.StoreInt32(&srv.state, int32(api.ServerStopped))
		return api.NewError(api.KindTransport, api.ErrCodeInternal, err.Error())
	}
	srv.conn = conn
	srv.recvDone = make(chan struct{})
	srv.stopOnce = sync.Once{}

	atomic.StoreInt32(&srv.state, int32(api.ServerStarted))
	go srv.recvLoop()
	return nil
}

func (srv *UdpServer) recvLoop() {
	defer close(srv.recvDone)
	buf := make([]byte, defaultUDPReadBuf)
	for {
		n, addr, err := srv.conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		sess := srv.peerSession(addr)
		payload := make([]byte, n)
		copy(payload, buf[:n])
		sess.deliver(payload)
	}
}

func (srv *UdpServer) peerSession(addr *net.UDPAddr) *UdpSession {
	key := addr.String()

	srv.peersMu.Lock()
	sess, ok := srv.peers[key]
	if !ok {
		handler := srv.factory(EndpointFromAddr(addr))
		sess = newUDPSession(srv.conn, addr, handler)
		sess.BindTable(srv.table)
		srv.peers[key] = sess
	}
	srv.peersMu.Unlock()

	if !ok {
		sess.markConnected()
	}
	return sess
}

// DisconnectAll tears down every known peer session without closing the
// shared socket.
func (srv *UdpServer) DisconnectAll() {
	srv.peersMu.Lock()
	peers := make([]*UdpSession, 0, len(srv.peers))
	for _, s := range srv.peers {
		peers = append(peers, s)
	}
	srv.peers = make(map[string]*UdpSession)
	srv.peersMu.Unlock()

	for _, s := range peers {
		s.Disconnect(false)
	}
}

// Multicast sends p to every known peer, asynchronously.
func (srv *UdpServer) Multicast(p []byte) {
	for _, s := range srv.table.Snapshot() {
		if us, ok := s.(*UdpSession); ok {
			us.SendAsync(p)
		}
	}
}

// Stop marks the server Stopping, disconnects all peers, closes the
// shared socket to unblock the receive loop, waits for it to exit, then
// transitions to Stopped. Idempotent.
func (srv *UdpServer) Stop() error {
	var err error
	srv.stopOnce.Do(func() {
		atomic.StoreInt32(&srv.state, int32(api.ServerStopping))
		srv.DisconnectAll()
		if srv.conn != nil {
			err = srv.conn.Close()
		}
		if srv.recvDone != nil {
			<-srv.recvDone
		}
		atomic.StoreInt32(&srv.state, int32(api.ServerStopped))
	})
	return err
}

// Restart stops then starts the server again.
func (srv *UdpServer) Restart() error {
	if err := srv.Stop(); err != nil {
		return err
	}
	return srv.Start()
}

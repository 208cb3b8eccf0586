// File: wsnet/server.go
// Package wsnet
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package wsnet

import (
	"net"
	"sync"

	"github.com/momentics/netcore/api"
	"github.com/momentics/netcore/transport"
	"github.com/momentics/netcore/uid"
)

// WsServer accepts TCP connections, performs the server-side RFC 6455
// handshake on each one, and dispatches assembled frames to a
// api.WsHandler. Grounded on the teacher's lowlevel/server/server.go
// facade shape.
type WsServer struct {
	tcp *transport.TcpServer

	mu       sync.RWMutex
	sessions map[uid.UID]*WsSession
}

// NewWsServer constructs a server bound to endpoint; app receives
// handshake/frame events for every session.
func NewWsServer(endpoint transport.Endpoint, opts transport.ServerOptions, app api.WsHandler) *WsServer {
	srv := &WsServer{sessions: make(map[uid.UID]*WsSession)}
	srv.tcp = transport.NewTcpServer(endpoint, opts, func(transport.Endpoint) api.Handler {
		ws := newWsSession(RoleServer, app)
		ws.onRegister = srv.register
		ws.onUnregister = srv.unregister
		return ws
	})
	return srv
}

func (s *WsServer) register(ws *WsSession) {
	s.mu.Lock()
	s.sessions[ws.Tcp().ID()] = ws
	s.mu.Unlock()
}

func (s *WsServer) unregister(ws *WsSession) {
	s.mu.Lock()
	delete(s.sessions, ws.Tcp().ID())
	s.mu.Unlock()
}

// Start binds the listener and begins accepting connections.
func (s *WsServer) Start() error { return s.tcp.Start() }

// Stop disconnects every session and closes the listener. Idempotent.
func (s *WsServer) Stop() error { return s.tcp.Stop() }

// Restart stops then starts the server again.
func (s *WsServer) Restart() error { return s.tcp.Restart() }

// ListenAddr returns the bound address, useful when port 0 was requested.
func (s *WsServer) ListenAddr() *net.TCPAddr { return s.tcp.ListenAddr() }

// Sessions returns the underlying transport session table.
func (s *WsServer) Sessions() *transport.SessionTable { return s.tcp.Sessions() }

// Broadcast sends a TEXT frame asynchronously to every handshaked session.
func (s *WsServer) Broadcast(msg string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ws := range s.sessions {
		ws.SendTextAsync(msg)
	}
}

// BroadcastBinary sends a BINARY frame asynchronously to every handshaked session.
func (s *WsServer) BroadcastBinary(p []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ws := range s.sessions {
		ws.SendBinaryAsync(p)
	}
}

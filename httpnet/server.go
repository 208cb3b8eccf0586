// File: httpnet/server.go
// Package httpnet
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package httpnet

import (
	"net"

	"github.com/momentics/netcore/api"
	"github.com/momentics/netcore/transport"
)

// HttpServer accepts TCP connections and parses HTTP/1.1 requests off
// each one, dispatching completed requests to a Handler. Grounded on
// the teacher's lowlevel/server/server.go facade shape, narrowed to the
// transport+codec concern (no buffer-pool/executor/control plumbing,
// which is out of scope per spec.md §1).
type HttpServer struct {
	tcp *transport.TcpServer
	app Handler
}

// NewHttpServer constructs a server bound to endpoint; app receives every
// fully parsed request. mw wraps app in the given middleware chain,
// outermost first.
func NewHttpServer(endpoint transport.Endpoint, opts transport.ServerOptions, app Handler, mw ...Middleware) *HttpServer {
	chained := NewHandlerChain(app, mw...)
	srv := &HttpServer{app: chained}
	srv.tcp = transport.NewTcpServer(endpoint, opts, func(transport.Endpoint) api.Handler {
		return newHttpSession(RoleServer, chained)
	})
	return srv
}

// Start binds the listener and begins accepting connections.
func (s *HttpServer) Start() error { return s.tcp.Start() }

// Stop disconnects every session and closes the listener. Idempotent.
func (s *HttpServer) Stop() error { return s.tcp.Stop() }

// Restart stops then starts the server again.
func (s *HttpServer) Restart() error { return s.tcp.Restart() }

// ListenAddr returns the bound address, useful when port 0 was requested.
func (s *HttpServer) ListenAddr() *net.TCPAddr { return s.tcp.ListenAddr() }

// Sessions returns the underlying transport session table.
func (s *HttpServer) Sessions() *transport.SessionTable { return s.tcp.Sessions() }

// File: httpnet/session.go
// Package httpnet
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// HttpSession implements transport's api.Handler so it can be installed
// as the handler for a transport.TcpSession: it feeds every received
// byte chunk into an httpmsg parser and fires the application Handler
// once a full message is assembled, then resets the parser so a
// keep-alive connection can carry further pipelined messages.
// Grounded on the teacher's lowlevel/server/handler_chain.go composition
// style; the byte-to-message adaptation itself has no teacher analogue
// since the teacher speaks WebSocket frames, not HTTP/1.1 text.

package httpnet

import (
	"github.com/momentics/netcore/api"
	"github.com/momentics/netcore/httpmsg"
	"github.com/momentics/netcore/transport"
)

// Role distinguishes a session parsing requests (server side) from one
// parsing responses (client side).
type Role int

const (
	RoleServer Role = iota
	RoleClient
)

// HttpSession pairs a transport.TcpSession with an in-progress
// httpmsg.HttpRequest/HttpResponse parse and the application Handler
// it reports completed messages to.
type HttpSession struct {
	role Role
	app  Handler

	tcp *transport.TcpSession

	req  *httpmsg.HttpRequest
	resp *httpmsg.HttpResponse
}

func newHttpSession(role Role, app Handler) *HttpSession {
	s := &HttpSession{role: role, app: app}
	s.resetParser()
	return s
}

func (s *HttpSession) resetParser() {
	switch s.role {
	case RoleServer:
		s.req = httpmsg.NewHttpRequest()
	case RoleClient:
		s.resp = httpmsg.NewHttpResponse()
	}
}

// Tcp returns the underlying transport session, usable for Send/SendAsync.
func (s *HttpSession) Tcp() *transport.TcpSession { return s.tcp }

// Send writes raw wire bytes (typically from httpmsg builders) synchronously.
func (s *HttpSession) Send(p []byte) (int, error) { return s.tcp.Send(p) }

// SendAsync enqueues raw wire bytes for asynchronous, FIFO-ordered delivery.
func (s *HttpSession) SendAsync(p []byte) bool { return s.tcp.SendAsync(p) }

// Disconnect tears down the underlying transport session.
func (s *HttpSession) Disconnect() error { return s.tcp.Disconnect() }

var _ api.Handler = (*HttpSession)(nil)

func (s *HttpSession) OnConnecting(session any) {}

func (s *HttpSession) OnConnected(session any) {
	s.tcp = session.(*transport.TcpSession)
}

func (s *HttpSession) OnDisconnecting(session any) {}

func (s *HttpSession) OnDisconnected(session any) {
	s.NotifyPeerClosed()
}

func (s *HttpSession) OnReceived(session any, data []byte) {
	switch s.role {
	case RoleServer:
		s.feedRequest(data)
	case RoleClient:
		s.feedResponse(data)
	}
}

func (s *HttpSession) feedRequest(data []byte) {
	s.req.Feed(data)
	if s.req.IsErrorSet() {
		s.app.OnError(s, s.req.Err())
		return
	}
	if s.req.Complete() {
		done := s.req
		s.resetParser()
		s.app.OnRequest(s, done)
	}
}

func (s *HttpSession) feedResponse(data []byte) {
	s.resp.Feed(data)
	if s.resp.IsErrorSet() {
		s.app.OnError(s, s.resp.Err())
		return
	}
	if s.resp.Complete() {
		done := s.resp
		s.resetParser()
		s.app.OnResponse(s, done)
	}
}

// NotifyPeerClosed informs a response-delimited-by-close parse that the
// transport observed EOF, matching spec.md §4.4's "terminate ... on peer
// close" clause for responses with no declared Content-Length.
func (s *HttpSession) NotifyPeerClosed() {
	if s.role == RoleClient && s.resp != nil {
		s.resp.CloseNotify()
		if s.resp.Complete() {
			done := s.resp
			s.resetParser()
			s.app.OnResponse(s, done)
		}
	}
}

func (s *HttpSession) OnSent(session any, sent, pending int) {}

func (s *HttpSession) OnEmpty(session any) {}

func (s *HttpSession) OnError(session any, kind api.ErrorKind, err error) {
	s.app.OnError(s, err)
}

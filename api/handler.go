// File: api/handler.go
// Package api defines the capability-interface hooks a session invokes.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Inheritance-based virtual hooks (onConnected, onReceived, ...) are
// expressed here as plain composition: a session owns a Handler, the
// Handler has the shape below. This avoids a cross-module base class and
// lets tests substitute a fake handler freely.

package api

// Handler is the set of lifecycle callbacks a transport session invokes.
// Every method is called; a nil Handler passed to a session constructor
// is replaced with NoopHandler. Implementations typically embed
// NoopHandler and override only what they need.
type Handler interface {
	OnConnecting(session any)
	OnConnected(session any)
	OnDisconnecting(session any)
	OnDisconnected(session any)
	OnReceived(session any, data []byte)
	OnSent(session any, sent, pending int)
	OnEmpty(session any)
	OnError(session any, kind ErrorKind, err error)
}

// NoopHandler implements Handler with no-ops so embedders only override
// the hooks they actually care about.
type NoopHandler struct{}

func (NoopHandler) OnConnecting(any)                       {}
func (NoopHandler) OnConnected(any)                        {}
func (NoopHandler) OnDisconnecting(any)                    {}
func (NoopHandler) OnDisconnected(any)                      {}
func (NoopHandler) OnReceived(any, []byte)                 {}
func (NoopHandler) OnSent(any, int, int)                   {}
func (NoopHandler) OnEmpty(any)                             {}
func (NoopHandler) OnError(any, ErrorKind, error)           {}

// WsHandler is the WebSocket-level counterpart of Handler, invoked once a
// session has completed the RFC 6455 handshake.
type WsHandler interface {
	OnWsReceived(session any, opcode byte, payload []byte)
	OnWsClose(session any, code uint16, reason []byte)
	OnWsPing(session any, payload []byte)
	OnWsPong(session any, payload []byte)
}

// NoopWsHandler implements WsHandler with no-ops.
type NoopWsHandler struct{}

func (NoopWsHandler) OnWsReceived(any, byte, []byte)  {}
func (NoopWsHandler) OnWsClose(any, uint16, []byte)   {}
func (NoopWsHandler) OnWsPing(any, []byte)            {}
func (NoopWsHandler) OnWsPong(any, []byte)            {}

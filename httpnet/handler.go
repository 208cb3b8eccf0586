// File: httpnet/handler.go
// Package httpnet applies the httpmsg codec to transport.TcpSession,
// routing fully parsed requests/responses to application handlers.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package httpnet

import "github.com/momentics/netcore/httpmsg"

// Handler is the application-level counterpart of transport's
// api.Handler: it fires once per fully parsed HTTP message rather than
// once per byte chunk.
type Handler interface {
	// OnRequest fires server-side once a full request has been parsed.
	OnRequest(sess *HttpSession, req *httpmsg.HttpRequest)
	// OnResponse fires client-side once a full response has been parsed.
	OnResponse(sess *HttpSession, resp *httpmsg.HttpResponse)
	// OnError fires on a structural parse violation (spec.md §4.4) and on
	// transport errors reported by the underlying session.
	OnError(sess *HttpSession, err error)
}

// NoopHandler implements Handler with no-ops so embedders only override
// the hooks they actually care about.
type NoopHandler struct{}

func (NoopHandler) OnRequest(*HttpSession, *httpmsg.HttpRequest)   {}
func (NoopHandler) OnResponse(*HttpSession, *httpmsg.HttpResponse) {}
func (NoopHandler) OnError(*HttpSession, error)                    {}

// Middleware augments a Handler, mirroring the teacher's
// lowlevel/server middleware chain but at HTTP-message granularity
// rather than raw-byte granularity.
type Middleware func(Handler) Handler

// NewHandlerChain applies middleware in order: the first in the slice
// is outermost (sees the request/response first).
func NewHandlerChain(base Handler, mw ...Middleware) Handler {
	h := base
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

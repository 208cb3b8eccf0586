// File: tlsnet/session.go
// Package tlsnet
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SslSession is literally a transport.TcpSession wrapping a *tls.Conn:
// since *tls.Conn implements net.Conn, the TCP session's recv/send-loop,
// send queue, and state machine apply unmodified (spec.md §4.2: "TLS
// overlay conforms bit-for-bit to the TCP overlay contract"). This
// package supplies only what is genuinely TLS-specific: context setup,
// the accept/dial sequence, and surfacing handshake failures as
// api.KindTLS rather than api.KindTransport.

package tlsnet

import "github.com/momentics/netcore/transport"

// SslSession is the TLS-overlaid counterpart of transport.TcpSession.
// It IS a TcpSession (embedded, not duplicated) whose underlying
// net.Conn happens to be a *tls.Conn.
type SslSession struct {
	*transport.TcpSession
}

// File: tlsnet/client.go
// Package tlsnet
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package tlsnet

import (
	"crypto/tls"
	"net"
	"time"

	"github.com/momentics/netcore/api"
	"github.com/momentics/netcore/transport"
)

// SslClient dials a TLS connection and wraps it in a TcpSession,
// mirroring transport.TcpClient's outbound contract.
type SslClient struct {
	opts   transport.ClientOptions
	tlsCfg *tls.Config
}

// NewSslClient constructs a client using ctx's TLS configuration for
// every Connect call.
func NewSslClient(opts transport.ClientOptions, ctx *SslContext) *SslClient {
	return &SslClient{opts: opts, tlsCfg: ctx.Config()}
}

// Connect dials endpoint, performs the TLS handshake, and starts a
// TcpSession over the resulting *tls.Conn. A handshake failure is
// reported via api.KindTLS rather than propagated as a bare dial error
// where possible (spec.md §7).
func (c *SslClient) Connect(endpoint transport.Endpoint, handler api.Handler) (*SslSession, error) {
	addr, err := endpoint.ResolveTCP()
	if err != nil {
		return nil, api.NewError(api.KindTransport, api.ErrCodeInvalidArgument, err.Error())
	}
	dialer := &net.Dialer{Timeout: orDefaultDuration(c.opts.ConnectTimeout, 10*time.Second)}
	rawConn, err := dialer.Dial("tcp", addr.String())
	if err != nil {
		return nil, api.NewError(api.KindTransport, api.ErrCodeInternal, err.Error())
	}

	tlsConn := tls.Client(rawConn, c.tlsCfg)
	if err := tlsConn.Handshake(); err != nil {
		tlsConn.Close()
		return nil, api.NewError(api.KindTLS, api.ErrCodeInternal, err.Error())
	}

	sess := transport.NewTcpSession(tlsConn, handler)
	sess.Start()
	return &SslSession{TcpSession: sess}, nil
}

func orDefaultDuration(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

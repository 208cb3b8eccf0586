// File: transport/client.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// TcpClient is the outbound counterpart to TcpSession: same I/O contract,
// dial instead of accept (spec.md §2). Grounded on the teacher's
// lowlevel/client/transport.go dial sequence.

package transport

import (
	"net"

	"github.com/momentics/netcore/api"
)

// TcpClient dials a remote Endpoint and produces a connected TcpSession.
type TcpClient struct {
	opts ClientOptions
}

// NewTcpClient constructs a client with the given dial/socket options.
func NewTcpClient(opts ClientOptions) *TcpClient {
	return &TcpClient{opts: opts}
}

// Connect dials endpoint synchronously and starts the resulting session
// with handler. Blocks until the connection completes or fails.
func (c *TcpClient) Connect(endpoint Endpoint, handler api.Handler) (*TcpSession, error) {
	d := net.Dialer{Timeout: c.opts.ConnectTimeout}
	network := networkOrDefault(endpoint.Network, "tcp")
	conn, err := d.Dial(network, endpoint.String())
	if err != nil {
		return nil, api.NewError(api.KindTransport, api.ErrCodeInternal, err.Error())
	}
	applyTCPOptions(conn, ServerOptions{
		NoDelay:           c.opts.NoDelay,
		KeepAlive:         c.opts.KeepAlive,
		KeepAliveTime:     c.opts.KeepAliveTime,
		ReceiveBufferSize: c.opts.ReceiveBufferSize,
		SendBufferSize:    c.opts.SendBufferSize,
	})

	sess := NewTcpSession(conn, handler)
	sess.Start()
	return sess, nil
}

// ConnectAsync dials in a separate goroutine, invoking done with the
// resulting session (or error) once the dial completes.
func (c *TcpClient) ConnectAsync(endpoint Endpoint, handler api.Handler, done func(*TcpSession, error)) {
	go func() {
		sess, err := c.Connect(endpoint, handler)
		if done != nil {
			done(sess, err)
		}
	}()
}

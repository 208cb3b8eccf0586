// File: transport/udpclient.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// UdpClient dials a remote Endpoint, binding an exclusive local UDP
// socket for this peer, symmetric with TcpClient (spec.md §2).

package transport

import (
	"net"

	"github.com/momentics/netcore/api"
)

// UdpClient produces a connected UdpSession targeting one remote peer.
type UdpClient struct {
	opts ClientOptions
}

// NewUdpClient constructs a client with the given socket options.
func NewUdpClient(opts ClientOptions) *UdpClient {
	return &UdpClient{opts: opts}
}

// Connect binds a local UDP socket and targets endpoint; the returned
// session is already Connected and has its receive loop running.
func (c *UdpClient) Connect(endpoint Endpoint, handler api.Handler) (*UdpSession, error) {
	remote, err := endpoint.ResolveUDP()
	if err != nil {
		return nil, api.NewError(api.KindTransport, api.ErrCodeInvalidArgument, err.Error())
	}
	network := networkOrDefault(endpoint.Network, "udp")
	conn, err := net.ListenUDP(network, nil)
	if err != nil {
		return nil, api.NewError(api.KindTransport, api.ErrCodeInternal, err.Error())
	}
	if c.opts.ReceiveBufferSize > 0 {
		conn.SetReadBuffer(c.opts.ReceiveBufferSize)
	}
	if c.opts.SendBufferSize > 0 {
		conn.SetWriteBuffer(c.opts.SendBufferSize)
	}

	sess := newUDPSession(conn, remote, handler)
	sess.markConnected()
	go sess.recvLoop()
	return sess, nil
}

// recvLoop reads datagrams from this client's exclusive socket and
// delivers them to its single session. Defined here (rather than on
// UdpSession) because only client sessions own their socket exclusively;
// UdpServer sessions share recvLoop duties via UdpServer.recvLoop.
func (s *UdpSession) recvLoop() {
	buf := make([]byte, defaultUDPReadBuf)
	for {
		select {
		case <-s.done:
			return
		default:
		}
		n, _, err := s.conn.ReadFromUDP(buf)
		if n > 0 {
			payload := make([]byte, n)
			copy(payload, buf[:n])
			s.deliver(payload)
		}
		if err != nil {
			if s.State() == api.SessionConnected {
				s.handler.OnError(s, api.KindTransport, err)
			}
			return
		}
	}
}

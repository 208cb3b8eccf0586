// File: transport/address.go
// Package transport implements the session/server transport core of
// spec.md §4.2-§4.3: TCP/UDP sessions, servers, and clients.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import (
	"fmt"
	"net"
)

// Endpoint is an abstract resolution and binding record (spec.md §2): a
// network plus host/port pair that can be resolved or bound without
// committing to a concrete net.Addr implementation up front.
type Endpoint struct {
	Network string // "tcp", "tcp4", "tcp6", "udp", "udp4", "udp6"
	Host    string
	Port    int
}

// NewEndpoint constructs an Endpoint for the given network/host/port.
func NewEndpoint(network, host string, port int) Endpoint {
	return Endpoint{Network: network, Host: host, Port: port}
}

// String renders "host:port".
func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, fmt.Sprintf("%d", e.Port))
}

// ResolveTCP resolves this Endpoint as a *net.TCPAddr.
func (e Endpoint) ResolveTCP() (*net.TCPAddr, error) {
	return net.ResolveTCPAddr(networkOrDefault(e.Network, "tcp"), e.String())
}

// ResolveUDP resolves this Endpoint as a *net.UDPAddr.
func (e Endpoint) ResolveUDP() (*net.UDPAddr, error) {
	return net.ResolveUDPAddr(networkOrDefault(e.Network, "udp"), e.String())
}

func networkOrDefault(network, fallback string) string {
	if network == "" {
		return fallback
	}
	return network
}

// EndpointFromAddr reconstructs an Endpoint from a net.Addr, used to
// surface a UDP datagram's source endpoint to onReceived.
func EndpointFromAddr(addr net.Addr) Endpoint {
	host, portStr, err := net.SplitHostPort(addr.String())
	if err != nil {
		return Endpoint{Network: addr.Network(), Host: addr.String()}
	}
	var port int
	fmt.Sscanf(portStr, "%d", &port)
	return Endpoint{Network: addr.Network(), Host: host, Port: port}
}

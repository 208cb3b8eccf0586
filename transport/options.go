// File: transport/options.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ServerOptions enumerates the socket-level knobs spec.md §4.3 requires a
// TcpServer/UdpServer to expose before binding. Grounded on the teacher's
// transport/tcp/listener.go option set, trimmed of CPU-affinity fields
// (out of scope: see DESIGN.md).

package transport

import "time"

// ServerOptions configures socket behavior shared by TCP and UDP servers.
// TcpServer applies NoDelay, the keepalive fields and the buffer sizes to
// each accepted connection; UdpServer reads only ShardCount.
type ServerOptions struct {
	// NoDelay disables Nagle's algorithm on accepted TCP connections.
	NoDelay bool
	// KeepAlive enables TCP keepalive probing on accepted connections.
	KeepAlive bool
	// KeepAliveTime is the idle duration before the first probe is sent.
	KeepAliveTime time.Duration
	// KeepAliveInterval is the spacing between subsequent probes.
	KeepAliveInterval time.Duration
	// KeepAliveRetry is the number of unacknowledged probes before the
	// connection is considered dead.
	KeepAliveRetry int
	// ReuseAddress names the option to bind to an address in TIME_WAIT.
	// The servers do not apply it to the listening socket.
	ReuseAddress bool
	// ExclusiveAddressUse names the option to reject a bind if another
	// socket already owns the address. The servers do not apply it.
	ExclusiveAddressUse bool
	// DualMode names the option to accept IPv4 and IPv6 on one listener.
	// TcpServer listens on the same network whether or not it is set.
	DualMode bool
	// ReceiveBufferSize sets SO_RCVBUF, 0 leaves the OS default.
	ReceiveBufferSize int
	// SendBufferSize sets SO_SNDBUF, 0 leaves the OS default.
	SendBufferSize int
	// AcceptorBacklog names the pending-connection backlog for listen().
	// TcpServer does not pass it on; the listener uses the Go default.
	AcceptorBacklog int
	// ShardCount controls the session table's shard count; 0 selects the
	// default.
	ShardCount int
}

// DefaultServerOptions returns the conservative defaults the teacher's own
// listener construction used: Nagle's algorithm disabled (favors latency
// over bandwidth for the small, frequent messages typical of this
// library's targets) and keepalive enabled with moderate timings.
func DefaultServerOptions() ServerOptions {
	return ServerOptions{
		NoDelay:           true,
		KeepAlive:         true,
		KeepAliveTime:     15 * time.Second,
		KeepAliveInterval: 5 * time.Second,
		KeepAliveRetry:    3,
		ReuseAddress:      true,
		DualMode:          true,
		AcceptorBacklog:   128,
		ShardCount:        defaultShardCount,
	}
}

// ClientOptions configures socket behavior for outbound connections.
type ClientOptions struct {
	NoDelay           bool
	KeepAlive         bool
	KeepAliveTime     time.Duration
	ConnectTimeout    time.Duration
	ReceiveBufferSize int
	SendBufferSize    int
}

// DefaultClientOptions mirrors DefaultServerOptions' latency bias.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		NoDelay:        true,
		KeepAlive:      true,
		KeepAliveTime:  15 * time.Second,
		ConnectTimeout: 10 * time.Second,
	}
}

// File: transport/sockopts.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Socket option application and the listener-fd extraction used to wire
// an accepted/listening TCP connection into internal/reactor. Grounded
// on the teacher's transport/tcp/listener.go option application and
// transport/tcp/affinity_linux.go's use of SyscallConn to reach a raw fd.

package transport

import (
	"net"
	"syscall"
	"time"
)

// applyTCPOptions applies ServerOptions that map onto *net.TCPConn knobs.
// conn is expected to be a *net.TCPConn (true for everything TcpServer and
// TcpClient produce); anything else is left untouched.
func applyTCPOptions(conn net.Conn, opts ServerOptions) {
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		return
	}
	tc.SetNoDelay(opts.NoDelay)
	if opts.KeepAlive {
		tc.SetKeepAlive(true)
		tc.SetKeepAliveConfig(net.KeepAliveConfig{
			Enable:   true,
			Idle:     orDefault(opts.KeepAliveTime, 15*time.Second),
			Interval: orDefault(opts.KeepAliveInterval, 5*time.Second),
			Count:    opts.KeepAliveRetry,
		})
	} else {
		tc.SetKeepAlive(false)
	}
	if opts.ReceiveBufferSize > 0 {
		tc.SetReadBuffer(opts.ReceiveBufferSize)
	}
	if opts.SendBufferSize > 0 {
		tc.SetWriteBuffer(opts.SendBufferSize)
	}
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// syscallConnProvider is satisfied by *net.TCPListener (and *net.TCPConn,
// *net.UDPConn); it is the standard library's escape hatch to a raw fd.
type syscallConnProvider interface {
	SyscallConn() (syscall.RawConn, error)
}

// listenerFD extracts the raw file descriptor backing a listener so it
// can be registered with internal/reactor. Returns an error if the
// listener doesn't expose one.
func listenerFD(ln net.Listener) (uintptr, error) {
	scp, ok := ln.(syscallConnProvider)
	if !ok {
		return 0, syscall.EINVAL
	}
	raw, err := scp.SyscallConn()
	if err != nil {
		return 0, err
	}
	var fd uintptr
	ctrlErr := raw.Control(func(f uintptr) { fd = f })
	if ctrlErr != nil {
		return 0, ctrlErr
	}
	return fd, nil
}

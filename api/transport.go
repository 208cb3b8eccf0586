// File: api/transport.go
// Author: momentics <momentics@gmail.com>
//
// Socket-level abstractions. The transport, HTTP, and WebSocket sessions
// in this module do not use them: TcpSession holds a net.Conn directly.

package api

// NetConn abstracts a full-duplex network connection, backed by net.Conn
// or a test fake.
type NetConn interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Close() error
	RawFD() uintptr
}

// TransportFeatures advertises what a Transport implementation can do, so
// callers can choose a zero-copy or batched path when available.
type TransportFeatures struct {
	ZeroCopy  bool
	Batch     bool
	NUMAAware bool
}

// Transport is a batched, zero-copy-capable send/receive contract. No
// package in this module implements or consumes it. A single in-flight
// Recv and a single in-flight Send are assumed.
type Transport interface {
	Send(bufs [][]byte) error
	Recv() ([][]byte, error)
	Close() error
	Features() TransportFeatures
}

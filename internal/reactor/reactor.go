// File: internal/reactor/reactor.go
// Package reactor wraps a platform poller as an "OS-level I/O event pump"
// (spec.md §5). In this module only transport.TcpServer's accept loop
// waits on it; session reads and writes run on per-session goroutines.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Grounded on the teacher's reactor/reactor_linux.go (epoll) and
// reactor/reactor_stub.go (unsupported-platform fallback); the Linux
// build tag owns golang.org/x/sys/unix, the SPEC_FULL domain-stack home
// for that dependency.

package reactor

import "errors"

// ErrUnsupportedPlatform is returned by New on platforms without a wired
// accelerated EventReactor implementation.
var ErrUnsupportedPlatform = errors.New("reactor: no accelerated poller on this platform")

// Event is a single readiness notification: Fd is the descriptor that
// became ready, UserData is the low 32 bits of the opaque value passed to
// Register (epoll keeps it beside the fd in the event's data field).
type Event struct {
	Fd       uintptr
	UserData uintptr
}

// EventReactor multiplexes readiness notifications for many descriptors
// behind one blocking Wait call, regardless of the underlying poll
// mechanism (epoll, or none on platforms without an accelerated path).
type EventReactor interface {
	// Register starts watching fd for read/write readiness.
	Register(fd uintptr, userData uintptr) error
	// Unregister stops watching fd.
	Unregister(fd uintptr) error
	// Wait blocks until at least one registered descriptor is ready (or an
	// error occurs), filling events and returning the count written.
	Wait(events []Event) (int, error)
	// Close releases the underlying poller resources.
	Close() error
}

// New constructs the platform EventReactor. Callers that get
// ErrUnsupportedPlatform fall back to plain blocking calls (TcpServer
// then calls Accept directly).
func New() (EventReactor, error) {
	return newReactor()
}

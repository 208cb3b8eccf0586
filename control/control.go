// File: control/control.go
// Package control provides a read-only runtime metrics snapshot for a
// running server, the "control/debug surface" trimmed to what spec.md §6
// ("Configuration") implies a host will want: session count, bytes
// in/out, uptime. Adapted from the teacher's control package, which also
// carried hot-reload hooks, a dynamic config store, and platform debug
// probes — those are teacher-specific operational tooling outside this
// module's domain and are not carried forward (see DESIGN.md).
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package control

import (
	"time"

	"github.com/momentics/netcore/transport"
)

// statser is implemented by transport.TcpSession (and any other session
// type exposing byte counters); matched via type assertion so this
// package never needs to import concrete session types beyond the
// table it already depends on.
type statser interface {
	Stats() (bytesIn, bytesOut int64)
}

// Control snapshots runtime metrics for a single server's session table.
// It holds no mutable state of its own beyond the start time; every
// other value is read fresh from the table on each Snapshot call.
type Control struct {
	table     *transport.SessionTable
	startedAt time.Time
}

// New builds a Control reporting on table, with uptime measured from
// the moment New is called (expected to be the server's Start call).
func New(table *transport.SessionTable) *Control {
	return &Control{table: table, startedAt: time.Now()}
}

// Snapshot is a point-in-time read of a server's runtime metrics.
type Snapshot struct {
	Sessions int
	BytesIn  int64
	BytesOut int64
	Uptime   time.Duration
}

// SessionCount returns the number of sessions currently in the table.
func (c *Control) SessionCount() int { return c.table.Len() }

// Uptime returns the time elapsed since this Control was created.
func (c *Control) Uptime() time.Duration { return time.Since(c.startedAt) }

// BytesInOut sums bytes in/out across every session currently in the
// table that exposes a Stats() method; sessions that don't (none in
// this module, but the type assertion keeps this package decoupled from
// transport's concrete session types) are simply skipped.
func (c *Control) BytesInOut() (in, out int64) {
	for _, s := range c.table.Snapshot() {
		if ss, ok := s.(statser); ok {
			i, o := ss.Stats()
			in += i
			out += o
		}
	}
	return in, out
}

// Snapshot returns a consistent-enough point-in-time read of all three
// metrics in one call.
func (c *Control) Snapshot() Snapshot {
	in, out := c.BytesInOut()
	return Snapshot{
		Sessions: c.SessionCount(),
		BytesIn:  in,
		BytesOut: out,
		Uptime:   c.Uptime(),
	}
}

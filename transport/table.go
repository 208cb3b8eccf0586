// File: transport/table.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SessionTable is the concurrent id -> session mapping required by
// spec.md §3 ("A session is present in its server's table iff its
// transport state is Connected") and §4.3 ("concurrent mapping id ->
// session supporting safe lookup during iteration"). Sharded by a hash
// of all 16 bytes of the session UID to spread lock contention, grounded on
// the teacher's internal/session/store.go sessionManager.

package transport

import (
	"sync"

	"github.com/momentics/netcore/uid"
)

const defaultShardCount = 16

// SessionTable is a sharded, thread-safe id -> Session map.
type SessionTable struct {
	shards []*tableShard
	mask   uint64
}

type tableShard struct {
	mu       sync.RWMutex
	sessions map[uid.UID]Session
}

// Session is the subset of TcpSession/UdpSession behavior the table needs:
// enough to identify and enumerate connected peers without importing the
// concrete session types (avoids an import cycle with the session/server
// files that populate the table).
type Session interface {
	ID() uid.UID
}

// NewSessionTable constructs a table with shardCount shards, rounded up to
// the next power of two; a shardCount of 0 or less selects the default 16.
func NewSessionTable(shardCount int) *SessionTable {
	if shardCount <= 0 {
		shardCount = defaultShardCount
	}
	n := nextPowerOfTwo(shardCount)
	shards := make([]*tableShard, n)
	for i := range shards {
		shards[i] = &tableShard{sessions: make(map[uid.UID]Session)}
	}
	return &SessionTable{shards: shards, mask: uint64(n - 1)}
}

func (t *SessionTable) shardFor(id uid.UID) *tableShard {
	var h uint64
	for _, b := range id {
		h = h*31 + uint64(b)
	}
	return t.shards[h&t.mask]
}

// Put registers s under its ID. Called on the Connecting->Connected
// transition so the table invariant (present iff Connected) holds.
func (t *SessionTable) Put(s Session) {
	sh := t.shardFor(s.ID())
	sh.mu.Lock()
	sh.sessions[s.ID()] = s
	sh.mu.Unlock()
}

// Delete removes the session with the given id, if present. Called on the
// transition into Disconnected.
func (t *SessionTable) Delete(id uid.UID) {
	sh := t.shardFor(id)
	sh.mu.Lock()
	delete(sh.sessions, id)
	sh.mu.Unlock()
}

// Get looks up a session by id.
func (t *SessionTable) Get(id uid.UID) (Session, bool) {
	sh := t.shardFor(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	s, ok := sh.sessions[id]
	return s, ok
}

// Len returns the total number of registered sessions.
func (t *SessionTable) Len() int {
	total := 0
	for _, sh := range t.shards {
		sh.mu.RLock()
		total += len(sh.sessions)
		sh.mu.RUnlock()
	}
	return total
}

// Snapshot returns a point-in-time copy of all registered sessions, so
// multicast iteration is unaffected by concurrent table mutation
// (spec.md §4.2 "Unchanged despite table mutation: iteration takes a
// snapshot view").
func (t *SessionTable) Snapshot() []Session {
	out := make([]Session, 0, defaultShardCount)
	for _, sh := range t.shards {
		sh.mu.RLock()
		for _, s := range sh.sessions {
			out = append(out, s)
		}
		sh.mu.RUnlock()
	}
	return out
}

// Range applies fn to every registered session.
func (t *SessionTable) Range(fn func(Session)) {
	for _, s := range t.Snapshot() {
		fn(s)
	}
}

func nextPowerOfTwo(v int) int {
	n := 1
	for n < v {
		n <<= 1
	}
	return n
}

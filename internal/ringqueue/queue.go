// File: internal/ringqueue/queue.go
// Package ringqueue provides the FIFO send queue backing a transport
// session's send path (spec.md §4.2: "user writes go into a send buffer").
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Grounded on the teacher's internal/concurrency/executor.go, which backs
// its task dispatch queue with github.com/eapache/queue; reused here as
// the ordered queue of pending outbound byte spans for a session.

package ringqueue

import (
	"sync"

	"github.com/eapache/queue"
)

// Queue is a thread-safe FIFO of pending outbound byte slices.
type Queue struct {
	mu sync.Mutex
	q  *queue.Queue
}

// New constructs an empty Queue.
func New() *Queue {
	return &Queue{q: queue.New()}
}

// PushBack enqueues b at the tail, preserving FIFO transmission order for
// successive calls from the same goroutine (spec.md §5 ordering guarantee).
func (s *Queue) PushBack(b []byte) {
	s.mu.Lock()
	s.q.Add(b)
	s.mu.Unlock()
}

// PopFront dequeues and returns the head element, or (nil, false) if empty.
func (s *Queue) PopFront() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.q.Length() == 0 {
		return nil, false
	}
	v := s.q.Remove()
	b, _ := v.([]byte)
	return b, true
}

// Len reports the number of pending entries.
func (s *Queue) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.Length()
}

// Empty reports whether the queue currently has no pending entries.
func (s *Queue) Empty() bool {
	return s.Len() == 0
}

// QueueOf is the generic counterpart of Queue, used where the queued
// element is more than a raw byte span (e.g. a UDP datagram paired with
// its destination address). Backed by the same eapache/queue.Queue,
// which stores elements as interface{} regardless of the wrapper's
// declared element type.
type QueueOf[T any] struct {
	mu sync.Mutex
	q  *queue.Queue
}

// NewOf constructs an empty QueueOf[T].
func NewOf[T any]() *QueueOf[T] {
	return &QueueOf[T]{q: queue.New()}
}

// PushBack enqueues v at the tail.
func (s *QueueOf[T]) PushBack(v T) {
	s.mu.Lock()
	s.q.Add(v)
	s.mu.Unlock()
}

// PopFront dequeues and returns the head element, or the zero value and
// false if empty.
func (s *QueueOf[T]) PopFront() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if s.q.Length() == 0 {
		return zero, false
	}
	v := s.q.Remove()
	t, _ := v.(T)
	return t, true
}

// Len reports the number of pending entries.
func (s *QueueOf[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.Length()
}

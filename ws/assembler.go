// File: ws/assembler.go
// Package ws
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Assembler reconstructs a complete WebSocket message from a sequence of
// TEXT/BINARY/CONTINUATION frames, independent of any interleaved control
// frames (spec.md §4.5: "control frames may interleave within a
// fragmented message and must not alter the fragmented assembly state").
// No direct teacher equivalent exists (the teacher's protocol/connection.go
// dispatches each frame as its own message, without fragment assembly);
// authored from spec.md §4.5 and the fragmentation scenario of §8.

package ws

import "errors"

var (
	ErrUnexpectedContinuation = errors.New("ws: continuation frame with no message in progress")
	ErrNestedMessageStart     = errors.New("ws: new message started before previous one finished")
	ErrReservedOpcode         = errors.New("ws: unrecognized opcode")
)

// Assembler accumulates TEXT/BINARY/CONTINUATION frames into complete
// messages. Feed only data-class frames into it; dispatch control
// frames (IsControlOpcode) directly without calling Feed.
type Assembler struct {
	inProgress bool
	opcode     byte
	payload    []byte
}

// NewAssembler constructs an empty Assembler.
func NewAssembler() *Assembler { return &Assembler{} }

// Feed applies one data-class frame. Returns (true, opcode, message) once
// a FIN frame completes the message; returns (false, 0, nil) while more
// fragments are still expected.
func (a *Assembler) Feed(f *Frame) (complete bool, opcode byte, payload []byte, err error) {
	switch f.Opcode {
	case OpcodeText, OpcodeBinary:
		if a.inProgress {
			return false, 0, nil, ErrNestedMessageStart
		}
		a.inProgress = true
		a.opcode = f.Opcode
		a.payload = append(a.payload[:0], f.Payload...)
	case OpcodeContinuation:
		if !a.inProgress {
			return false, 0, nil, ErrUnexpectedContinuation
		}
		a.payload = append(a.payload, f.Payload...)
	default:
		return false, 0, nil, ErrReservedOpcode
	}

	if !f.Fin {
		return false, 0, nil, nil
	}

	msg := make([]byte, len(a.payload))
	copy(msg, a.payload)
	doneOpcode := a.opcode
	a.inProgress = false
	a.opcode = 0
	a.payload = a.payload[:0]
	return true, doneOpcode, msg, nil
}

// Reset discards any in-progress fragmented message (e.g. after a
// protocol error forces the connection to resynchronize or close).
func (a *Assembler) Reset() {
	a.inProgress = false
	a.opcode = 0
	a.payload = a.payload[:0]
}

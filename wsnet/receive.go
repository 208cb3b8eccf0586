// File: wsnet/receive.go
// Package wsnet
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Blocking receive helpers that internally poll frame completion
// (spec.md §6: "receiveText/receiveBinary (blocking helpers that
// internally poll frame completion)"), layered over the same completed-
// message channel dispatchFrame feeds in session.go.

package wsnet

import (
	"context"
	"errors"

	"github.com/momentics/netcore/ws"
)

// ErrWrongMessageType is returned when the next assembled message does
// not match the opcode the caller asked to block for.
var ErrWrongMessageType = errors.New("wsnet: next message was not of the requested type")

// ReceiveText blocks until a TEXT message is assembled or ctx is done.
func (s *WsSession) ReceiveText(ctx context.Context) (string, error) {
	select {
	case m := <-s.messages:
		if m.opcode != ws.OpcodeText {
			return "", ErrWrongMessageType
		}
		return string(m.payload), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ReceiveBinary blocks until a BINARY message is assembled or ctx is done.
func (s *WsSession) ReceiveBinary(ctx context.Context) ([]byte, error) {
	select {
	case m := <-s.messages:
		if m.opcode != ws.OpcodeBinary {
			return nil, ErrWrongMessageType
		}
		return m.payload, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

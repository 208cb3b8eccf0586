// File: wsnet/send.go
// Package wsnet
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Frame send helpers. Spec.md §4.5/§5: "build the frame into a send
// buffer under a serializing lock... For client→server frames, set
// mask bit and generate a fresh 4-byte mask per frame." sendMu (defined
// in session.go) serializes prepare+write so concurrent senders never
// interleave partial frames on the wire.

package wsnet

import "github.com/momentics/netcore/ws"

func (s *WsSession) maskOutgoing() bool { return s.role == RoleClient }

func (s *WsSession) encodeAndSend(opcode byte, payload []byte, async bool) bool {
	s.sendMu.Lock()
	wire, err := ws.EncodeFrame(&ws.Frame{Fin: true, Opcode: opcode, Payload: payload}, s.maskOutgoing())
	s.sendMu.Unlock()
	if err != nil {
		return false
	}
	s.bytesSent += int64(len(wire))
	if async {
		return s.tcp.SendAsync(wire)
	}
	_, err = s.tcp.Send(wire)
	return err == nil
}

// SendText sends a TEXT frame synchronously.
func (s *WsSession) SendText(msg string) bool { return s.encodeAndSend(ws.OpcodeText, []byte(msg), false) }

// SendTextAsync enqueues a TEXT frame for asynchronous, FIFO-ordered send.
func (s *WsSession) SendTextAsync(msg string) bool {
	return s.encodeAndSend(ws.OpcodeText, []byte(msg), true)
}

// SendBinary sends a BINARY frame synchronously.
func (s *WsSession) SendBinary(p []byte) bool { return s.encodeAndSend(ws.OpcodeBinary, p, false) }

// SendBinaryAsync enqueues a BINARY frame for asynchronous send.
func (s *WsSession) SendBinaryAsync(p []byte) bool { return s.encodeAndSend(ws.OpcodeBinary, p, true) }

// SendPing sends a PING control frame synchronously.
func (s *WsSession) SendPing(payload []byte) bool { return s.encodeAndSend(ws.OpcodePing, payload, false) }

// SendPong sends a PONG control frame synchronously, as required in
// reply to a received PING (spec.md §4.5).
func (s *WsSession) SendPong(payload []byte) bool { return s.encodeAndSend(ws.OpcodePong, payload, false) }

// SendClose sends a CLOSE frame carrying code/reason synchronously, then
// disconnects the underlying transport.
func (s *WsSession) SendClose(code uint16, reason []byte) bool {
	ok := s.sendCloseLocked(code, reason)
	s.tcp.Disconnect()
	return ok
}

// SendCloseAsync enqueues a CLOSE frame carrying code/reason for
// asynchronous send, then disconnects the underlying transport, so a
// caller on the I/O completion thread never blocks the pump waiting for
// the CLOSE frame to flush (spec.md §9 CLOSE/DISCONNECT race note).
func (s *WsSession) SendCloseAsync(code uint16, reason []byte) bool {
	ok := s.sendCloseAsyncLocked(code, reason)
	s.tcp.DisconnectAsync()
	return ok
}

func (s *WsSession) sendCloseLocked(code uint16, reason []byte) bool {
	wire, ok := s.encodeCloseFrame(code, reason)
	if !ok {
		return false
	}
	_, err := s.tcp.Send(wire)
	return err == nil
}

func (s *WsSession) sendCloseAsyncLocked(code uint16, reason []byte) bool {
	wire, ok := s.encodeCloseFrame(code, reason)
	if !ok {
		return false
	}
	return s.tcp.SendAsync(wire)
}

func (s *WsSession) encodeCloseFrame(code uint16, reason []byte) ([]byte, bool) {
	s.sendMu.Lock()
	wire, err := ws.EncodeCloseFrame(code, reason, s.maskOutgoing())
	s.sendMu.Unlock()
	return wire, err == nil
}

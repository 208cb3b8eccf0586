package ws_test

import (
	"bytes"
	"testing"

	"github.com/momentics/netcore/ws"
)

func TestEncodeDecodeRoundTripUnmasked(t *testing.T) {
	for _, size := range []int{0, 125, 126, 65535, 65536, 70000} {
		payload := make([]byte, size)
		for i := range payload {
			payload[i] = byte(i)
		}
		f := &ws.Frame{Fin: true, Opcode: ws.OpcodeBinary, Payload: payload}
		wire, err := ws.EncodeFrame(f, false)
		if err != nil {
			t.Fatalf("size %d: encode: %v", size, err)
		}
		got, n, err := ws.DecodeFrame(wire)
		if err != nil {
			t.Fatalf("size %d: decode: %v", size, err)
		}
		if got == nil {
			t.Fatalf("size %d: decode reported incomplete for a full frame", size)
		}
		if n != len(wire) {
			t.Fatalf("size %d: consumed %d, want %d", size, n, len(wire))
		}
		if !bytes.Equal(got.Payload, payload) {
			t.Fatalf("size %d: payload mismatch", size)
		}
	}
}

func TestEncodeDecodeRoundTripMasked(t *testing.T) {
	payload := []byte("client to server payload")
	f := &ws.Frame{Fin: true, Opcode: ws.OpcodeText, Payload: payload}
	wire, err := ws.EncodeFrame(f, true)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, n, err := ws.DecodeFrame(wire)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != len(wire) || !got.Masked {
		t.Fatal("expected full consumption of a masked frame")
	}
	if !bytes.Equal(got.Payload, payload) {
		t.Fatalf("got %q, want %q", got.Payload, payload)
	}
}

func TestDecodeFrameReportsIncomplete(t *testing.T) {
	f := &ws.Frame{Fin: true, Opcode: ws.OpcodeText, Payload: []byte("hello world")}
	wire, _ := ws.EncodeFrame(f, false)
	for cut := 0; cut < len(wire); cut++ {
		got, n, err := ws.DecodeFrame(wire[:cut])
		if err != nil {
			t.Fatalf("cut %d: unexpected error %v", cut, err)
		}
		if got != nil || n != 0 {
			t.Fatalf("cut %d: expected incomplete, got frame=%v n=%d", cut, got, n)
		}
	}
}

func TestDecodeFrameRejectsOversizedLength(t *testing.T) {
	// 127 marker + a 64-bit length far beyond MaxFramePayload.
	buf := []byte{0x82, 127, 0x7F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	_, _, err := ws.DecodeFrame(buf)
	if err == nil {
		t.Fatal("expected an error for an oversized frame length")
	}
}

func TestCloseFrameCodeRoundTrip(t *testing.T) {
	wire, err := ws.EncodeCloseFrame(ws.CloseNormalClosure, []byte("bye"), false)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, n, err := ws.DecodeFrame(wire)
	if err != nil || got == nil || n != len(wire) {
		t.Fatalf("decode: frame=%v n=%d err=%v", got, n, err)
	}
	code, reason := ws.SplitCloseCode(got.Payload)
	if code != ws.CloseNormalClosure || string(reason) != "bye" {
		t.Fatalf("got code=%d reason=%q", code, reason)
	}
}

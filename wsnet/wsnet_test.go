package wsnet_test

import (
	"context"
	"testing"
	"time"

	"github.com/momentics/netcore/api"
	"github.com/momentics/netcore/transport"
	"github.com/momentics/netcore/wsnet"
)

type echoServerHandler struct{ api.NoopWsHandler }

func (echoServerHandler) OnWsReceived(session any, opcode byte, payload []byte) {
	sess := session.(*wsnet.WsSession)
	switch opcode {
	case 0x1:
		sess.SendTextAsync(string(payload))
	case 0x2:
		sess.SendBinaryAsync(payload)
	}
}

type clientHandler struct {
	api.NoopWsHandler
}

func TestWsClientServerTextRoundTrip(t *testing.T) {
	endpoint := transport.Endpoint{Host: "127.0.0.1", Port: 0}
	srv := wsnet.NewWsServer(endpoint, transport.DefaultServerOptions(), echoServerHandler{})
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	addr := srv.ListenAddr()
	target := transport.Endpoint{Host: addr.IP.String(), Port: addr.Port}

	client := wsnet.NewWsClient(target, wsnet.DefaultClientConfig(), clientHandler{})
	sess, err := client.Connect()
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer sess.Disconnect()

	// Wait for the handshake to complete before sending frames.
	deadline := time.Now().Add(2 * time.Second)
	for !sess.Handshaked() {
		if time.Now().After(deadline) {
			t.Fatal("handshake did not complete in time")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if !sess.SendText("hello") {
		t.Fatal("SendText failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	got, err := sess.ReceiveText(ctx)
	if err != nil {
		t.Fatalf("ReceiveText: %v", err)
	}
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestWsClientServerBinaryRoundTrip(t *testing.T) {
	endpoint := transport.Endpoint{Host: "127.0.0.1", Port: 0}
	srv := wsnet.NewWsServer(endpoint, transport.DefaultServerOptions(), echoServerHandler{})
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	addr := srv.ListenAddr()
	target := transport.Endpoint{Host: addr.IP.String(), Port: addr.Port}

	client := wsnet.NewWsClient(target, wsnet.DefaultClientConfig(), clientHandler{})
	sess, err := client.Connect()
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer sess.Disconnect()

	deadline := time.Now().Add(2 * time.Second)
	for !sess.Handshaked() {
		if time.Now().After(deadline) {
			t.Fatal("handshake did not complete in time")
		}
		time.Sleep(5 * time.Millisecond)
	}

	payload := []byte{1, 2, 3, 4, 5}
	if !sess.SendBinary(payload) {
		t.Fatal("SendBinary failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	got, err := sess.ReceiveBinary(ctx)
	if err != nil {
		t.Fatalf("ReceiveBinary: %v", err)
	}
	if len(got) != len(payload) {
		t.Fatalf("got %v, want %v", got, payload)
	}
}

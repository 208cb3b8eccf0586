package transport_test

import (
	"testing"
	"time"

	"github.com/momentics/netcore/api"
	"github.com/momentics/netcore/transport"
)

func TestUdpClientServerRoundTrip(t *testing.T) {
	opts := transport.DefaultServerOptions()
	srvHandler := newRecordingHandler()
	srv := transport.NewUdpServer(transport.NewEndpoint("udp", "127.0.0.1", 0), opts, func(transport.Endpoint) api.Handler {
		return srvHandler
	})
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	addr := srv.ListenAddr()
	client := transport.NewUdpClient(transport.DefaultClientOptions())
	clientHandler := newRecordingHandler()
	sess, err := client.Connect(transport.NewEndpoint("udp", addr.IP.String(), addr.Port), clientHandler)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer sess.Disconnect(true)

	if _, err := sess.Send([]byte("datagram")); err != nil {
		t.Fatalf("Send: %v", err)
	}
	waitFor(t, srvHandler.receivedCh, 1, 2*time.Second)

	got := srvHandler.snapshotReceived()
	if len(got) != 1 || string(got[0]) != "datagram" {
		t.Fatalf("server got %q, want [\"datagram\"]", got)
	}

	if srv.Sessions().Len() != 1 {
		t.Fatalf("server session table len = %d, want 1", srv.Sessions().Len())
	}
}

func TestUdpSessionDisconnectIsIdempotent(t *testing.T) {
	srv := transport.NewUdpServer(transport.NewEndpoint("udp", "127.0.0.1", 0), transport.DefaultServerOptions(), nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	addr := srv.ListenAddr()
	client := transport.NewUdpClient(transport.DefaultClientOptions())
	sess, err := client.Connect(transport.NewEndpoint("udp", addr.IP.String(), addr.Port), api.NoopHandler{})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := sess.Disconnect(true); err != nil {
		t.Fatalf("first Disconnect: %v", err)
	}
	if err := sess.Disconnect(true); err != nil {
		t.Fatalf("second Disconnect should be a no-op, got: %v", err)
	}
	if sess.State() != api.SessionDisconnected {
		t.Fatalf("state = %v, want Disconnected", sess.State())
	}
}

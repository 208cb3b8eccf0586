package transport_test

import (
	"testing"
	"time"

	"github.com/momentics/netcore/api"
	"github.com/momentics/netcore/transport"
)

func TestTcpServerAcceptsAndEchoes(t *testing.T) {
	opts := transport.DefaultServerOptions()
	srv := transport.NewTcpServer(transport.NewEndpoint("tcp", "127.0.0.1", 0), opts, func(transport.Endpoint) api.Handler {
		return &echoHandler{}
	})
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	if srv.State() != api.ServerStarted {
		t.Fatalf("state = %v, want Started", srv.State())
	}

	addr := srv.ListenAddr()
	client := transport.NewTcpClient(transport.DefaultClientOptions())
	clientHandler := newRecordingHandler()
	sess, err := client.Connect(transport.NewEndpoint("tcp", addr.IP.String(), addr.Port), clientHandler)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer sess.Disconnect()

	if _, err := sess.Send([]byte("ping")); err != nil {
		t.Fatalf("Send: %v", err)
	}
	waitFor(t, clientHandler.receivedCh, 1, 2*time.Second)

	got := clientHandler.snapshotReceived()
	if len(got) != 1 || string(got[0]) != "ping" {
		t.Fatalf("got %q, want echoed \"ping\"", got)
	}

	if srv.Sessions().Len() != 1 {
		t.Fatalf("server session table len = %d, want 1", srv.Sessions().Len())
	}
}

func TestTcpServerStopDisconnectsAllSessions(t *testing.T) {
	opts := transport.DefaultServerOptions()
	srv := transport.NewTcpServer(transport.NewEndpoint("tcp", "127.0.0.1", 0), opts, func(transport.Endpoint) api.Handler {
		return api.NoopHandler{}
	})
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	addr := srv.ListenAddr()

	client := transport.NewTcpClient(transport.DefaultClientOptions())
	sess, err := client.Connect(transport.NewEndpoint("tcp", addr.IP.String(), addr.Port), api.NoopHandler{})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer sess.Disconnect()

	// Give the server a moment to register the accepted session.
	time.Sleep(50 * time.Millisecond)
	if err := srv.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if srv.State() != api.ServerStopped {
		t.Fatalf("state = %v, want Stopped", srv.State())
	}
	if srv.Sessions().Len() != 0 {
		t.Fatalf("expected all sessions disconnected, got %d remaining", srv.Sessions().Len())
	}
}

// echoHandler writes back whatever it receives.
type echoHandler struct {
	api.NoopHandler
}

func (h *echoHandler) OnReceived(session any, data []byte) {
	if s, ok := session.(*transport.TcpSession); ok {
		cp := make([]byte, len(data))
		copy(cp, data)
		s.SendAsync(cp)
	}
}

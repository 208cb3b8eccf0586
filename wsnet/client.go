// File: wsnet/client.go
// Package wsnet
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Grounded on the teacher's client/client.go: linear backoff reconnect
// (attempts * 100ms, capped by MaxReconnectTries) and an optional
// heartbeat ping loop, adapted from net/http+bufio-based framing to
// this module's own transport+ws composition.

package wsnet

import (
	"fmt"
	"time"

	"github.com/momentics/netcore/api"
	"github.com/momentics/netcore/transport"
)

// ClientConfig configures a WsClient's dial and reconnect behavior.
type ClientConfig struct {
	TransportOptions  transport.ClientOptions
	MaxReconnectTries int           // 0 disables reconnect: a single attempt only
	HeartbeatInterval time.Duration // 0 disables the ping loop
}

// DefaultClientConfig returns sensible defaults: no reconnect, no heartbeat.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{TransportOptions: transport.DefaultClientOptions()}
}

// WsClient dials a single outbound WebSocket connection, performing the
// client-side RFC 6455 handshake and optionally reconnecting with a
// linear backoff on failure.
type WsClient struct {
	cfg      ClientConfig
	endpoint transport.Endpoint
	app      api.WsHandler

	stopHeartbeat chan struct{}
}

// NewWsClient constructs a client that will dial endpoint on Connect.
func NewWsClient(endpoint transport.Endpoint, cfg ClientConfig, app api.WsHandler) *WsClient {
	return &WsClient{cfg: cfg, endpoint: endpoint, app: app}
}

// Connect dials the endpoint, retrying failed dials with a linear backoff
// (attempt * 100ms) up to MaxReconnectTries times. It returns once the TCP
// connection is up and the handshake request has been sent; Handshaked
// reports when the server's response has been validated. A failed
// handshake is not retried.
func (c *WsClient) Connect() (*WsSession, error) {
	var lastErr error
	attempts := 0
	for {
		attempts++
		sess, err := c.dialOnce()
		if err == nil {
			if c.cfg.HeartbeatInterval > 0 {
				c.stopHeartbeat = make(chan struct{})
				go c.heartbeatLoop(sess, c.stopHeartbeat)
			}
			return sess, nil
		}
		lastErr = err
		if attempts > c.cfg.MaxReconnectTries {
			return nil, fmt.Errorf("wsnet: exhausted reconnect attempts: %w", lastErr)
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}
}

func (c *WsClient) dialOnce() (*WsSession, error) {
	sess := newWsSession(RoleClient, c.app)
	tcpClient := transport.NewTcpClient(c.cfg.TransportOptions)
	if _, err := tcpClient.Connect(c.endpoint, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// heartbeatLoop periodically sends PING frames until Close stops it.
func (c *WsClient) heartbeatLoop(sess *WsSession, stop chan struct{}) {
	t := time.NewTicker(c.cfg.HeartbeatInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			sess.SendPing(nil)
		case <-stop:
			return
		}
	}
}

// Close stops any running heartbeat loop for the most recent Connect call.
func (c *WsClient) Close() {
	if c.stopHeartbeat != nil {
		close(c.stopHeartbeat)
		c.stopHeartbeat = nil
	}
}

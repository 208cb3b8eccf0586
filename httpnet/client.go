// File: httpnet/client.go
// Package httpnet
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package httpnet

import "github.com/momentics/netcore/transport"

// HttpClient dials a single outbound connection and parses HTTP/1.1
// responses off it, dispatching completed responses to a Handler.
// Grounded on the teacher's lowlevel/client/transport.go dial sequence.
type HttpClient struct {
	opts transport.ClientOptions
}

// NewHttpClient constructs a client using opts for every Connect call.
func NewHttpClient(opts transport.ClientOptions) *HttpClient {
	return &HttpClient{opts: opts}
}

// Connect dials endpoint and returns an HttpSession whose completed
// responses are reported to app.
func (c *HttpClient) Connect(endpoint transport.Endpoint, app Handler) (*HttpSession, error) {
	hs := newHttpSession(RoleClient, app)
	tcpClient := transport.NewTcpClient(c.opts)
	_, err := tcpClient.Connect(endpoint, hs)
	if err != nil {
		return nil, err
	}
	return hs, nil
}

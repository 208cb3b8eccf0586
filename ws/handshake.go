// File: ws/handshake.go
// Package ws
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RFC 6455 §1.3 opening handshake: accept-key computation (server) and
// client-key generation/validation (client). Grounded on the teacher's
// protocol/handshake.go (sha1(key+GUID), header-token matching), split
// out of its bufio/http.ReadRequest coupling so it composes with this
// module's own httpmsg request/response types instead of net/http's.

package ws

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrInvalidUpgradeHeaders = errors.New("ws: missing or invalid Upgrade/Connection headers")
	ErrMissingWebSocketKey   = errors.New("ws: missing Sec-WebSocket-Key header")
	ErrBadWebSocketVersion   = errors.New("ws: unsupported Sec-WebSocket-Version, only 13 is accepted")
	ErrBadAcceptKey          = errors.New("ws: Sec-WebSocket-Accept does not match the computed value")
)

// ComputeAcceptKey derives the server's Sec-WebSocket-Accept value from
// a client's Sec-WebSocket-Key: base64(sha1(key + GUID)).
func ComputeAcceptKey(clientKey string) string {
	h := sha1.New()
	h.Write([]byte(clientKey))
	h.Write([]byte(WebSocketGUID))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// GenerateClientKey produces a fresh random 16-byte nonce, base64
// encoded, suitable for a client's Sec-WebSocket-Key header.
func GenerateClientKey() (string, error) {
	var nonce [16]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(nonce[:]), nil
}

// ValidateServerAccept checks that a server's Sec-WebSocket-Accept
// header matches what ComputeAcceptKey would produce for sentKey.
func ValidateServerAccept(sentKey, acceptHeader string) error {
	if acceptHeader != ComputeAcceptKey(sentKey) {
		return ErrBadAcceptKey
	}
	return nil
}

// HeaderTokenContains reports whether a comma-separated header value
// (possibly repeated across multiple header lines) contains token,
// case-insensitively (e.g. "Connection: keep-alive, Upgrade").
func HeaderTokenContains(values []string, token string) bool {
	token = strings.ToLower(token)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.ToLower(strings.TrimSpace(part)) == token {
				return true
			}
		}
	}
	return false
}

// ValidateUpgradeRequest checks the Connection/Upgrade/Version headers
// of an incoming handshake request and returns the client's requested
// key. header looks values up case-insensitively via get (the caller's
// HTTP header accessor).
func ValidateUpgradeRequest(get func(name string) []string) (clientKey string, err error) {
	if !HeaderTokenContains(get("Connection"), "Upgrade") {
		return "", ErrInvalidUpgradeHeaders
	}
	if !HeaderTokenContains(get("Upgrade"), "websocket") {
		return "", ErrInvalidUpgradeHeaders
	}
	versions := get("Sec-WebSocket-Version")
	if len(versions) != 1 || versions[0] != RequiredVersion {
		return "", ErrBadWebSocketVersion
	}
	keys := get("Sec-WebSocket-Key")
	if len(keys) != 1 || keys[0] == "" {
		return "", ErrMissingWebSocketKey
	}
	return keys[0], nil
}

// BuildHandshakeRequest renders the client's opening handshake request
// line and headers for url/host using clientKey as Sec-WebSocket-Key.
func BuildHandshakeRequest(url, host, clientKey string) []byte {
	var b []byte
	b = append(b, "GET "...)
	b = append(b, url...)
	b = append(b, " HTTP/1.1\r\n"...)
	b = append(b, "Host: "...)
	b = append(b, host...)
	b = append(b, "\r\n"...)
	b = append(b, "Upgrade: websocket\r\n"...)
	b = append(b, "Connection: Upgrade\r\n"...)
	b = append(b, "Sec-WebSocket-Key: "...)
	b = append(b, clientKey...)
	b = append(b, "\r\n"...)
	b = append(b, "Sec-WebSocket-Version: "...)
	b = append(b, RequiredVersion...)
	b = append(b, "\r\n\r\n"...)
	return b
}

// BuildHandshakeResponse renders the server's 101 Switching Protocols
// response for the given computed Sec-WebSocket-Accept value.
func BuildHandshakeResponse(acceptKey string) []byte {
	var b []byte
	b = append(b, "HTTP/1.1 101 Switching Protocols\r\n"...)
	b = append(b, "Upgrade: websocket\r\n"...)
	b = append(b, "Connection: Upgrade\r\n"...)
	b = append(b, "Sec-WebSocket-Accept: "...)
	b = append(b, acceptKey...)
	b = append(b, "\r\n\r\n"...)
	return b
}

// BuildHandshakeErrorResponse renders a minimal HTTP error response used
// to reject a failed handshake before closing the transport (spec.md
// §4.5: "any handshake failure closes the TCP transport with a defined
// HTTP error response").
func BuildHandshakeErrorResponse(code int, reason string) []byte {
	var b []byte
	b = append(b, "HTTP/1.1 "...)
	b = append(b, itoa(code)...)
	b = append(b, ' ')
	b = append(b, reason...)
	b = append(b, "\r\nConnection: close\r\nContent-Length: 0\r\n\r\n"...)
	return b
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

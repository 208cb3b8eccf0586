package ws_test

import (
	"strings"
	"testing"

	"github.com/momentics/netcore/httpmsg"
	"github.com/momentics/netcore/ws"
)

// TestComputeAcceptKeyMatchesRFC6455Example checks the exact example from
// RFC 6455 §1.3 (also spec.md §8 scenario 4).
func TestComputeAcceptKeyMatchesRFC6455Example(t *testing.T) {
	got := ws.ComputeAcceptKey("dGhlIHNhbXBsZSBub25jZQ==")
	want := "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestValidateUpgradeRequestAcceptsWellFormedHeaders(t *testing.T) {
	headers := map[string][]string{
		"Connection":            {"Upgrade"},
		"Upgrade":               {"websocket"},
		"Sec-WebSocket-Version": {"13"},
		"Sec-WebSocket-Key":     {"dGhlIHNhbXBsZSBub25jZQ=="},
	}
	get := func(name string) []string { return headers[name] }

	key, err := ws.ValidateUpgradeRequest(get)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "dGhlIHNhbXBsZSBub25jZQ==" {
		t.Fatalf("got key %q", key)
	}
}

func TestValidateUpgradeRequestRejectsBadVersion(t *testing.T) {
	headers := map[string][]string{
		"Connection":            {"Upgrade"},
		"Upgrade":               {"websocket"},
		"Sec-WebSocket-Version": {"8"},
		"Sec-WebSocket-Key":     {"dGhlIHNhbXBsZSBub25jZQ=="},
	}
	get := func(name string) []string { return headers[name] }

	if _, err := ws.ValidateUpgradeRequest(get); err != ws.ErrBadWebSocketVersion {
		t.Fatalf("got err=%v, want ErrBadWebSocketVersion", err)
	}
}

func TestBuildHandshakeRequestAndResponseParse(t *testing.T) {
	key, err := ws.GenerateClientKey()
	if err != nil {
		t.Fatalf("GenerateClientKey: %v", err)
	}
	req := ws.BuildHandshakeRequest("/chat", "example.com", key)
	if !strings.Contains(string(req), "Sec-WebSocket-Key: "+key) {
		t.Fatalf("request missing key: %q", req)
	}
	parsedReq := httpmsg.NewHttpRequest()
	if !parsedReq.Feed(req) || parsedReq.Method != "GET" || parsedReq.URL != "/chat" {
		t.Fatalf("request did not parse as a complete GET /chat: %q", req)
	}

	accept := ws.ComputeAcceptKey(key)
	resp := ws.BuildHandshakeResponse(accept)
	if !strings.Contains(string(resp), "101 Switching Protocols") {
		t.Fatalf("response missing status line: %q", resp)
	}
	if !strings.Contains(string(resp), "Sec-WebSocket-Accept: "+accept) {
		t.Fatalf("response missing accept key: %q", resp)
	}
	parsedResp := httpmsg.NewHttpResponse()
	if !parsedResp.Feed(resp) || parsedResp.StatusCode != 101 {
		t.Fatalf("response did not parse as a complete 101: %q", resp)
	}
}

func TestValidateServerAcceptRoundTrip(t *testing.T) {
	key, err := ws.GenerateClientKey()
	if err != nil {
		t.Fatalf("GenerateClientKey: %v", err)
	}
	accept := ws.ComputeAcceptKey(key)
	if err := ws.ValidateServerAccept(key, accept); err != nil {
		t.Fatalf("ValidateServerAccept: %v", err)
	}
	if err := ws.ValidateServerAccept(key, "wrong"); err == nil {
		t.Fatal("expected an error for a mismatched accept key")
	}
}

package httpmsg_test

import (
	"testing"

	"github.com/momentics/netcore/httpmsg"
)

func TestParseResponseWithContentLength(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 2\r\n\r\nok"
	r := httpmsg.NewHttpResponse()
	if !r.Feed([]byte(raw)) {
		t.Fatal("expected completion")
	}
	if r.StatusCode != 200 || r.Phrase != "OK" {
		t.Fatalf("got code=%d phrase=%q", r.StatusCode, r.Phrase)
	}
	if string(r.Body()) != "ok" {
		t.Fatalf("got body %q", r.Body())
	}
}

func TestParseResponseDelimitedByClose(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\nsome body"
	r := httpmsg.NewHttpResponse()
	if r.Feed([]byte(raw)) {
		t.Fatal("should not complete without Content-Length until CloseNotify")
	}
	r.CloseNotify()
	if !r.Complete() {
		t.Fatal("expected completion after CloseNotify")
	}
	if string(r.Body()) != "some body" {
		t.Fatalf("got body %q", r.Body())
	}
}

func TestParseResponseBodylessStatusCompletesAtHeaderEnd(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"101 Switching Protocols", "HTTP/1.1 101 Switching Protocols\r\nUpgrade: websocket\r\nConnection: Upgrade\r\n\r\n"},
		{"204 No Content", "HTTP/1.1 204 No Content\r\n\r\n"},
		{"304 Not Modified", "HTTP/1.1 304 Not Modified\r\n\r\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httpmsg.NewHttpResponse()
			if !r.Feed([]byte(tc.raw)) {
				t.Fatal("expected completion at end of headers without CloseNotify")
			}
			if !r.Complete() {
				t.Fatal("expected Complete() true")
			}
			if len(r.Body()) != 0 {
				t.Fatalf("expected empty body, got %q", r.Body())
			}
		})
	}
}

func TestParseResponseRejectsNonDigitStatus(t *testing.T) {
	raw := "HTTP/1.1 2X0 OK\r\n\r\n"
	r := httpmsg.NewHttpResponse()
	r.Feed([]byte(raw))
	if !r.IsErrorSet() {
		t.Fatal("expected a structural violation for a non-digit status code")
	}
}

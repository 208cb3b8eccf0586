package httpmsg_test

import (
	"strings"
	"testing"

	"github.com/momentics/netcore/httpmsg"
)

func TestBuildThenParseGetRequestRoundTrips(t *testing.T) {
	wire := httpmsg.MakeGetRequest("/index.html").AddHeader("Host", "example.com").Bytes()

	r := httpmsg.NewHttpRequest()
	if !r.Feed(wire) {
		t.Fatal("expected completion")
	}
	if r.Method != "GET" || r.URL != "/index.html" {
		t.Fatalf("got method=%q url=%q", r.Method, r.URL)
	}
}

func TestBuildThenParsePostRequestRoundTrips(t *testing.T) {
	wire := httpmsg.MakePostRequest("/submit", []byte("payload")).Bytes()

	r := httpmsg.NewHttpRequest()
	if !r.Feed(wire) {
		t.Fatal("expected completion")
	}
	if string(r.Body()) != "payload" {
		t.Fatalf("got body %q", r.Body())
	}
}

func TestBuildOkResponseSetsContentType(t *testing.T) {
	wire := httpmsg.MakeOkResponse([]byte("hi"), httpmsg.MimeTypeForPath("x.html")).Bytes()
	if !strings.Contains(string(wire), "Content-Type: text/html") {
		t.Fatalf("missing content type in %q", wire)
	}

	r := httpmsg.NewHttpResponse()
	r.Feed(wire)
	if r.StatusCode != 200 || string(r.Body()) != "hi" {
		t.Fatalf("got code=%d body=%q", r.StatusCode, r.Body())
	}
}

func TestMimeTypeForPathFallsBackToOctetStream(t *testing.T) {
	if got := httpmsg.MimeTypeForPath("file.unknownext"); got != "application/octet-stream" {
		t.Fatalf("got %q", got)
	}
}

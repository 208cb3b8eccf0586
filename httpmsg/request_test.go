package httpmsg_test

import (
	"testing"

	"github.com/momentics/netcore/httpmsg"
)

func TestParseSimpleGetRequest(t *testing.T) {
	raw := "GET /index.html HTTP/1.1\r\nHost: example.com\r\nConnection: keep-alive\r\n\r\n"

	r := httpmsg.NewHttpRequest()
	if !r.Feed([]byte(raw)) {
		t.Fatalf("expected request to complete in one feed")
	}
	if r.IsErrorSet() {
		t.Fatalf("unexpected error: %v", r.Err())
	}
	if r.Method != "GET" || r.URL != "/index.html" || r.Protocol != "HTTP/1.1" {
		t.Fatalf("got method=%q url=%q proto=%q", r.Method, r.URL, r.Protocol)
	}
	if host, ok := r.Header("host"); !ok || host != "example.com" {
		t.Fatalf("got Host=%q ok=%v", host, ok)
	}
}

func TestParseRequestSplitAcrossFeeds(t *testing.T) {
	full := "POST /submit HTTP/1.1\r\nHost: example.com\r\nContent-Length: 5\r\n\r\nhello"

	r := httpmsg.NewHttpRequest()
	// Split mid-header-terminator so the resumed scan must look back.
	splitAt := len(full) - len("\r\nhello")
	if r.Feed([]byte(full[:splitAt])) {
		t.Fatal("should not be complete after partial header feed")
	}
	if r.Feed([]byte(full[splitAt:])) != true {
		t.Fatal("expected completion once the rest arrives")
	}
	if r.IsErrorSet() {
		t.Fatalf("unexpected error: %v", r.Err())
	}
	if string(r.Body()) != "hello" {
		t.Fatalf("got body %q", r.Body())
	}
}

func TestParseRequestByteAtATime(t *testing.T) {
	full := "GET / HTTP/1.1\r\nHost: a\r\n\r\n"
	r := httpmsg.NewHttpRequest()
	for i := 0; i < len(full); i++ {
		done := r.Feed([]byte{full[i]})
		if i < len(full)-1 && done {
			t.Fatalf("completed too early at byte %d", i)
		}
	}
	if !r.Complete() {
		t.Fatal("expected completion after final byte")
	}
}

func TestParseRequestWithCookies(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost: a\r\nCookie: a=1; b=2 ;c=3\r\n\r\n"
	r := httpmsg.NewHttpRequest()
	r.Feed([]byte(raw))
	if r.IsErrorSet() {
		t.Fatalf("unexpected error: %v", r.Err())
	}
	want := []httpmsg.Cookie{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}, {Name: "c", Value: "3"}}
	if len(r.Cookies) != len(want) {
		t.Fatalf("got %d cookies, want %d: %+v", len(r.Cookies), len(want), r.Cookies)
	}
	for i, c := range want {
		if r.Cookies[i] != c {
			t.Fatalf("cookie %d: got %+v, want %+v", i, r.Cookies[i], c)
		}
	}
}

func TestParseRequestRejectsMissingColon(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nBadHeaderLine\r\n\r\n"
	r := httpmsg.NewHttpRequest()
	r.Feed([]byte(raw))
	if !r.IsErrorSet() {
		t.Fatal("expected a structural violation for a header line missing ':'")
	}
}

func TestParseRequestRejectsNonDigitContentLength(t *testing.T) {
	raw := "POST / HTTP/1.1\r\nContent-Length: 12a\r\n\r\n"
	r := httpmsg.NewHttpRequest()
	r.Feed([]byte(raw))
	if !r.IsErrorSet() {
		t.Fatal("expected a structural violation for a non-digit Content-Length")
	}
}

// File: httpmsg/response.go
// Package httpmsg
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package httpmsg

import (
	"strings"

	"github.com/momentics/netcore/buffer"
)

// HttpResponse is an incrementally parsed HTTP/1.1 response, symmetric
// to HttpRequest. A response with no Content-Length and no chunked
// encoding is delimited by the peer closing the connection; the caller
// signals that via CloseNotify once its transport detects EOF.
type HttpResponse struct {
	cache *buffer.Cache

	headerDone  bool
	bodyIndex   int
	bodySize    int
	bodySizeSet bool
	complete    bool
	violation   error

	Protocol   string
	StatusCode int
	Phrase     string
	Headers    []Header
}

// NewHttpResponse returns an empty response ready to receive bytes via Feed.
func NewHttpResponse() *HttpResponse {
	return &HttpResponse{cache: newCache()}
}

func (r *HttpResponse) IsErrorSet() bool { return r.violation != nil }
func (r *HttpResponse) Err() error       { return r.violation }
func (r *HttpResponse) Complete() bool   { return r.complete }

func (r *HttpResponse) Body() []byte {
	if r.bodyIndex == 0 {
		return nil
	}
	return r.cache.Slice(r.bodyIndex, r.cache.Size())
}

// IsEmpty reports whether no bytes have been fed into the response yet.
func (r *HttpResponse) IsEmpty() bool { return r.cache.Size() == 0 }

// Feed behaves like HttpRequest.Feed. A bodyless status (see isBodyless)
// completes at the end of the header block; otherwise, when the response
// carries no Content-Length, the body is considered complete only after
// CloseNotify.
func (r *HttpResponse) Feed(p []byte) bool {
	if r.violation != nil || r.complete {
		return r.complete
	}
	priorSize := r.cache.Size()
	r.cache.Append(p)

	if !r.headerDone {
		from := priorSize - 3
		end := findHeaderEnd(r.cache.AsReadOnlySpan(), from)
		if end < 0 {
			return false
		}
		if err := r.parseHead(end); err != nil {
			r.violation = err
			return false
		}
		r.headerDone = true
		r.bodyIndex = end + 4
		if isBodyless(r.StatusCode) {
			r.complete = true
			return true
		}
	}

	if r.bodySizeSet && r.cache.Size()-r.bodyIndex >= r.bodySize {
		r.complete = true
	}
	return r.complete
}

// isBodyless reports whether a response of this status code never
// carries a body regardless of headers (RFC 7230 §3.3.3): all 1xx
// informational responses (including the 101 Switching Protocols
// handshake response), 204 No Content, and 304 Not Modified are
// complete at the end of the header block.
func isBodyless(statusCode int) bool {
	if statusCode >= 100 && statusCode < 200 {
		return true
	}
	return statusCode == 204 || statusCode == 304
}

// CloseNotify informs a Content-Length-less response that the peer has
// closed the connection, which completes the body.
func (r *HttpResponse) CloseNotify() {
	if r.headerDone && !r.bodySizeSet {
		r.complete = true
	}
}

func (r *HttpResponse) parseHead(headerEnd int) error {
	raw := string(r.cache.Slice(0, headerEnd))
	lines := strings.Split(raw, "\r\n")
	if len(lines) == 0 || lines[0] == "" {
		return errMalformedLine
	}

	parts := strings.SplitN(lines[0], " ", 3)
	if len(parts) != 3 {
		return errMalformedLine
	}
	r.Protocol = parts[0]
	code, err := parseIntHeader(parts[1])
	if err != nil {
		return err
	}
	r.StatusCode = code
	r.Phrase = parts[2]

	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			return errMissingColon
		}
		name := line[:colon]
		if name == "" {
			return errEmptyHeaderName
		}
		value := strings.TrimSpace(line[colon+1:])
		r.Headers = append(r.Headers, Header{Name: name, Value: value})

		if strings.EqualFold(name, "Content-Length") {
			n, err := parseIntHeader(value)
			if err != nil {
				return err
			}
			r.bodySize = n
			r.bodySizeSet = true
		}
	}
	return nil
}

func (r *HttpResponse) Header(name string) (string, bool) { return headerGet(r.Headers, name) }
func (r *HttpResponse) HeaderAll(name string) []string     { return headerGetAll(r.Headers, name) }

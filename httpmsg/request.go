// File: httpmsg/request.go
// Package httpmsg
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package httpmsg

import (
	"strings"

	"github.com/momentics/netcore/buffer"
)

// HttpRequest is an incrementally parsed HTTP/1.1 request. Bytes arrive
// via Feed in arbitrarily small chunks (as a TCP session delivers them);
// the parser resumes scanning rather than restarting from scratch.
type HttpRequest struct {
	cache *buffer.Cache

	headerDone bool
	bodyIndex  int
	bodySize   int
	complete   bool
	violation  error

	Method   string
	URL      string
	Protocol string
	Headers  []Header
	Cookies  []Cookie
}

// NewHttpRequest returns an empty request ready to receive bytes via Feed.
func NewHttpRequest() *HttpRequest {
	return &HttpRequest{cache: newCache()}
}

// IsErrorSet reports whether a structural violation was detected; once
// set, the request will never report Complete.
func (r *HttpRequest) IsErrorSet() bool { return r.violation != nil }

// Err returns the structural violation, if any.
func (r *HttpRequest) Err() error { return r.violation }

// Complete reports whether the full request (headers and, if declared,
// body) has been received.
func (r *HttpRequest) Complete() bool { return r.complete }

// Body returns the bytes received for the request body so far.
func (r *HttpRequest) Body() []byte {
	if r.bodyIndex == 0 {
		return nil
	}
	return r.cache.Slice(r.bodyIndex, r.cache.Size())
}

// Feed appends p to the backing cache and resumes parsing. It returns
// Complete() after the call regardless of whether this particular call
// advanced the state.
func (r *HttpRequest) Feed(p []byte) bool {
	if r.violation != nil || r.complete {
		return r.complete
	}
	priorSize := r.cache.Size()
	r.cache.Append(p)

	if !r.headerDone {
		// Resume the \r\n\r\n scan 3 bytes before where we left off, since
		// a terminator may straddle the previous chunk boundary.
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
	}

	if r.bodySize <= 0 {
		r.complete = true
		return true
	}
	if r.cache.Size()-r.bodyIndex >= r.bodySize {
		r.complete = true
	}
	return r.complete
}

// parseHead parses the request line and headers found in cache[0:headerEnd].
func (r *HttpRequest) parseHead(headerEnd int) error {
	raw := string(r.cache.Slice(0, headerEnd))
	lines := strings.Split(raw, "\r\n")
	if len(lines) == 0 || lines[0] == "" {
		return errMalformedLine
	}

	parts := strings.SplitN(lines[0], " ", 3)
	if len(parts) != 3 {
		return errMalformedLine
	}
	r.Method, r.URL, r.Protocol = parts[0], parts[1], parts[2]

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
		}
		if strings.EqualFold(name, "Cookie") {
			r.Cookies = append(r.Cookies, parseCookieHeader(value)...)
		}
	}

	if r.bodySize == 0 && !methodHasNoBody(r.Method) {
		// No Content-Length on a method that may carry a body: treat as
		// bodyless rather than guessing a terminator (spec.md §4.4 scopes
		// chunked/terminator-delimited request bodies out).
		r.bodySize = 0
	}
	return nil
}

// Header returns the first value recorded for name, case-insensitively.
func (r *HttpRequest) Header(name string) (string, bool) { return headerGet(r.Headers, name) }

// HeaderAll returns every value recorded for name, case-insensitively.
func (r *HttpRequest) HeaderAll(name string) []string { return headerGetAll(r.Headers, name) }

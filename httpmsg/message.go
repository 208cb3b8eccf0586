// File: httpmsg/message.go
// Package httpmsg implements the HTTP/1.1 message codec of spec.md §4.4:
// an incremental, resumable parser over an append-only buffer.Cache, plus
// builders that collect the start line, headers and body and render the
// wire bytes in a single Bytes call (they do not write into a Cache).
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// No teacher/pack repo implements an incremental resumable HTTP parser
// (the teacher speaks WebSocket only, upgrading via net/http); this
// package is authored directly from spec.md §4.4's parse algorithm,
// in the teacher's terse doc-comment register, built on buffer.Cache
// (spec.md §4.1) exactly as the session layer's receive buffer is.

package httpmsg

import (
	"strconv"
	"strings"

	"github.com/momentics/netcore/buffer"
)

// Header is one ordered (name, value) pair; HTTP/1.1 allows repeated
// header names, so headers are stored as an ordered list, not a map.
type Header struct {
	Name  string
	Value string
}

// Cookie is one (name, value) pair parsed from a request's Cookie header.
type Cookie struct {
	Name  string
	Value string
}

// Get returns the first occurrence of name (case-insensitive), and
// whether it was present at all.
func headerGet(headers []Header, name string) (string, bool) {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// headerGetAll returns every value recorded under name (case-insensitive),
// preserving the order they were parsed/added in.
func headerGetAll(headers []Header, name string) []string {
	var out []string
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			out = append(out, h.Value)
		}
	}
	return out
}

// methodHasNoBody reports whether method is one of the request methods
// spec.md §4.4 defines as never carrying a body absent an explicit
// Content-Length.
func methodHasNoBody(method string) bool {
	switch strings.ToUpper(method) {
	case "HEAD", "GET", "DELETE", "OPTIONS", "TRACE":
		return true
	default:
		return false
	}
}

// findHeaderEnd searches data for "\r\n\r\n" starting at from (clamped to
// >= 0), returning the index of the first '\r' of the terminator, or -1.
func findHeaderEnd(data []byte, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(data) {
		return -1
	}
	return indexCRLFCRLF(data[from:], from)
}

func indexCRLFCRLF(window []byte, base int) int {
	const sep = "\r\n\r\n"
	idx := strings.Index(string(window), sep)
	if idx < 0 {
		return -1
	}
	return base + idx
}

// parseIntHeader parses a header value as a non-negative decimal integer,
// rejecting anything containing a non-ASCII-digit byte (spec.md §4.4:
// "non-ASCII digit in status/length" is a structural violation).
func parseIntHeader(v string) (int, error) {
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return 0, errNonDigit
		}
	}
	return strconv.Atoi(v)
}

// newCache constructs the backing buffer.Cache a parsed request or
// response accumulates its bytes in.
func newCache() *buffer.Cache { return buffer.New() }

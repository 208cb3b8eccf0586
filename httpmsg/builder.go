// File: httpmsg/builder.go
// Package httpmsg
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package httpmsg

import (
	"path"
	"strconv"
	"strings"
)

// mimeTypes maps a handful of common file extensions to content types,
// enough for the preset response builders to set a reasonable
// Content-Type without pulling in a full media-type registry.
var mimeTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".htm":  "text/html; charset=utf-8",
	".txt":  "text/plain; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".json": "application/json; charset=utf-8",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".wasm": "application/wasm",
}

// MimeTypeForPath returns the content type for a URL path's extension,
// falling back to application/octet-stream when unrecognized.
func MimeTypeForPath(urlPath string) string {
	if ct, ok := mimeTypes[strings.ToLower(path.Ext(urlPath))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// statusPhrases covers the status codes the preset builders emit.
var statusPhrases = map[int]string{
	200: "OK",
	204: "No Content",
	400: "Bad Request",
	404: "Not Found",
	405: "Method Not Allowed",
	500: "Internal Server Error",
}

func phraseFor(code int) string {
	if p, ok := statusPhrases[code]; ok {
		return p
	}
	return "Unknown"
}

// RequestBuilder accumulates a request line, headers, and body before
// rendering wire bytes via Bytes.
type RequestBuilder struct {
	method, url string
	headers     []Header
	body        []byte
}

func newRequestBuilder(method, url string) *RequestBuilder {
	return &RequestBuilder{method: method, url: url}
}

// MakeGetRequest starts a GET request builder for url.
func MakeGetRequest(url string) *RequestBuilder { return newRequestBuilder("GET", url) }

// MakePostRequest starts a POST request builder for url with the given body.
func MakePostRequest(url string, body []byte) *RequestBuilder {
	b := newRequestBuilder("POST", url)
	b.body = body
	return b
}

// AddHeader appends a header to the builder and returns it for chaining.
func (b *RequestBuilder) AddHeader(name, value string) *RequestBuilder {
	b.headers = append(b.headers, Header{Name: name, Value: value})
	return b
}

// SetCookie appends a Cookie header entry formatted as name=value.
func (b *RequestBuilder) SetCookie(name, value string) *RequestBuilder {
	return b.AddHeader("Cookie", name+"="+value)
}

// Bytes renders the request as HTTP/1.1 wire bytes, appending
// Content-Length automatically when a body is present.
func (b *RequestBuilder) Bytes() []byte {
	var out []byte
	out = append(out, b.method...)
	out = append(out, ' ')
	out = append(out, b.url...)
	out = append(out, " HTTP/1.1\r\n"...)
	for _, h := range b.headers {
		out = append(out, h.Name...)
		out = append(out, ": "...)
		out = append(out, h.Value...)
		out = append(out, "\r\n"...)
	}
	if len(b.body) > 0 {
		out = append(out, "Content-Length: "...)
		out = append(out, strconv.Itoa(len(b.body))...)
		out = append(out, "\r\n"...)
	}
	out = append(out, "\r\n"...)
	out = append(out, b.body...)
	return out
}

// ResponseBuilder accumulates a status line, headers, and body before
// rendering wire bytes via Bytes.
type ResponseBuilder struct {
	code    int
	headers []Header
	body    []byte
}

func newResponseBuilder(code int) *ResponseBuilder {
	return &ResponseBuilder{code: code}
}

// MakeOkResponse starts a 200 OK response builder with body.
func MakeOkResponse(body []byte, contentType string) *ResponseBuilder {
	b := newResponseBuilder(200)
	b.body = body
	if contentType != "" {
		b.AddHeader("Content-Type", contentType)
	}
	return b
}

// MakeErrorResponse starts a response builder for the given error status code.
func MakeErrorResponse(code int, body []byte) *ResponseBuilder {
	b := newResponseBuilder(code)
	b.body = body
	return b
}

// MakeHeadResponse starts a response builder with headers only, no body,
// matching HEAD's "same headers as GET, no body" semantics.
func MakeHeadResponse(code int, contentLength int, contentType string) *ResponseBuilder {
	b := newResponseBuilder(code)
	if contentType != "" {
		b.AddHeader("Content-Type", contentType)
	}
	b.AddHeader("Content-Length", strconv.Itoa(contentLength))
	return b
}

// MakeOptionsResponse starts a 204 response advertising the given methods.
func MakeOptionsResponse(allow []string) *ResponseBuilder {
	b := newResponseBuilder(204)
	b.AddHeader("Allow", strings.Join(allow, ", "))
	return b
}

// MakeTraceResponse echoes the original request bytes back with status 200,
// content type message/http, per the TRACE method's defined semantics.
func MakeTraceResponse(originalRequest []byte) *ResponseBuilder {
	b := newResponseBuilder(200)
	b.body = originalRequest
	b.AddHeader("Content-Type", "message/http")
	return b
}

// AddHeader appends a header to the builder and returns it for chaining.
func (b *ResponseBuilder) AddHeader(name, value string) *ResponseBuilder {
	b.headers = append(b.headers, Header{Name: name, Value: value})
	return b
}

// SetCookie appends a Set-Cookie header rendered via BuildSetCookieHeader.
func (b *ResponseBuilder) SetCookie(name, value string, opts SetCookieOptions) *ResponseBuilder {
	return b.AddHeader("Set-Cookie", BuildSetCookieHeader(name, value, opts))
}

// Bytes renders the response as HTTP/1.1 wire bytes, appending
// Content-Length automatically whenever it was not set explicitly.
func (b *ResponseBuilder) Bytes() []byte {
	var out []byte
	out = append(out, "HTTP/1.1 "...)
	out = append(out, strconv.Itoa(b.code)...)
	out = append(out, ' ')
	out = append(out, phraseFor(b.code)...)
	out = append(out, "\r\n"...)

	_, hasLength := headerGet(b.headers, "Content-Length")
	for _, h := range b.headers {
		out = append(out, h.Name...)
		out = append(out, ": "...)
		out = append(out, h.Value...)
		out = append(out, "\r\n"...)
	}
	if !hasLength {
		out = append(out, "Content-Length: "...)
		out = append(out, strconv.Itoa(len(b.body))...)
		out = append(out, "\r\n"...)
	}
	out = append(out, "\r\n"...)
	out = append(out, b.body...)
	return out
}

// File: httpmsg/errors.go
// Package httpmsg
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package httpmsg

import "errors"

var (
	errNonDigit        = errors.New("httpmsg: non-digit byte in status/length field")
	errMalformedLine   = errors.New("httpmsg: malformed request/status line")
	errEmptyHeaderName = errors.New("httpmsg: empty header name")
	errMissingColon    = errors.New("httpmsg: header line missing ':' separator")
)

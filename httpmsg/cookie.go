// File: httpmsg/cookie.go
// Package httpmsg
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cookie header parsing, rewritten as an explicit mini state machine per
// spec.md §9 ("the source's cookie parser is intricate; rewrite as an
// explicit mini-FSM with states {start, inName, eqSeen, inValue,
// sepSeen} — equivalent behavior, testable in isolation").

package httpmsg

type cookieState int

const (
	cookieStart cookieState = iota
	cookieInName
	cookieEqSeen
	cookieInValue
	cookieSepSeen
)

// parseCookieHeader splits a single Cookie header value into ordered
// (name, value) pairs. Tokens are separated by ';', name and value by
// '=', with surrounding whitespace skipped (spec.md §8 boundary
// behavior: "Cookie: a=1; b=2 ;c=3" yields [(a,1),(b,2),(c,3)]).
func parseCookieHeader(value string) []Cookie {
	var out []Cookie
	state := cookieStart
	var name, val []byte

	flush := func() {
		if len(name) > 0 {
			for len(val) > 0 && (val[len(val)-1] == ' ' || val[len(val)-1] == '\t') {
				val = val[:len(val)-1]
			}
			out = append(out, Cookie{Name: string(name), Value: string(val)})
		}
		name, val = nil, nil
	}

	for i := 0; i < len(value); i++ {
		c := value[i]
		switch state {
		case cookieStart, cookieSepSeen:
			if c == ' ' || c == '\t' {
				continue
			}
			if c == ';' {
				continue
			}
			name = append(name, c)
			state = cookieInName
		case cookieInName:
			if c == '=' {
				state = cookieEqSeen
				continue
			}
			if c == ';' {
				// Name with no '=': spec gives no explicit rule; treat as a
				// valueless cookie and start the next token.
				flush()
				state = cookieSepSeen
				continue
			}
			name = append(name, c)
		case cookieEqSeen:
			if c == ';' {
				flush()
				state = cookieSepSeen
				continue
			}
			val = append(val, c)
			state = cookieInValue
		case cookieInValue:
			if c == ';' {
				flush()
				state = cookieSepSeen
				continue
			}
			val = append(val, c)
		}
	}
	flush()
	return out
}

// SetCookieOptions are the attributes appended by BuildSetCookieHeader
// (spec.md §4.4: "Max-Age, Domain, Path, Secure, SameSite=Strict,
// HttpOnly").
type SetCookieOptions struct {
	MaxAgeSeconds int // 0 means omit Max-Age
	Domain        string
	Path          string
	Secure        bool
	HttpOnly      bool
	SameSiteStrict bool
}

// BuildSetCookieHeader renders a Set-Cookie header value for name=value
// plus the given attributes.
func BuildSetCookieHeader(name, value string, opts SetCookieOptions) string {
	var b []byte
	b = append(b, name...)
	b = append(b, '=')
	b = append(b, value...)

	if opts.MaxAgeSeconds != 0 {
		b = append(b, "; Max-Age="...)
		b = appendInt(b, opts.MaxAgeSeconds)
	}
	if opts.Domain != "" {
		b = append(b, "; Domain="...)
		b = append(b, opts.Domain...)
	}
	if opts.Path != "" {
		b = append(b, "; Path="...)
		b = append(b, opts.Path...)
	}
	if opts.Secure {
		b = append(b, "; Secure"...)
	}
	if opts.SameSiteStrict {
		b = append(b, "; SameSite=Strict"...)
	}
	if opts.HttpOnly {
		b = append(b, "; HttpOnly"...)
	}
	return string(b)
}

func appendInt(b []byte, n int) []byte {
	if n < 0 {
		b = append(b, '-')
		n = -n
	}
	start := len(b)
	if n == 0 {
		return append(b, '0')
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	_ = start
	return append(b, digits[i:]...)
}

// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	urlpkg "net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/http/httpguts"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

const (
	nilCtxMsg = "reqx/request: nil context"

	// CredentialsInclude is the only credentials policy: cookies are
	// always sent, including on cross-origin calls.
	CredentialsInclude = "include"
)

// A Network is the resolved, wire-ready form of an Option: an absolute
// URL, uppercase method, final headers, and a pre-buffered body.
//
// Request hooks may modify a Network before it is sent. They should
// clone the reference-typed fields (URL and Header) before changing
// them if the original values are shared.
type Network struct {
	// Option is the logical option this network option was resolved
	// from.
	Option *Option

	// Method specifies the uppercase HTTP method.
	Method string

	// RawURL is the resolved URL exactly as produced by the resolver.
	// It is the cache key for GET responses.
	RawURL string

	// URL is the parsed form of RawURL.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent.
	Header http.Header

	// Body is the pre-buffered request body. A nil or empty body
	// indicates no request body should be sent.
	Body []byte

	// Credentials is always CredentialsInclude.
	Credentials string

	// TransferEncoding lists the transfer encodings from outermost to
	// innermost.
	TransferEncoding []string

	// Close stipulates whether to close the connection after reading
	// the response.
	Close bool

	// Host optionally overrides the Host header to send.
	Host string

	ctx context.Context
}

// NewNetwork returns a new Network given a context, method, URL, and
// optional body.
//
// Parameter body may be nil (empty body), or it may be a string,
// []byte, io.Reader, or io.ReadCloser, as documented on BodyBytes.
func NewNetwork(ctx context.Context, method, url string, body interface{}) (*Network, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = DefaultMethod
	}
	method = strings.ToUpper(method)
	if !validMethod(method) {
		return nil, fmt.Errorf("reqx/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	u.RawQuery = escapeQuery(u.RawQuery)
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return &Network{
		ctx:         ctx,
		Method:      method,
		RawURL:      url,
		URL:         u,
		Header:      make(http.Header),
		Body:        b,
		Credentials: CredentialsInclude,
		Host:        u.Host,
	}, nil
}

// Context returns the network option's context, which controls
// cancellation of the call. The returned context is always non-nil.
func (n *Network) Context() context.Context {
	if n.ctx != nil {
		return n.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of n with its context changed to
// ctx, which must be non-nil.
func (n *Network) WithContext(ctx context.Context) *Network {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	n2 := new(Network)
	*n2 = *n
	n2.ctx = ctx
	return n2
}

// SetHeaders copies h into the header, validating each field name and
// value.
func (n *Network) SetHeaders(h map[string]string) error {
	for k, v := range h {
		if !httpguts.ValidHeaderFieldName(k) {
			return fmt.Errorf("reqx/request: invalid header field name %q", k)
		}
		if !httpguts.ValidHeaderFieldValue(v) {
			return fmt.Errorf("reqx/request: invalid header field value for %q", k)
		}
		n.Header.Set(k, v)
	}
	return nil
}

// ToRequest creates an HTTP request corresponding to the network
// option, using the network option's context.
func (n *Network) ToRequest() *http.Request {
	return n.ToRequestBody(nil)
}

// ToRequestBody is like ToRequest but wraps the body reader with wrap
// when the body is non-empty. A nil wrap leaves the reader as is.
func (n *Network) ToRequestBody(wrap func(io.Reader) io.Reader) *http.Request {
	r := template.WithContext(n.Context())
	r.Method = n.Method
	r.URL = n.URL
	r.Header = n.Header
	if len(n.Body) > 0 {
		body := n.Body
		newReader := func() io.Reader {
			rd := io.Reader(bytes.NewReader(body))
			if wrap != nil {
				rd = wrap(rd)
			}
			return rd
		}
		r.Body = ioutil.NopCloser(newReader())
		r.GetBody = func() (io.ReadCloser, error) {
			return ioutil.NopCloser(newReader()), nil
		}
		r.ContentLength = int64(len(body))
	}
	r.TransferEncoding = n.TransferEncoding
	r.Close = n.Close
	r.Host = n.Host
	return r
}

func validMethod(method string) bool {
	return method != "" && strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// escapeQuery percent-encodes the bytes a browser would encode in a
// query before sending it: controls, space, '"', '<', '>', and
// non-ASCII. Existing escapes and qs brackets are left alone.
func escapeQuery(q string) string {
	i := strings.IndexFunc(q, func(r rune) bool { return r >= utf8.RuneSelf || shouldEscapeQuery(byte(r)) })
	if i == -1 {
		return q
	}
	var sb strings.Builder
	sb.Grow(len(q) + 8)
	sb.WriteString(q[:i])
	for j := i; j < len(q); j++ {
		c := q[j]
		if c >= utf8.RuneSelf || shouldEscapeQuery(c) {
			fmt.Fprintf(&sb, "%%%02X", c)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func shouldEscapeQuery(c byte) bool {
	return c <= ' ' || c == 0x7f || c == '"' || c == '<' || c == '>'
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}

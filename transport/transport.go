// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/gogama/reqx/request"
	"golang.org/x/net/publicsuffix"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// A Transport sends a network option and returns the raw response.
//
// If the call failed to produce an HTTP response, the response is nil
// and the error is a *url.Error. If the status is outside the accepted
// band, both the response and a *StatusError are returned.
type Transport interface {
	Do(n *request.Network) (*request.Response, error)
}

// ErrNoResponse indicates the HTTPDoer produced a response with status
// 0 for a non-file URL, which is treated as no response at all.
var ErrNoResponse = errors.New("reqx/transport: no response")

// Accepted reports whether status is in the accepted band, which is
// 101 through 399 inclusive.
func Accepted(status int) bool {
	return status > 100 && status < 400
}

// A StatusError reports a response whose status is outside the
// accepted band.
type StatusError struct {
	Response *request.Response
}

func (err *StatusError) Error() string {
	if err.Response == nil {
		return "reqx/transport: status <= 100 || status >= 400"
	}
	return fmt.Sprintf("reqx/transport: unaccepted status %d", err.Response.Status)
}

// NewHTTPClient returns an http.Client carrying a cookie jar, so that
// credentials are always included in requests.
func NewHTTPClient() *http.Client {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		panic(err)
	}
	return &http.Client{Jar: jar}
}

var defaultDoer HTTPDoer = NewHTTPClient()

func doerOrDefault(d HTTPDoer) HTTPDoer {
	if d == nil {
		return defaultDoer
	}
	return d
}

// CloseIdleConnections invokes the same method on d if d supports it,
// and on the default HTTPDoer if d is nil.
func CloseIdleConnections(d HTTPDoer) {
	if ic, ok := doerOrDefault(d).(interface{ CloseIdleConnections() }); ok {
		ic.CloseIdleConnections()
	}
}

// roundTrip sends r through d and reads the entire response body.
func roundTrip(d HTTPDoer, n *request.Network, r *http.Request) (*request.Response, error) {
	resp, err := doerOrDefault(d).Do(r)
	if err != nil {
		return nil, WrapError(n, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(n, err)
	}
	return &request.Response{
		Status:     resp.StatusCode,
		StatusText: resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func statusCheck(r *request.Response) (*request.Response, error) {
	if !Accepted(r.Status) {
		return r, &StatusError{Response: r}
	}
	return r, nil
}

// WrapError wraps err in a *url.Error describing n, unless it already
// is one.
func WrapError(n *request.Network, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	u := ""
	if n.URL != nil {
		u = n.URL.String()
	}
	return &url.Error{
		Op:  urlErrorOp(n.Method),
		URL: u,
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}

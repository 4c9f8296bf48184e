// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"io"
	"strings"

	"github.com/gogama/reqx/request"
)

// Progress is a transport which reports upload progress to the
// option's OnUploadProgress function. Its zero value is ready to use.
//
// The response payload is the body text, or nil for an empty body.
// Callers normalize it with a forced JSON parse.
type Progress struct {
	// HTTPDoer sends requests. If nil, an http.Client with a cookie jar
	// is used.
	HTTPDoer HTTPDoer
}

// Do sends n, reporting progress as the body is read by the HTTPDoer.
func (t *Progress) Do(n *request.Network) (*request.Response, error) {
	var fn request.ProgressFunc
	if n.Option != nil {
		fn = n.Option.OnUploadProgress
	}
	total := int64(len(n.Body))
	wrap := func(r io.Reader) io.Reader {
		if fn == nil {
			return r
		}
		return &progressReader{r: r, total: total, fn: fn}
	}

	r, err := roundTrip(t.HTTPDoer, n, n.ToRequestBody(wrap))
	if err != nil {
		return nil, err
	}
	if r.Status == 0 && !isFileURL(n) {
		return nil, WrapError(n, ErrNoResponse)
	}
	if len(r.Body) > 0 {
		r.Payload = string(r.Body)
	}
	return statusCheck(r)
}

func isFileURL(n *request.Network) bool {
	return n.URL != nil && strings.EqualFold(n.URL.Scheme, "file")
}

type progressReader struct {
	r     io.Reader
	sent  int64
	total int64
	fn    request.ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.fn(p.sent, p.total)
	}
	return n, err
}

// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"encoding/json"

	"github.com/gogama/reqx/request"
)

// Standard is the default transport. Its zero value is ready to use.
type Standard struct {
	// HTTPDoer sends requests. If nil, an http.Client with a cookie jar
	// is used.
	HTTPDoer HTTPDoer
}

// Do sends n and reads the response. A JSON body is decoded into the
// response payload, any other non-empty body is kept as a string
// payload, and an empty body leaves the payload nil.
func (t *Standard) Do(n *request.Network) (*request.Response, error) {
	r, err := roundTrip(t.HTTPDoer, n, n.ToRequest())
	if err != nil {
		return nil, err
	}
	r.Payload = decode(r.Body)
	return statusCheck(r)
}

func decode(body []byte) interface{} {
	if len(body) == 0 {
		return nil
	}
	var v interface{}
	if json.Valid(body) && json.Unmarshal(body, &v) == nil {
		return v
	}
	return string(body)
}

// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resolve

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gogama/reqx/request"
)

// ErrNoAPI is returned by Prepare when an option has neither an API
// descriptor nor a URL.
var ErrNoAPI = errors.New("reqx/resolve: option has no API or URL")

// Prepare returns a copy of o ready for resolution. API falls back to
// URL and ActionAddr falls back to API.
//
// If URL carries a query string and Data is nil or object-shaped, the
// query parameters are moved into Data, with existing Data entries
// taking precedence, and the query is stripped from URL.
//
// Prepare returns the copy together with ErrNoAPI if both API and URL
// are empty.
func Prepare(o *request.Option) (*request.Option, error) {
	p := o.Clone()
	if p.API == "" {
		p.API = p.URL
	}
	if p.ActionAddr == "" {
		p.ActionAddr = p.API
	}
	if p.API == "" {
		return p, ErrNoAPI
	}

	i := strings.IndexByte(p.URL, '?')
	if i < 0 {
		return p, nil
	}
	data, isObject := request.ObjectData(p.Data)
	if p.Data != nil && !isObject {
		return p, nil
	}
	query, err := url.ParseQuery(p.URL[i+1:])
	if err != nil || len(query) == 0 {
		return p, nil
	}
	merged := make(map[string]interface{}, len(query)+len(data))
	for k, vs := range query {
		if len(vs) == 1 {
			merged[k] = vs[0]
		} else {
			merged[k] = vs
		}
	}
	for k, v := range data {
		merged[k] = v
	}
	p.URL = p.URL[:i]
	p.Data = merged
	return p, nil
}

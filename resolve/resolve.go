// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package resolve turns a logical API descriptor into a concrete URL
// and HTTP method.
//
// A descriptor such as "GET rtapi/users/$id" is split into its method
// and path, the path is prefixed with the host for the option's domain
// alias, $-tokens are interpolated from the option data, and for GET
// calls the remaining data is appended as a query string.
package resolve

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gogama/reqx/qs"
	"github.com/gogama/reqx/request"
	"github.com/samber/lo"
)

// ErrUnknownDomain is reported when an option's domain alias has no
// entry in the domain table.
var ErrUnknownDomain = errors.New("reqx/resolve: unknown domain alias")

var apiPattern = regexp.MustCompile(`^(GET|POST|PUT|DELETE|PATCH|HEAD|OPTIONS) (.*)$`)

// A Result is a resolved URL and method.
type Result struct {
	// URL is the resolved URL.
	URL string
	// Method is the uppercase HTTP method.
	Method string
}

// URL resolves the option's URL (falling back to its API descriptor)
// against the domain table. The option's own Domains table, when
// non-nil, takes precedence over domains.
//
// If the path is relative and the domain alias is unknown, URL returns
// a usable Result with the unprefixed path together with an error
// wrapping ErrUnknownDomain. Callers are expected to report the error
// and carry on.
func URL(o *request.Option, domains map[string]string) (Result, error) {
	raw := o.URL
	if raw == "" {
		raw = o.API
	}
	res := Result{URL: raw, Method: o.MethodOrDefault()}

	if m := apiPattern.FindStringSubmatch(raw); m != nil {
		res.Method = m[1]
		res.URL = m[2]
	}

	var err error
	if !strings.Contains(res.URL, "//") {
		table := o.Domains
		if table == nil {
			table = domains
		}
		alias := o.DomainOrDefault()
		if prefix := table[alias]; prefix != "" {
			res.URL = strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(res.URL, "/")
		} else {
			err = fmt.Errorf("%w %q", ErrUnknownDomain, alias)
		}
	}

	data, isObject := request.ObjectData(o.Data)

	if strings.Contains(res.URL, "$") {
		res.URL = Interpolate(res.URL, data)
	}

	if res.Method == "GET" && isObject {
		res.URL = appendQuery(res.URL, data, o.QSOptions())
	}

	return res, err
}

func appendQuery(u string, data map[string]interface{}, opts qs.Options) string {
	existing := ""
	if i := strings.IndexByte(u, '?'); i >= 0 {
		existing = u[i+1:]
	}
	params := lo.OmitBy(data, func(key string, value interface{}) bool {
		return isBlank(value) || strings.Contains(existing, key+"=")
	})
	query := qs.Stringify(params, opts)
	if query == "" {
		return u
	}
	if strings.IndexByte(u, '?') == -1 {
		return u + "?" + query
	}
	return u + "&" + query
}

func isBlank(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == "" || x == "undefined"
	default:
		return false
	}
}

// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resolve

import (
	"io"
	"regexp"
	"strings"

	"github.com/gogama/reqx/qs"
	"github.com/gogama/reqx/request"
	"github.com/valyala/fasttemplate"
)

var bareToken = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)`)

// Interpolate substitutes $name and ${name} tokens in s with values
// from data. Names may be dotted paths into nested maps. Tokens which
// do not resolve are left as literal text.
func Interpolate(s string, data map[string]interface{}) string {
	s = bareToken.ReplaceAllStringFunc(s, func(token string) string {
		if v, ok := lookup(data, token[1:]); ok {
			return qs.FormatValue(v)
		}
		return token
	})
	if !strings.Contains(s, "${") {
		return s
	}
	out, err := fasttemplate.ExecuteFuncStringWithErr(s, "${", "}", func(w io.Writer, tag string) (int, error) {
		if v, ok := lookup(data, strings.TrimSpace(tag)); ok {
			return io.WriteString(w, qs.FormatValue(v))
		}
		return io.WriteString(w, "${"+tag+"}")
	})
	if err != nil {
		return s
	}
	return out
}

func lookup(data map[string]interface{}, path string) (interface{}, bool) {
	var cur interface{} = data
	for _, part := range strings.Split(path, ".") {
		m, ok := request.ObjectData(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/tidwall/gjson"
)

// ValueKey is the key under which a non-object payload is wrapped.
const ValueKey = "value"

// A Response is the result of a call.
type Response struct {
	// Data is the response data. After normalization it is always a
	// non-nil map, except when a forced JSON re-parse failed, in which
	// case it is nil and Payload holds the raw text.
	Data map[string]interface{}

	// Status is the HTTP status code, or 0 for cached and mock data.
	Status int

	// StatusText is the HTTP status text, for example "404 Not Found".
	StatusText string

	// Header is the response header.
	Header http.Header

	// Payload is the response value before normalization: a decoded
	// JSON value, text, or mock data.
	Payload interface{}

	// Body is the raw response body as read from the network.
	Body []byte
}

// Normalize guarantees r exposes a plain map as Data and returns it.
//
// A nil response becomes a response with empty Data. A response whose
// Data is already set is returned unchanged. Otherwise Data is derived
// from Payload: nil becomes an empty map, a map with string keys is
// used as is, and any other value is wrapped as {"value": payload}.
//
// If forceParse is true, a text payload is parsed as JSON instead of
// wrapped: an object becomes Data, any other JSON value is wrapped. If
// the text is not valid JSON, r is left unmodified.
func Normalize(r *Response, forceParse bool) *Response {
	if r == nil {
		return &Response{Data: map[string]interface{}{}}
	}
	if r.Data != nil {
		return r
	}
	if r.Payload == nil {
		r.Data = map[string]interface{}{}
		return r
	}
	if m, ok := plainMap(r.Payload); ok {
		if m == nil {
			m = map[string]interface{}{}
		}
		r.Data = m
		return r
	}
	if !forceParse {
		r.Data = map[string]interface{}{ValueKey: r.Payload}
		return r
	}

	var text string
	switch x := r.Payload.(type) {
	case string:
		text = x
	case []byte:
		text = string(x)
	default:
		r.Data = map[string]interface{}{ValueKey: r.Payload}
		return r
	}
	if !gjson.Valid(text) {
		return r
	}
	v := gjson.Parse(text).Value()
	if m, ok := v.(map[string]interface{}); ok {
		r.Data = m
	} else {
		r.Data = map[string]interface{}{ValueKey: v}
	}
	return r
}

// Get looks up a dotted gjson path in Data, for example
// "items.0.name" or "items.#".
func (r *Response) Get(path string) gjson.Result {
	if r == nil || r.Data == nil {
		return gjson.Result{}
	}
	b, err := json.Marshal(r.Data)
	if err != nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(b, path)
}

func plainMap(v interface{}) (map[string]interface{}, bool) {
	if m, ok := v.(map[string]interface{}); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]interface{}, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}

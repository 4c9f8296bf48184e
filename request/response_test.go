// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name       string
		resp       *Response
		forceParse bool
		expected   map[string]interface{}
	}{
		{
			name:     "nil response",
			resp:     nil,
			expected: map[string]interface{}{},
		},
		{
			name:     "nil payload",
			resp:     &Response{Status: 200},
			expected: map[string]interface{}{},
		},
		{
			name:     "object payload",
			resp:     &Response{Payload: map[string]interface{}{"a": 1.0}},
			expected: map[string]interface{}{"a": 1.0},
		},
		{
			name:     "typed map payload",
			resp:     &Response{Payload: map[string]string{"a": "b"}},
			expected: map[string]interface{}{"a": "b"},
		},
		{
			name:     "nil typed map payload",
			resp:     &Response{Payload: map[string]interface{}(nil)},
			expected: map[string]interface{}{},
		},
		{
			name:     "plain text wrapped",
			resp:     &Response{Status: 200, Payload: "plain text"},
			expected: map[string]interface{}{"value": "plain text"},
		},
		{
			name:     "array wrapped",
			resp:     &Response{Payload: []interface{}{1.0, 2.0}},
			expected: map[string]interface{}{"value": []interface{}{1.0, 2.0}},
		},
		{
			name:       "forced parse of object text",
			resp:       &Response{Payload: `{"ok":true,"n":3}`},
			forceParse: true,
			expected:   map[string]interface{}{"ok": true, "n": 3.0},
		},
		{
			name:       "forced parse of object bytes",
			resp:       &Response{Payload: []byte(`{"ok":true}`)},
			forceParse: true,
			expected:   map[string]interface{}{"ok": true},
		},
		{
			name:       "forced parse of array text",
			resp:       &Response{Payload: `[1,2]`},
			forceParse: true,
			expected:   map[string]interface{}{"value": []interface{}{1.0, 2.0}},
		},
		{
			name:       "forced parse of non-text",
			resp:       &Response{Payload: 42},
			forceParse: true,
			expected:   map[string]interface{}{"value": 42},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			r := Normalize(testCase.resp, testCase.forceParse)
			require.NotNil(t, r)
			assert.Equal(t, testCase.expected, r.Data)
			if testCase.resp != nil {
				assert.Same(t, testCase.resp, r)
			}
		})
	}
}

func TestNormalize_ParseFailure(t *testing.T) {
	r := &Response{Status: 200, Payload: "not json {"}
	n := Normalize(r, true)
	assert.Same(t, r, n)
	assert.Nil(t, n.Data)
	assert.Equal(t, "not json {", n.Payload)
}

func TestNormalize_Idempotent(t *testing.T) {
	data := map[string]interface{}{"value": "x"}
	r := &Response{Data: data, Payload: "ignored"}
	n := Normalize(Normalize(r, false), true)
	assert.Same(t, r, n)
	assert.Equal(t, data, n.Data)
	assert.Equal(t, "ignored", n.Payload)
}

func TestResponse_Get(t *testing.T) {
	var nilResp *Response
	assert.False(t, nilResp.Get("a").Exists())
	r := Normalize(&Response{Payload: `{"items":[{"name":"x"},{"name":"y"}]}`}, true)
	assert.Equal(t, "y", r.Get("items.1.name").String())
	assert.Equal(t, int64(2), r.Get("items.#").Int())
	assert.False(t, r.Get("missing").Exists())
}

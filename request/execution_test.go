// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExecution_ResponseAccessors(t *testing.T) {
	e := &Execution{}
	assert.Equal(t, 0, e.StatusCode())
	assert.Nil(t, e.Header())
	assert.Empty(t, e.Header().Get("X-Request-Id"))

	h := http.Header{"X-Request-Id": {"abc"}}
	e.Response = &Response{Status: 404, Header: h}
	assert.Equal(t, 404, e.StatusCode())
	assert.Equal(t, "abc", e.Header().Get("X-Request-Id"))

	e.Response = &Response{Data: map[string]interface{}{"cached": true}}
	assert.Equal(t, 0, e.StatusCode(), "cached responses carry no status")
}

func TestExecution_Duration(t *testing.T) {
	start := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	testCases := []struct {
		name    string
		e       Execution
		started bool
		ended   bool
		want    time.Duration
	}{
		{name: "pending"},
		{
			name:    "ended",
			e:       Execution{Start: start, End: start.Add(1500 * time.Millisecond)},
			started: true,
			ended:   true,
			want:    1500 * time.Millisecond,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.started, testCase.e.Started())
			assert.Equal(t, testCase.ended, testCase.e.Ended())
			assert.Equal(t, testCase.want, testCase.e.Duration())
		})
	}
	t.Run("in flight", func(t *testing.T) {
		e := &Execution{Start: time.Now().Add(-time.Second)}
		assert.True(t, e.Started())
		assert.False(t, e.Ended())
		assert.GreaterOrEqual(t, e.Duration(), time.Second)
	})
}

func TestExecution_Timeout(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"no error", nil, false},
		{"plain", errors.New("foo"), false},
		{"ETIMEDOUT", syscall.ETIMEDOUT, true},
		{"deadline", &url.Error{Op: "Get", URL: "https://host/a", Err: context.DeadlineExceeded}, true},
		{"canceled", &url.Error{Op: "Get", URL: "https://host/a", Err: context.Canceled}, false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			e := &Execution{Err: testCase.err}
			assert.Equal(t, testCase.want, e.Timeout())
		})
	}
}

func TestExecution_Value(t *testing.T) {
	type attemptKey struct{}
	type userKey struct{}
	e := &Execution{}
	assert.Nil(t, e.Value(attemptKey{}))

	e.SetValue(attemptKey{}, 1)
	e.SetValue(userKey{}, "ann")
	assert.Equal(t, 1, e.Value(attemptKey{}))
	assert.Equal(t, "ann", e.Value(userKey{}))

	e.SetValue(attemptKey{}, 2)
	assert.Equal(t, 2, e.Value(attemptKey{}))
	assert.Equal(t, "ann", e.Value(userKey{}))
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "Pending", Pending.String())
	assert.Equal(t, "CacheCheck", CacheCheck.String())
	assert.Equal(t, "HookDispatch", HookDispatch.String())
	assert.Equal(t, "Failed", Failed.String())
	assert.Equal(t, "Unknown", Stage(-1).String())
	assert.Len(t, stageNames, int(Failed)+1)
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "none", NoSource.String())
	assert.Equal(t, "network", NetworkSource.String())
	assert.Equal(t, "cache", CacheSource.String())
	assert.Equal(t, "mock", MockSource.String())
	assert.Equal(t, "unknown", Source(42).String())
}

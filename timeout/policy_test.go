// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"context"
	"math"
	"syscall"
	"testing"
	"time"

	"github.com/gogama/reqx/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	a := DefaultPolicy.Timeout(&request.Execution{})
	assert.Equal(t, 30*time.Second, a)
	b := DefaultPolicy.Timeout(&request.Execution{Err: syscall.ETIMEDOUT, Option: &request.Option{Method: "POST"}})
	assert.Equal(t, 30*time.Second, b)
}

func TestInfinite(t *testing.T) {
	a := Infinite.Timeout(&request.Execution{})
	assert.Equal(t, time.Duration(math.MaxInt64), a)
	b := Infinite.Timeout(&request.Execution{Err: syscall.ETIMEDOUT})
	assert.Equal(t, time.Duration(math.MaxInt64), b)
}

func TestFixed(t *testing.T) {
	p := Fixed(33 * time.Hour)
	a := p.Timeout(&request.Execution{})
	assert.Equal(t, 33*time.Hour, a)
	b := p.Timeout(&request.Execution{Err: syscall.ETIMEDOUT})
	assert.Equal(t, 33*time.Hour, b)
}

func TestByMethod(t *testing.T) {
	p := ByMethod(map[string]time.Duration{"post": time.Minute, "GET": time.Second}, nil)
	post, err := request.NewNetwork(context.Background(), "POST", "http://x/", nil)
	require.NoError(t, err)
	del, err := request.NewNetwork(context.Background(), "DELETE", "http://x/", nil)
	require.NoError(t, err)

	assert.Equal(t, time.Minute, p.Timeout(&request.Execution{Network: post}))
	assert.Equal(t, 30*time.Second, p.Timeout(&request.Execution{Network: del}))
	assert.Equal(t, time.Second, p.Timeout(&request.Execution{Option: &request.Option{}}))
	assert.Equal(t, 30*time.Second, p.Timeout(&request.Execution{}))

	q := ByMethod(nil, Fixed(time.Millisecond))
	assert.Equal(t, time.Millisecond, q.Timeout(&request.Execution{Network: post}))
}

func TestResolve(t *testing.T) {
	e := &request.Execution{Option: &request.Option{}}
	assert.Equal(t, 30*time.Second, Resolve(nil, e))
	assert.Equal(t, time.Hour, Resolve(Fixed(time.Hour), e))
	e.Option.Fetch.Timeout = 2 * time.Second
	assert.Equal(t, 2*time.Second, Resolve(nil, e))
	assert.Equal(t, 2*time.Second, Resolve(Infinite, e))
	assert.Equal(t, time.Hour, Resolve(Fixed(time.Hour), &request.Execution{}))
}

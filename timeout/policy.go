// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"strings"
	"time"

	"github.com/gogama/reqx/request"
)

// A Policy defines a timeout policy which may be plugged into the
// request engine (reqx.Client) to direct how to set the timeout on the
// transport call.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to set on the transport call.
	//
	// Parameter e contains the current state of the call. Its Network
	// field is populated.
	Timeout(e *request.Execution) time.Duration
}

// DefaultPolicy is the default timeout policy. It sets a fixed timeout
// of 30 seconds on each call.
var DefaultPolicy Policy = Fixed(30 * time.Second)

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed constructs a timeout policy that uses the same value for every
// call.
func Fixed(d time.Duration) Policy {
	return fixed(d)
}

type fixed time.Duration

func (p fixed) Timeout(_ *request.Execution) time.Duration {
	return time.Duration(p)
}

// ByMethod constructs a timeout policy which looks up the timeout by
// the call's HTTP method, for example to give uploads more time than
// reads. Methods not present in m use the fallback policy, which
// defaults to DefaultPolicy if nil.
func ByMethod(m map[string]time.Duration, fallback Policy) Policy {
	p := byMethod{m: make(map[string]time.Duration, len(m)), fallback: fallback}
	for k, v := range m {
		p.m[strings.ToUpper(k)] = v
	}
	if p.fallback == nil {
		p.fallback = DefaultPolicy
	}
	return p
}

type byMethod struct {
	m        map[string]time.Duration
	fallback Policy
}

func (p byMethod) Timeout(e *request.Execution) time.Duration {
	method := ""
	if e.Network != nil {
		method = e.Network.Method
	} else if e.Option != nil {
		method = e.Option.MethodOrDefault()
	}
	if d, ok := p.m[method]; ok {
		return d
	}
	return p.fallback.Timeout(e)
}

// Resolve returns the timeout for the call e. A positive
// Option.Fetch.Timeout wins; otherwise p decides, with a nil p meaning
// DefaultPolicy.
func Resolve(p Policy, e *request.Execution) time.Duration {
	if e.Option != nil && e.Option.Fetch.Timeout > 0 {
		return e.Option.Fetch.Timeout
	}
	if p == nil {
		p = DefaultPolicy
	}
	return p.Timeout(e)
}

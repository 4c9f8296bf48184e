// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/reqx/transient"
)

// A Stage is a step in the strictly sequential life of one call.
type Stage int

const (
	// Pending is the stage before the call starts.
	Pending Stage = iota
	// Resolving covers pre-request hooks, URL and payload resolution,
	// and request hooks.
	Resolving
	// CacheCheck is the GET response cache lookup.
	CacheCheck
	// MockCheck is the mock data lookup.
	MockCheck
	// Transporting is the network call.
	Transporting
	// Normalizing is response normalization.
	Normalizing
	// HookDispatch covers success, error, and finish hooks.
	HookDispatch
	// Done is the final stage of a successful call.
	Done
	// Failed is the final stage of a failed call.
	Failed
)

var stageNames = []string{
	"Pending",
	"Resolving",
	"CacheCheck",
	"MockCheck",
	"Transporting",
	"Normalizing",
	"HookDispatch",
	"Done",
	"Failed",
}

// String returns the name of the stage.
func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "Unknown"
	}
	return stageNames[s]
}

// A Source records where a call's response data came from.
type Source int

const (
	// NoSource means no response data has been produced.
	NoSource Source = iota
	// NetworkSource means the data came from a transport.
	NetworkSource
	// CacheSource means the data came from the GET response cache.
	CacheSource
	// MockSource means the data was synthesized by the mock layer.
	MockSource
)

var sourceNames = []string{"none", "network", "cache", "mock"}

// String returns the name of the source.
func (s Source) String() string {
	if s < 0 || int(s) >= len(sourceNames) {
		return "unknown"
	}
	return sourceNames[s]
}

// An Execution represents the state of a single call.
//
// Event handlers may set values on an Execution using its SetValue
// method and read them back using the Value method, but should treat
// the exported fields as read-only.
type Execution struct {
	// ID uniquely identifies the call. It appears in log entries as
	// "exec".
	ID string

	// Option is the logical option. Pre-request hooks may replace it,
	// in which case this field tracks the replacement.
	Option *Option

	// Network is the resolved network option. It is nil until
	// resolution completes.
	Network *Network

	// Response is the normalized response. It is nil until one is
	// produced, and may be set together with Err for protocol errors.
	Response *Response

	// Err is the error which failed the call, or nil.
	Err error

	// Stage is the current stage of the call.
	Stage Stage

	// Source records where the response data came from.
	Source Source

	// Start is the start time of the call.
	Start time.Time

	// End is the end time of the call. It contains the zero value
	// until the call ends.
	End time.Time

	data context.Context
}

// StatusCode returns the status code of the response, or 0 if there is
// no response.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.Status
}

// Header returns the response headers, or the nil header if there is no
// response.
//
// Note that a nil return value is always safe for read-only operations,
// since http.Header is a map type.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return e.Response.Header
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has Ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Now().Sub(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • it may not be nil;
//
// • it must be comparable;
//
// • it should not be of type string or any other built-in type to avoid
// collisions between different event handlers putting data into the
// same execution.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}

// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to observe calls, for
// example to collect metrics. Unlike hooks, handlers cannot change the
// outcome of a call.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// call starts.
	//
	// When Client fires BeforeExecutionStart, the execution is
	// non-nil but the only fields that have been set are the ID and
	// the option.
	BeforeExecutionStart Event = iota
	// AfterResolve identifies the event that occurs after URL and
	// payload resolution and the request hooks.
	//
	// When Client fires AfterResolve, the execution's Network field is
	// set to the network option that will be used by the cache, mock,
	// and transport stages.
	AfterResolve
	// CacheHit identifies the event that occurs when the call is
	// answered from the GET response cache.
	//
	// When Client fires CacheHit, the execution's Response field holds
	// the cached data.
	CacheHit
	// MockHit identifies the event that occurs when the call is
	// answered with mock data, before the mock delay.
	MockHit
	// BeforeTransport identifies the event that occurs immediately
	// before the transport is invoked.
	BeforeTransport
	// AfterTransport identifies the event that occurs after the
	// transport returns, regardless of whether it succeeded.
	//
	// When Client fires AfterTransport, either the execution's
	// response field or its error field OR BOTH may be set.
	AfterTransport
	// AfterExecutionEnd identifies the event that occurs after the call
	// ends, after all hooks have run.
	//
	// When Client fires AfterExecutionEnd, the execution's stage is
	// either Done or Failed and its end time is set.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"AfterResolve",
	"CacheHit",
	"MockHit",
	"BeforeTransport",
	"AfterTransport",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur during
// a call, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		AfterResolve,
		CacheHit,
		MockHit,
		BeforeTransport,
		AfterTransport,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}

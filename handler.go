// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"sync"

	"github.com/gogama/reqx/request"
)

// A HandlerGroup holds one handler chain per Event. Handlers observe
// the stages of a call; they cannot change its outcome, which is the
// job of the hook fields on Client and request.Option.
//
// The zero value is an empty group. A HandlerGroup may be extended
// while calls using it are in flight; a call sees the chain as it was
// when the event fired.
type HandlerGroup struct {
	mu     sync.RWMutex
	chains [numEvents][]Handler
}

// PushBack appends h to the chain for evt.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	checkHandler(evt, h)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chains[evt] = append(g.chains[evt], h)
}

// PushFront prepends h to the chain for evt.
func (g *HandlerGroup) PushFront(evt Event, h Handler) {
	checkHandler(evt, h)
	g.mu.Lock()
	defer g.mu.Unlock()
	chain := make([]Handler, 0, len(g.chains[evt])+1)
	g.chains[evt] = append(append(chain, h), g.chains[evt]...)
}

// Len returns the number of handlers in the chain for evt.
func (g *HandlerGroup) Len(evt Event) int {
	if g == nil || evt < 0 || evt >= eventSentinel {
		return 0
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.chains[evt])
}

func checkHandler(evt Event, h Handler) {
	if h == nil {
		panic("reqx: nil handler")
	}
	if evt < 0 || evt >= eventSentinel {
		panic("reqx: unknown event")
	}
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	if g == nil {
		return
	}
	g.mu.RLock()
	chain := g.chains[evt]
	g.mu.RUnlock()
	for _, h := range chain {
		h.Handle(evt, e)
	}
}

// A Handler observes an event during a call.
type Handler interface {
	Handle(Event, *request.Execution)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}

// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	assert.Len(t, eventNames, numEvents)
	assert.Len(t, Events(), numEvents)
	events := Events()
	assert.Equal(t, BeforeExecutionStart, events[BeforeExecutionStart])
	assert.Equal(t, AfterResolve, events[AfterResolve])
	assert.Equal(t, CacheHit, events[CacheHit])
	assert.Equal(t, MockHit, events[MockHit])
	assert.Equal(t, BeforeTransport, events[BeforeTransport])
	assert.Equal(t, AfterTransport, events[AfterTransport])
	assert.Equal(t, AfterExecutionEnd, events[AfterExecutionEnd])
}

func TestEvent_Name(t *testing.T) {
	assert.Equal(t, "BeforeExecutionStart", BeforeExecutionStart.Name())
	assert.Equal(t, "AfterResolve", AfterResolve.Name())
	assert.Equal(t, "CacheHit", CacheHit.Name())
	assert.Equal(t, "MockHit", MockHit.Name())
	assert.Equal(t, "BeforeTransport", BeforeTransport.Name())
	assert.Equal(t, "AfterTransport", AfterTransport.String())
	assert.Equal(t, "AfterExecutionEnd", AfterExecutionEnd.String())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "ConfigurationError", ConfigurationError.String())
	assert.Equal(t, "NetworkError", NetworkError.String())
	assert.Equal(t, "ProtocolError", ProtocolError.String())
	assert.Equal(t, "HookError", HookError.String())
	assert.Equal(t, "Unknown", Kind(-1).String())
	assert.Equal(t, "Unknown", Kind(99).String())
}

// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package mock short-circuits calls with synthesized response data
// during development.
//
// Mock data is produced from an option's MockSource, which is one of:
//
// • a map[string]interface{} with an entry for the option's API
// descriptor, in which case the entry is used as the source;
//
// • a request.MockFunc or func(*request.Option) interface{}, which is
// invoked with the option;
//
// • any other value, which is used literally.
package mock

import (
	"context"
	"time"

	"github.com/gogama/reqx/request"
)

// Enabled reports whether o may receive mock data. Mocking is disabled
// for release clients, when o.Mock is false, or when o has no
// MockSource.
func Enabled(o *request.Option, release bool) bool {
	return !release && o != nil && o.MockEnabled() && o.MockSource != nil
}

// Try produces mock data for o. The second return value is false if
// mocking is disabled for o, in which case the call proceeds to the
// transport. The error is non-nil only if ctx is already done.
func Try(ctx context.Context, o *request.Option, release bool) (interface{}, bool, error) {
	if !Enabled(o, release) {
		return nil, false, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	return Generate(o.MockSource, o), true, nil
}

// Generate produces mock data for o from source.
func Generate(source interface{}, o *request.Option) interface{} {
	if m, ok := source.(map[string]interface{}); ok {
		if entry := m[o.APIString()]; entry != nil {
			source = entry
		}
	}
	switch f := source.(type) {
	case request.MockFunc:
		return f(o)
	case func(*request.Option) interface{}:
		return f(o)
	default:
		return source
	}
}

// Delay suspends the calling goroutine for o's mock delay. It returns
// early with ctx's error if ctx is done first. A zero delay returns
// immediately.
func Delay(ctx context.Context, o *request.Option) error {
	d := o.MockDelayOrDefault()
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

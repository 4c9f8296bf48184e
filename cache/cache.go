// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cache implements the GET response cache with a per-call
// time-to-live.
//
// Entries live in a store.Store. Each entry is two keys: the resolved
// URL, holding the JSON-encoded response data, and the URL suffixed with
// ":timestamp", holding the absolute expiry time in Unix milliseconds as
// a decimal string. Expired entries are ignored on read but never
// removed.
package cache

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gogama/reqx/request"
	"github.com/gogama/reqx/store"
)

// TimestampSuffix is appended to a URL to form the key of its expiry
// time.
const TimestampSuffix = ":timestamp"

// A Cache reads and writes GET responses in a Store.
type Cache struct {
	// Store holds cache entries. A nil Store disables the cache.
	Store store.Store

	// Now returns the current time. If nil, time.Now is used.
	Now func() time.Time
}

// Enabled reports whether a call for n with the given TTL uses the
// cache: the method must be GET and expired must be positive.
func Enabled(n *request.Network, expired time.Duration) bool {
	return n != nil && n.Method == http.MethodGet && expired > 0
}

// Get returns the cached data for n, if any is present and unexpired.
//
// A miss has no side effect. The error is non-nil only if the store
// failed; a malformed entry is a miss.
func (c *Cache) Get(ctx context.Context, n *request.Network, expired time.Duration) (map[string]interface{}, bool, error) {
	if c.Store == nil || !Enabled(n, expired) {
		return nil, false, nil
	}

	ts, ok, err := c.Store.Get(ctx, n.RawURL+TimestampSuffix)
	if err != nil || !ok {
		return nil, false, err
	}
	expiry, err := strconv.ParseInt(string(ts), 10, 64)
	if err != nil || expiry <= c.now().UnixMilli() {
		return nil, false, nil
	}

	b, ok, err := c.Store.Get(ctx, n.RawURL)
	if err != nil || !ok {
		return nil, false, err
	}
	var data map[string]interface{}
	if err = json.Unmarshal(b, &data); err != nil || data == nil {
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores data for n with an expiry of now plus expired. It does
// nothing if the cache is not enabled for the call or data is nil.
func (c *Cache) Set(ctx context.Context, n *request.Network, expired time.Duration, data map[string]interface{}) error {
	if c.Store == nil || !Enabled(n, expired) || data == nil {
		return nil
	}

	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err = c.Store.Set(ctx, n.RawURL, b); err != nil {
		return err
	}
	expiry := c.now().Add(expired).UnixMilli()
	return c.Store.Set(ctx, n.RawURL+TimestampSuffix, []byte(strconv.FormatInt(expiry, 10)))
}

func (c *Cache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

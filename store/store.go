// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package store provides session-scoped key-value persistence for the
// request engine's response cache.
//
// A Store has no TTL logic of its own. Two implementations are
// provided: Memory, which lives as long as the process, and SQL, which
// persists entries in a SQLite database through GORM.
package store

import (
	"context"
	"sync"
)

// A Store is a simple key-value store.
type Store interface {
	// Get returns the value for key. The second return value is false
	// if there is no value for key.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}

// Memory is an in-process Store. Its zero value is an empty store
// ready to use. Memory is safe for concurrent use; concurrent writes to
// the same key are last-writer-wins.
type Memory struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{}
}

// Get returns a copy of the value stored for key.
func (s *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value for key.
func (s *Memory) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[string][]byte)
	}
	s.m[key] = append([]byte(nil), value...)
	return nil
}

// Len returns the number of keys in the store.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	stores := []struct {
		name string
		new  func(t *testing.T) Store
	}{
		{
			name: "Memory",
			new: func(_ *testing.T) Store {
				return NewMemory()
			},
		},
		{
			name: "Memory(ZeroValue)",
			new: func(_ *testing.T) Store {
				return &Memory{}
			},
		},
		{
			name: "SQL",
			new: func(t *testing.T) Store {
				s, err := OpenSQL(SQLConfig{
					DSN:    filepath.Join(t.TempDir(), "test.sqlite3"),
					Prefix: "test_",
				}, nil)
				require.NoError(t, err)
				t.Cleanup(func() { _ = s.Close() })
				return s
			},
		},
	}
	for _, st := range stores {
		t.Run(st.name, func(t *testing.T) {
			ctx := context.Background()
			t.Run("miss", func(t *testing.T) {
				s := st.new(t)
				v, ok, err := s.Get(ctx, "foo")
				assert.NoError(t, err)
				assert.False(t, ok)
				assert.Nil(t, v)
			})
			t.Run("set and get", func(t *testing.T) {
				s := st.new(t)
				require.NoError(t, s.Set(ctx, "foo", []byte("bar")))
				v, ok, err := s.Get(ctx, "foo")
				assert.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, []byte("bar"), v)
			})
			t.Run("overwrite", func(t *testing.T) {
				s := st.new(t)
				require.NoError(t, s.Set(ctx, "foo", []byte("bar")))
				require.NoError(t, s.Set(ctx, "foo", []byte("baz")))
				v, ok, err := s.Get(ctx, "foo")
				assert.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, []byte("baz"), v)
			})
			t.Run("url keys", func(t *testing.T) {
				s := st.new(t)
				key := "https://api.example.com/items?a=1&b=2"
				require.NoError(t, s.Set(ctx, key, []byte(`{"a":1}`)))
				require.NoError(t, s.Set(ctx, key+":timestamp", []byte("1700000000000")))
				v, ok, err := s.Get(ctx, key)
				assert.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, []byte(`{"a":1}`), v)
				v, ok, err = s.Get(ctx, key+":timestamp")
				assert.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, []byte("1700000000000"), v)
			})
		})
	}
}

func TestMemory(t *testing.T) {
	t.Run("copies values", func(t *testing.T) {
		s := NewMemory()
		b := []byte("bar")
		require.NoError(t, s.Set(context.Background(), "foo", b))
		b[0] = 'c'
		v, _, _ := s.Get(context.Background(), "foo")
		assert.Equal(t, []byte("bar"), v)
		v[0] = 'f'
		v, _, _ = s.Get(context.Background(), "foo")
		assert.Equal(t, []byte("bar"), v)
	})
	t.Run("concurrent", func(t *testing.T) {
		s := NewMemory()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := fmt.Sprintf("k%d", i%5)
				_ = s.Set(context.Background(), key, []byte(key))
				_, _, _ = s.Get(context.Background(), key)
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 5, s.Len())
	})
}

func TestGormLogger(t *testing.T) {
	var w bytes.Buffer
	l := zerolog.New(&w)
	s, err := OpenSQL(SQLConfig{DSN: filepath.Join(t.TempDir(), "log.sqlite3")}, &l)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, ok, err := s.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotContains(t, w.String(), "sql error", "record not found must not be logged")
}

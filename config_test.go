// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogama/reqx/logging"
	"github.com/gogama/reqx/request"
	"github.com/gogama/reqx/store"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cl, closer, err := Open(Config{Domains: testDomains})
		require.NoError(t, err)
		defer func() { assert.NoError(t, closer.Close()) }()
		assert.Nil(t, cl.Logger)
		assert.IsType(t, &store.Memory{}, cl.Store)
		assert.Equal(t, testDomains, cl.Domains)
	})
	t.Run("bad log level", func(t *testing.T) {
		_, _, err := Open(Config{Log: &logging.Config{Level: "loud"}})
		assert.Error(t, err)
	})
	t.Run("persistent cache", func(t *testing.T) {
		var hits int32
		r := mux.NewRouter()
		r.HandleFunc("/items", func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&hits, 1)
			_, _ = w.Write([]byte(`{"items":[1,2]}`))
		}).Methods("GET")
		s := httptest.NewServer(r)
		defer s.Close()

		dir := t.TempDir()
		logPath := filepath.Join(dir, "reqx.log")
		cfg := Config{
			Domains: map[string]string{"api": s.URL},
			Log: &logging.Config{
				Level:   "info",
				Writers: []string{logging.File},
				File:    logging.FileConfig{Path: logPath},
			},
			Sqlite: &store.SQLConfig{DSN: filepath.Join(dir, "session.sqlite3"), Prefix: "test_"},
		}
		o := func() *request.Option {
			return &request.Option{URL: "GET items", Expired: time.Hour}
		}

		cl, closer, err := Open(cfg)
		require.NoError(t, err)
		cl.HTTPDoer = s.Client()
		r1, err := cl.Request(context.Background(), o())
		require.NoError(t, err)
		require.NoError(t, closer.Close())

		cl, closer, err = Open(cfg)
		require.NoError(t, err)
		cl.HTTPDoer = s.Client()
		r2, err := cl.Request(context.Background(), o())
		require.NoError(t, err)
		require.NoError(t, closer.Close())

		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
		assert.Equal(t, r1.Data, r2.Data)
		b, err := ioutil.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"source":"network"`)
		assert.Contains(t, string(b), `"source":"cache"`)
	})
}

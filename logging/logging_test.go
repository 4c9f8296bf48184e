// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		l, c, err := New(Config{})
		require.NoError(t, err)
		defer func() { _ = c.Close() }()
		assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
	})
	t.Run("level", func(t *testing.T) {
		l, c, err := New(Config{Level: "WARN", Writers: []string{Console}})
		require.NoError(t, err)
		defer func() { _ = c.Close() }()
		assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
	})
	t.Run("bad level", func(t *testing.T) {
		_, _, err := New(Config{Level: "loud"})
		assert.Error(t, err)
	})
	t.Run("bad writer", func(t *testing.T) {
		_, _, err := New(Config{Writers: []string{"syslog"}})
		assert.EqualError(t, err, `reqx/logging: unknown writer "syslog"`)
	})
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reqx.log")
		l, c, err := New(Config{Level: "debug", Writers: []string{File}, File: FileConfig{Path: path}})
		require.NoError(t, err)
		l.Info().Str("exec", "abc").Msg("hello")
		l.Debug().Msg("detail")
		require.NoError(t, c.Close())

		b, err := ioutil.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(b)), "\n")
		require.Len(t, lines, 2)
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "abc", entry["exec"])
		assert.Equal(t, "hello", entry["message"])
		assert.Contains(t, entry, "time")
	})
	t.Run("console and file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "both.log")
		l, c, err := New(Config{Writers: []string{Console, File}, File: FileConfig{Path: path}})
		require.NoError(t, err)
		l.Warn().Msg("both")
		require.NoError(t, c.Close())
		b, err := ioutil.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"message":"both"`)
	})
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

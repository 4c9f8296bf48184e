// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"fmt"
	"io"

	"github.com/gogama/reqx/logging"
	"github.com/gogama/reqx/store"
)

// Config holds the client settings which may be loaded from a
// configuration file.
type Config struct {
	// Domains maps domain aliases to URL prefixes, for example
	// {"api": "https://api.example.com"}.
	Domains map[string]string `json:"domains" yaml:"domains"`

	// IsRelease disables mock data.
	IsRelease bool `json:"isRelease" yaml:"isRelease"`

	// Log configures the client logger used by Open. Nil means no
	// logging.
	Log *logging.Config `json:"log,omitempty" yaml:"log,omitempty"`

	// Sqlite configures a persistent cache store used by Open. Nil
	// means an in-process store.
	Sqlite *store.SQLConfig `json:"sqlite,omitempty" yaml:"sqlite,omitempty"`
}

// New returns a client configured from cfg, caching GET responses in
// an in-process store. The Log and Sqlite sections are ignored; use
// Open to honor them.
func New(cfg Config) *Client {
	c := &Client{
		Store: store.NewMemory(),
	}
	c.SetConfig(cfg)
	return c
}

// Open returns a client configured from cfg including its Log and
// Sqlite sections. The returned closer releases the log files and the
// database and must be closed when the client is no longer used.
func Open(cfg Config) (*Client, io.Closer, error) {
	c := New(cfg)
	var closers closers

	if cfg.Log != nil {
		log, closer, err := logging.New(*cfg.Log)
		if err != nil {
			return nil, nil, err
		}
		c.Logger = log
		closers = append(closers, closer)
	}

	if cfg.Sqlite != nil {
		s, err := store.OpenSQL(*cfg.Sqlite, c.Logger)
		if err != nil {
			_ = closers.Close()
			return nil, nil, fmt.Errorf("reqx: open cache store: %w", err)
		}
		c.Store = s
		closers = append(closers, s)
	}

	return c, closers, nil
}

// SetConfig replaces the client's domain table and release flag. Hook
// fields and collaborators are left as they are.
//
// SetConfig must not be called concurrently with Request.
func (c *Client) SetConfig(cfg Config) {
	c.Domains = make(map[string]string, len(cfg.Domains))
	for k, v := range cfg.Domains {
		c.Domains[k] = v
	}
	c.IsRelease = cfg.IsRelease
}

type closers []io.Closer

func (cs closers) Close() error {
	var first error
	for i := len(cs) - 1; i >= 0; i-- {
		if err := cs[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

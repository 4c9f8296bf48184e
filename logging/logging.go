// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging builds the zerolog logger used by the request engine
// and its collaborators.
//
// A logger writes to any combination of the console, in a
// human-readable format, and a JSON log file rotated by size.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Writer names accepted in Config.Writers.
const (
	Console = "console"
	File    = "file"
)

// FileConfig configures the rotating log file.
type FileConfig struct {
	// Path is the log file path.
	Path string `json:"path" yaml:"path"`
	// MaxSizeMB is the size at which the file is rotated.
	MaxSizeMB int `json:"maxSizeMB" yaml:"maxSizeMB"`
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `json:"maxBackups" yaml:"maxBackups"`
	// MaxAgeDays is the number of days to keep rotated files.
	MaxAgeDays int `json:"maxAgeDays" yaml:"maxAgeDays"`
	// Compress gzips rotated files.
	Compress bool `json:"compress" yaml:"compress"`
}

// Config configures a logger.
type Config struct {
	// Level is a zerolog level name such as "debug" or "warn". An empty
	// level means "info".
	Level string `json:"level" yaml:"level"`
	// Writers lists the outputs, Console and/or File. An empty list
	// means Console.
	Writers []string `json:"writers" yaml:"writers"`
	// File configures the File writer.
	File FileConfig `json:"file" yaml:"file"`
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:   "info",
		Writers: []string{Console},
		File: FileConfig{
			Path:       "reqx.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// New builds a logger from cfg. The returned closer closes the log
// file, if any, and must be called when the logger is no longer used.
func New(cfg Config) (*zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, nil, fmt.Errorf("reqx/logging: %w", err)
		}
	}

	writers := cfg.Writers
	if len(writers) == 0 {
		writers = []string{Console}
	}
	var outs []io.Writer
	closer := multiCloser{}
	for _, w := range writers {
		switch strings.ToLower(w) {
		case Console:
			outs = append(outs, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		case File:
			f := newFile(cfg.File)
			outs = append(outs, f)
			closer = append(closer, f)
		default:
			return nil, nil, fmt.Errorf("reqx/logging: unknown writer %q", w)
		}
	}

	var out io.Writer = outs[0]
	if len(outs) > 1 {
		out = zerolog.MultiLevelWriter(outs...)
	}
	l := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &l, closer, nil
}

// Nop returns a logger which discards everything.
func Nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func newFile(cfg FileConfig) *lumberjack.Logger {
	def := DefaultConfig().File
	if cfg.Path == "" {
		cfg.Path = def.Path
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = def.MaxSizeMB
	}
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"fmt"

	"github.com/gogama/reqx/request"
)

// A Kind classifies the failure of a call.
type Kind int

const (
	// ConfigurationError means the option could not be resolved, for
	// example because it has neither an API descriptor nor a URL, or
	// its body could not be built.
	ConfigurationError Kind = iota
	// NetworkError means no HTTP response was received: the connection
	// failed, the call timed out, or it was canceled.
	NetworkError
	// ProtocolError means a response was received but its status is
	// outside the accepted band, or its body could not be read.
	ProtocolError
	// HookError means a hook returned an error.
	HookError
)

var kindNames = []string{
	"ConfigurationError",
	"NetworkError",
	"ProtocolError",
	"HookError",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// An Error is the only kind of error returned by Client.Request. It
// carries the option which failed, the response if one was received,
// and the underlying error.
type Error struct {
	Kind     Kind
	Option   *request.Option
	Response *request.Response
	Err      error
}

func (err *Error) Error() string {
	api := ""
	if err.Option != nil {
		api = err.Option.APIString()
	}
	return fmt.Sprintf("reqx: %s: %q: %v", err.Kind, api, err.Err)
}

// Unwrap returns the underlying error.
func (err *Error) Unwrap() error {
	return err.Err
}

// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies transport-level errors from HTTP request
// execution: timeouts, cancellations, and refused or reset connections.
// The request engine logs the category of every network error, and
// callers may use it to decide on their own retry policy since the
// engine never retries.
//
// Package transient is extremely lightweight, as it depends only on
// the standard library packages "context", "errors" and "syscall", so
// it doesn't bring any significant dependencies when imported as a
// standalone package.
package transient

// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for setting the timeout of a call
// to the transport. A generic interface for timeout policies is
// provided, Policy, along with several useful policy generating
// functions and built-in policies.
//
// A positive Fetch.Timeout on the call's option always takes precedence
// over the policy. Use Resolve to apply that rule.
package timeout

// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transport sends a resolved network option over HTTP and
// produces a raw response.
//
// Two transports are provided. Standard reads the whole response body
// and decodes JSON bodies into the response payload. Progress
// additionally reports upload progress as the request body is written,
// and keeps the response payload as text for the caller to normalize
// with a forced JSON parse.
//
// Both transports treat statuses outside the accepted band (see
// Accepted) as a *StatusError which carries the response. Failures to
// speak HTTP are returned as *url.Error with a nil response.
package transport

// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"context"
	"net/http"

	"github.com/gogama/reqx/request"
)

// Doer is the interface that wraps the basic Request method.
//
// Request executes a call described by a request option and returns
// the response (or error). Client implements the Doer interface, and
// any other Doer implementation must behave substantially the same as
// Client.Request.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Doer interface {
	Request(ctx context.Context, o *request.Option) (*request.Response, error)
}

// Getter is the interface that wraps the basic Get method.
//
// Any Doer can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(ctx context.Context, api string, data interface{}) (*request.Response, error)
}

// Poster is the interface that wraps the basic Post method.
//
// Any Doer can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(ctx context.Context, api string, data interface{}) (*request.Response, error)
}

// Putter is the interface that wraps the basic Put method.
//
// Any Doer can be used to emulate a Putter via the Put function.
type Putter interface {
	Put(ctx context.Context, api string, data interface{}) (*request.Response, error)
}

// Deleter is the interface that wraps the basic Delete method.
//
// Any Doer can be used to emulate a Deleter via the Delete function.
type Deleter interface {
	Delete(ctx context.Context, api string, data interface{}) (*request.Response, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any connections which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
//
// If the underlying implementation does not support this ability,
// CloseIdleConnections does nothing.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups the basic Request, Get, Post,
// Put, Delete, and CloseIdleConnections methods.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Executor interface {
	Doer
	Getter
	Poster
	Putter
	Deleter
	IdleCloser
}

// Get uses the specified Doer to issue a GET for the API descriptor
// api. For GET, object-shaped data is sent as the query string.
//
// A method embedded in api, as in "POST items", takes precedence.
func Get(ctx context.Context, d Doer, api string, data interface{}) (*request.Response, error) {
	return verb(ctx, d, http.MethodGet, api, data)
}

// Post uses the specified Doer to issue a POST for the API descriptor
// api, with data serialized as JSON.
func Post(ctx context.Context, d Doer, api string, data interface{}) (*request.Response, error) {
	return verb(ctx, d, http.MethodPost, api, data)
}

// Put uses the specified Doer to issue a PUT for the API descriptor
// api, with data serialized as JSON.
func Put(ctx context.Context, d Doer, api string, data interface{}) (*request.Response, error) {
	return verb(ctx, d, http.MethodPut, api, data)
}

// Delete uses the specified Doer to issue a DELETE for the API
// descriptor api, with data serialized as JSON.
func Delete(ctx context.Context, d Doer, api string, data interface{}) (*request.Response, error) {
	return verb(ctx, d, http.MethodDelete, api, data)
}

func verb(ctx context.Context, d Doer, method, api string, data interface{}) (*request.Response, error) {
	return d.Request(ctx, &request.Option{
		API:    api,
		Method: method,
		Data:   data,
	})
}

// Inflate converts any non-nil Doer into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Doer needs to call a function that requires an
// Executor.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("reqx: nil doer")
	}

	if e, ok := d.(Executor); ok {
		return e
	}

	return inflated{d}
}

type inflated struct {
	doer Doer
}

func (i inflated) Request(ctx context.Context, o *request.Option) (*request.Response, error) {
	return i.doer.Request(ctx, o)
}

func (i inflated) Get(ctx context.Context, api string, data interface{}) (*request.Response, error) {
	return Get(ctx, i.doer, api, data)
}

func (i inflated) Post(ctx context.Context, api string, data interface{}) (*request.Response, error) {
	return Post(ctx, i.doer, api, data)
}

func (i inflated) Put(ctx context.Context, api string, data interface{}) (*request.Response, error) {
	return Put(ctx, i.doer, api, data)
}

func (i inflated) Delete(ctx context.Context, api string, data interface{}) (*request.Response, error) {
	return Delete(ctx, i.doer, api, data)
}

func (i inflated) CloseIdleConnections() {
	if ic, ok := i.doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
